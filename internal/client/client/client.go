package client

import (
	"context"

	"github.com/dmitrijs2005/streetsmarts/internal/client/models"
)

type Client interface {
	Close() error
	BaseURL() string
	Register(ctx context.Context, username string, password []byte) error
	Login(ctx context.Context, username string, password []byte) error
	Logout()
	RandomLocation(ctx context.Context) (*models.Location, error)
	SubmitGuess(ctx context.Context, locationID int64, lat, lng float64) (*models.GuessResult, error)
	Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
	Me(ctx context.Context) (*models.Profile, error)
	Ping(ctx context.Context) error
}
