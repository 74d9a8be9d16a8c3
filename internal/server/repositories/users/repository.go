package users

import (
	"context"

	"github.com/dmitrijs2005/streetsmarts/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	// AddScore credits points for one played round and returns the new totals.
	AddScore(ctx context.Context, id string, points int) (totalScore, roundsPlayed int64, err error)
	Top(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
}
