package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/streetsmarts/internal/client/client"
	"github.com/dmitrijs2005/streetsmarts/internal/client/game"
	"github.com/dmitrijs2005/streetsmarts/internal/client/models"
	"github.com/dmitrijs2005/streetsmarts/internal/client/repositories/history"
)

// LeaderboardSize is how many players the final tally shows.
const LeaderboardSize = 10

// GameService plays rounds against the server and keeps finished games in
// the local history.
type GameService interface {
	// NextLocation fetches the location for the session's current round.
	NextLocation(ctx context.Context, s *game.Session) (*models.Location, error)
	// Guess submits a guess for loc and records the result in s.
	Guess(ctx context.Context, s *game.Session, loc models.Location, lat, lng float64) (*models.GuessResult, error)
	// Finish stores the game in the local history.
	Finish(ctx context.Context, username string, s *game.Session) (models.GameRecord, error)
	History(ctx context.Context, username string, limit int) ([]models.GameRecord, error)
	BestGame(ctx context.Context, username string) (int64, error)
	Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
	Me(ctx context.Context) (*models.Profile, error)
	// ImageLink resolves a location's image reference to an absolute URL.
	ImageLink(loc models.Location) string
}

type gameService struct {
	client  client.Client
	history history.Repository
}

func NewGameService(c client.Client, h history.Repository) GameService {
	return &gameService{client: c, history: h}
}

func (g *gameService) NextLocation(ctx context.Context, s *game.Session) (*models.Location, error) {
	if s.Over() {
		return nil, game.ErrGameOver
	}
	return g.client.RandomLocation(ctx)
}

func (g *gameService) Guess(ctx context.Context, s *game.Session, loc models.Location, lat, lng float64) (*models.GuessResult, error) {
	if s.Over() {
		return nil, game.ErrGameOver
	}
	res, err := g.client.SubmitGuess(ctx, loc.ID, lat, lng)
	if err != nil {
		return nil, err
	}
	if err := s.Record(loc, *res); err != nil {
		return nil, err
	}
	return res, nil
}

func (g *gameService) Finish(ctx context.Context, username string, s *game.Session) (models.GameRecord, error) {
	sum := s.Summary()
	rec, err := g.history.Add(ctx, models.GameRecord{
		Username: username,
		Rounds:   sum.Played,
		Points:   sum.Total,
	})
	if err != nil {
		return rec, fmt.Errorf("saving game: %w", err)
	}
	return rec, nil
}

func (g *gameService) History(ctx context.Context, username string, limit int) ([]models.GameRecord, error) {
	return g.history.ListByUser(ctx, username, limit)
}

func (g *gameService) BestGame(ctx context.Context, username string) (int64, error) {
	return g.history.Best(ctx, username)
}

func (g *gameService) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	return g.client.Leaderboard(ctx, limit)
}

func (g *gameService) Me(ctx context.Context) (*models.Profile, error) {
	return g.client.Me(ctx)
}

func (g *gameService) ImageLink(loc models.Location) string {
	return loc.ImageLink(g.client.BaseURL())
}
