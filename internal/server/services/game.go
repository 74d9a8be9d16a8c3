package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/streetsmarts/internal/dbx"
	"github.com/dmitrijs2005/streetsmarts/internal/logging"
	"github.com/dmitrijs2005/streetsmarts/internal/server/models"
	"github.com/dmitrijs2005/streetsmarts/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/streetsmarts/internal/server/scoring"
)

const (
	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = 100
)

// ImageErrorMessage is reported to clients when a location has no image.
const ImageErrorMessage = "Failed to download image"

// ImageCache is what GameService needs from imagecache.Cache.
type ImageCache interface {
	Get(ctx context.Context, lat, lng float64) (string, error)
	URL(ctx context.Context, name string) (string, error)
	Names(ctx context.Context) ([]string, error)
}

// RoundLocation is a location prepared for play. ImageError is set instead
// of ImageURL when the image could not be obtained.
type RoundLocation struct {
	Location   *models.Location
	ImageURL   string
	ImageError string
}

type GameService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	images      ImageCache
	log         logging.Logger
}

func NewGameService(db *sql.DB, m repomanager.RepositoryManager, images ImageCache, log logging.Logger) *GameService {
	return &GameService{
		db:          db,
		repomanager: m,
		images:      images,
		log:         log.With("component", "game"),
	}
}

// RandomLocation picks a location and makes sure its image is cached.
// Image problems do not fail the call.
func (s *GameService) RandomLocation(ctx context.Context) (*RoundLocation, error) {
	repo := s.repomanager.Locations(s.db)

	loc, err := repo.Random(ctx)
	if err != nil {
		return nil, err
	}

	round := &RoundLocation{Location: loc}

	if loc.NeedsImage() {
		name, err := s.images.Get(ctx, loc.Lat, loc.Lng)
		if err != nil {
			s.log.Warn(ctx, "image fetch failed", "location_id", loc.ID, "error", err)
			round.ImageError = ImageErrorMessage
			return round, nil
		}
		if err := repo.SetImageRef(ctx, loc.ID, name); err != nil {
			s.log.Warn(ctx, "storing image reference failed", "location_id", loc.ID, "error", err)
		}
		loc.ImageRef = name
	}

	u, err := s.images.URL(ctx, loc.ImageRef)
	if err != nil {
		s.log.Warn(ctx, "resolving image url failed", "location_id", loc.ID, "error", err)
		round.ImageError = ImageErrorMessage
		return round, nil
	}
	round.ImageURL = u
	return round, nil
}

// SubmitGuess scores g and credits the user. Invalid coordinates wrap
// common.ErrValidation; an unknown location is common.ErrorNotFound.
func (s *GameService) SubmitGuess(ctx context.Context, g models.Guess) (*models.GuessResult, error) {
	guess := scoring.Coordinate{Lat: g.Lat, Lng: g.Lng}
	if err := guess.Validate(); err != nil {
		return nil, err
	}

	loc, err := s.repomanager.Locations(s.db).GetByID(ctx, g.LocationID)
	if err != nil {
		return nil, err
	}

	res := scoring.Evaluate(scoring.Coordinate{Lat: loc.Lat, Lng: loc.Lng}, guess)
	out := &models.GuessResult{DistanceMeters: res.DistanceMeters, PointsAwarded: res.Points}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		total, rounds, err := s.repomanager.Users(tx).AddScore(ctx, g.UserID, res.Points)
		if err != nil {
			return err
		}
		out.TotalScore, out.RoundsPlayed = total, rounds
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("crediting score: %w", err)
	}

	s.log.Info(ctx, "guess scored",
		"user_id", g.UserID, "location_id", loc.ID,
		"distance_m", res.DistanceMeters, "points", res.Points)
	return out, nil
}

// Leaderboard returns the top users; limit is clamped to [1, MaxLeaderboardLimit].
func (s *GameService) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	limit = min(max(limit, 1), MaxLeaderboardLimit)
	return s.repomanager.Users(s.db).Top(ctx, limit)
}

// CachedImages lists stored image names.
func (s *GameService) CachedImages(ctx context.Context) ([]string, error) {
	return s.images.Names(ctx)
}
