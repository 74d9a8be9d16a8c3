// Package history stores finished games in the client's local SQLite
// database so a player can review past results offline.
package history

import (
	"context"

	"github.com/dmitrijs2005/streetsmarts/internal/client/models"
)

type Repository interface {
	// Add stores g and returns it with ID populated.
	Add(ctx context.Context, g models.GameRecord) (models.GameRecord, error)
	// ListByUser returns the most recent games of username, newest first.
	ListByUser(ctx context.Context, username string, limit int) ([]models.GameRecord, error)
	// Best returns the highest single-game score of username, 0 if none.
	Best(ctx context.Context, username string) (int64, error)
}
