package history

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/streetsmarts/internal/client/models"
	"github.com/dmitrijs2005/streetsmarts/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Add(ctx context.Context, g models.GameRecord) (models.GameRecord, error) {
	if g.FinishedAt.IsZero() {
		g.FinishedAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO games (username, rounds, points, finished_at) VALUES (?, ?, ?, ?)
	`, g.Username, g.Rounds, g.Points, g.FinishedAt)
	if err != nil {
		return g, fmt.Errorf("failed to add game: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return g, fmt.Errorf("failed to read game id: %w", err)
	}
	g.ID = id
	return g, nil
}

func (r *SQLiteRepository) ListByUser(ctx context.Context, username string, limit int) ([]models.GameRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, username, rounds, points, finished_at
		FROM games
		WHERE username = ?
		ORDER BY finished_at DESC, id DESC
		LIMIT ?
	`, username, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	var result []models.GameRecord
	for rows.Next() {
		var g models.GameRecord
		if err := rows.Scan(&g.ID, &g.Username, &g.Rounds, &g.Points, &g.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan game row: %w", err)
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate game rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Best(ctx context.Context, username string) (int64, error) {
	var best int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(points), 0) FROM games WHERE username = ?`, username).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("failed to read best game: %w", err)
	}
	return best, nil
}
