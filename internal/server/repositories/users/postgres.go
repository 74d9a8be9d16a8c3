package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/streetsmarts/internal/common"
	"github.com/dmitrijs2005/streetsmarts/internal/dbx"
	"github.com/dmitrijs2005/streetsmarts/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (username, password_hash)
         VALUES ($1, $2)
		 RETURNING id, total_score, rounds_played, created_at
		 `

	err := r.db.QueryRowContext(ctx, query, user.UserName, user.PasswordHash).
		Scan(&user.ID, &user.TotalScore, &user.RoundsPlayed, &user.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	query :=
		`SELECT id, username, password_hash, total_score, rounds_played, created_at FROM users
		 WHERE username = $1
		 `

	return r.getOne(ctx, query, userName)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, username, password_hash, total_score, rounds_played, created_at FROM users
		 WHERE id = $1
		 `

	return r.getOne(ctx, query, id)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&user.ID, &user.UserName, &user.PasswordHash, &user.TotalScore, &user.RoundsPlayed, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) AddScore(ctx context.Context, id string, points int) (int64, int64, error) {
	query :=
		`UPDATE users SET total_score = total_score + $2, rounds_played = rounds_played + 1
		 WHERE id = $1
		 RETURNING total_score, rounds_played
		 `

	var total, rounds int64
	err := r.db.QueryRowContext(ctx, query, id, points).Scan(&total, &rounds)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, common.ErrorNotFound
		}
		return 0, 0, fmt.Errorf("db error: %w", err)
	}

	return total, rounds, nil
}

func (r *PostgresRepository) Top(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	query :=
		`SELECT username, total_score, rounds_played FROM users
		 ORDER BY total_score DESC, username ASC
		 LIMIT $1
		 `

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.LeaderboardEntry, 0, limit)
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.UserName, &e.TotalScore, &e.RoundsPlayed); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
