package locations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/streetsmarts/internal/common"
	"github.com/dmitrijs2005/streetsmarts/internal/dbx"
	"github.com/dmitrijs2005/streetsmarts/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM locations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) Create(ctx context.Context, loc *models.Location) (*models.Location, error) {
	query :=
		`INSERT INTO locations (name, lat, lng, image_ref)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query, loc.Name, loc.Lat, loc.Lng, nullString(loc.ImageRef)).Scan(&loc.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return loc, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Location, error) {
	query :=
		`SELECT id, name, lat, lng, image_ref FROM locations
		 WHERE id = $1
		 `

	loc, err := scanLocation(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return loc, nil
}

func (r *PostgresRepository) Random(ctx context.Context) (*models.Location, error) {
	query :=
		`SELECT id, name, lat, lng, image_ref FROM locations
		 ORDER BY random()
		 LIMIT 1
		 `

	loc, err := scanLocation(r.db.QueryRowContext(ctx, query))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNoLocations
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return loc, nil
}

func (r *PostgresRepository) SetImageRef(ctx context.Context, id int64, ref string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE locations SET image_ref = $2 WHERE id = $1`, id, nullString(ref))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func scanLocation(row *sql.Row) (*models.Location, error) {
	var (
		loc models.Location
		ref sql.NullString
	)
	if err := row.Scan(&loc.ID, &loc.Name, &loc.Lat, &loc.Lng, &ref); err != nil {
		return nil, err
	}
	loc.ImageRef = ref.String
	return &loc, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
