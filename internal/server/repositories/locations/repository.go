package locations

import (
	"context"

	"github.com/dmitrijs2005/streetsmarts/internal/server/models"
)

type Repository interface {
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, loc *models.Location) (*models.Location, error)
	GetByID(ctx context.Context, id int64) (*models.Location, error)
	// Random returns a uniformly chosen location or common.ErrNoLocations.
	Random(ctx context.Context) (*models.Location, error)
	SetImageRef(ctx context.Context, id int64, ref string) error
}
