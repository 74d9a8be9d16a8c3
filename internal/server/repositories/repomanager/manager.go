package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/streetsmarts/internal/dbx"
	"github.com/dmitrijs2005/streetsmarts/internal/server/repositories/locations"
	"github.com/dmitrijs2005/streetsmarts/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to a DBTX, so the same
// code runs against *sql.DB or inside dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Locations(db dbx.DBTX) locations.Repository
}
