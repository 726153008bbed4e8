package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	// Migrate creates the report schema if it does not exist yet.
	Migrate(ctx context.Context) error

	// Report model related methods.
	CreateReport(ctx context.Context, create *Report) (*Report, error)
	ListReports(ctx context.Context, find *FindReport) ([]*Report, error)
}
