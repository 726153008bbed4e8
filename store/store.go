package store

import (
	"context"

	"github.com/lithammer/shortuuid/v4"

	"github.com/coffeops/genkabot/internal/profile"
)

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	return s.driver.Close()
}

// Ping verifies the underlying database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.driver.GetDB().PingContext(ctx)
}

// Migrate creates the schema if needed.
func (s *Store) Migrate(ctx context.Context) error {
	return s.driver.Migrate(ctx)
}

// CreateReport persists a finished report and returns it with the assigned id.
func (s *Store) CreateReport(ctx context.Context, create *Report) (*Report, error) {
	if create.UID == "" {
		create.UID = shortuuid.New()
	}
	return s.driver.CreateReport(ctx, create)
}

// ListReports returns reports matching the filter, newest first.
func (s *Store) ListReports(ctx context.Context, find *FindReport) ([]*Report, error) {
	return s.driver.ListReports(ctx, find)
}
