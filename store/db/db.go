package db

import (
	"github.com/pkg/errors"

	"github.com/coffeops/genkabot/internal/profile"
	"github.com/coffeops/genkabot/store"
	"github.com/coffeops/genkabot/store/db/postgres"
	"github.com/coffeops/genkabot/store/db/sqlite"
)

// NewDBDriver creates new db driver based on profile.
//
// SQLite is the default and matches the single-process deployment the bot is
// built for. PostgreSQL is available for installations that already run one.
func NewDBDriver(profile *profile.Profile) (store.Driver, error) {
	var driver store.Driver
	var err error

	switch profile.Driver {
	case "sqlite":
		driver, err = sqlite.NewDB(profile)
	case "postgres":
		driver, err = postgres.NewDB(profile)
	default:
		return nil, errors.Errorf("unknown db driver %q: only 'sqlite' and 'postgres' are supported", profile.Driver)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create db driver")
	}
	return driver, nil
}
