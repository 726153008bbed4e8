package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pkg/errors"
	// Import the SQLite driver.
	_ "modernc.org/sqlite"

	"github.com/coffeops/genkabot/internal/profile"
	"github.com/coffeops/genkabot/store"
)

type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

// NewDB opens a database specified by its database driver name and a
// driver-specific data source name, usually consisting of at least a
// database name and connection information.
func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile == nil {
		return nil, errors.New("profile is nil")
	}

	// Connect to the database with some sane settings:
	//   - No shared-cache: it's obsolete; WAL journal mode is a better solution.
	//   - No foreign key constraints: it's currently disabled by default, but it's a
	//     good practice to be explicit and prevent future surprises on SQLite upgrades.
	//   - Journal mode set to WAL: it's the recommended journal mode for most applications
	//     as it prevents locking issues.
	sqliteDB, err := sql.Open("sqlite", profile.DSN+"?_pragma=foreign_keys(0)&_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open db with dsn: %s", profile.DSN)
	}

	driver := DB{db: sqliteDB, profile: profile}
	return &driver, nil
}

func (d *DB) GetDB() *sql.DB {
	return d.db
}

func (d *DB) Close() error {
	return d.db.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS report (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	uid TEXT NOT NULL UNIQUE,
	user_id INTEGER NOT NULL,
	username TEXT,
	full_name TEXT NOT NULL,
	site_name TEXT NOT NULL,
	photos TEXT NOT NULL,
	created_ts BIGINT NOT NULL DEFAULT (strftime('%s', 'now'))
);

CREATE INDEX IF NOT EXISTS idx_report_user_id ON report (user_id);
CREATE INDEX IF NOT EXISTS idx_report_site_name ON report (site_name);
`

func (d *DB) Migrate(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
