package sqlconfig

import (
	"database/sql"
	"embed"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Open returns a lib/pq handle for connStr.
func Open(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, errors.Wrap(err, "sql.Open")
	}
	return db, nil
}

// Migrate applies the embedded migrations on a dedicated connection and
// reports the schema version before and after.
func Migrate(connStr string) (preMigrationVersion uint, postMigrationVersion uint, err error) {
	db, err := Open(connStr)
	if err != nil {
		return 0, 0, err
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		db.Close()
		return 0, 0, errors.Wrap(err, "postgres.WithInstance")
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		db.Close()
		return 0, 0, errors.Wrap(err, "iofs.New")
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		db.Close()
		return 0, 0, errors.Wrap(err, "migrate.NewWithInstance")
	}
	defer func() {
		m.Close()
		db.Close()
	}()

	preMigrationVersion, _, err = m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		preMigrationVersion = 0
	} else if err != nil {
		return 0, 0, errors.Wrap(err, "m.Version.preMigrationVersion")
	}

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return preMigrationVersion, 0, errors.Wrap(err, "m.Up")
	}

	postMigrationVersion, _, err = m.Version()
	if err != nil {
		return preMigrationVersion, 0, errors.Wrap(err, "m.Version.postMigrationVersion")
	}

	return preMigrationVersion, postMigrationVersion, nil
}
