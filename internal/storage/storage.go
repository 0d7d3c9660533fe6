package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/trackease/internal/config"
	"github.com/carson-networks/trackease/internal/storage/filestore"
	"github.com/carson-networks/trackease/internal/storage/sqlconfig"
)

// Storage exposes autocommit tables through Reader and hands out
// transactional Writers. Both backends satisfy the same contract.
type Storage struct {
	Reader

	begin func(ctx context.Context) (*Writer, error)
	ping  func(ctx context.Context) error
	close func() error
}

// NewStorage opens the backend selected by cfg.StorageBackend.
func NewStorage(cfg *config.Config) (*Storage, error) {
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		return NewPostgresStorage(cfg.PostgresURL())
	case config.BackendFile, "":
		loc, err := cfg.Location()
		if err != nil {
			return nil, errors.Wrap(err, "config.Location")
		}
		return NewFileStorage(cfg.DataFile, loc)
	default:
		return nil, errors.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// NewFileStorage opens the JSON document at path. Zone-less stored dates are
// read in loc.
func NewFileStorage(path string, loc *time.Location) (*Storage, error) {
	store, err := filestore.Open(path, loc)
	if err != nil {
		return nil, err
	}

	return &Storage{
		Reader: Reader{
			Transactions: store.Transactions(),
			Users:        store.Users(),
		},
		begin: func(ctx context.Context) (*Writer, error) {
			tx, err := store.Begin(ctx)
			if err != nil {
				return nil, err
			}
			return NewWriter(tx.Transactions(), tx.Users(), tx.Commit, tx.Rollback), nil
		},
		ping:  store.Ping,
		close: func() error { return nil },
	}, nil
}

func NewPostgresStorage(connStr string) (*Storage, error) {
	db, err := sqlconfig.Open(connStr)
	if err != nil {
		return nil, err
	}
	return newBobStorage(db), nil
}

func newBobStorage(db *sql.DB) *Storage {
	exec := bob.NewDB(db)

	return &Storage{
		Reader: Reader{
			Transactions: sqlconfig.NewTransactionsTable(exec),
			Users:        sqlconfig.NewUsersTable(exec),
		},
		begin: func(ctx context.Context) (*Writer, error) {
			tx, err := exec.BeginTx(ctx, nil)
			if err != nil {
				return nil, errors.Wrap(err, "BeginTx")
			}
			return NewWriter(
				sqlconfig.NewTransactionsTable(tx),
				sqlconfig.NewUsersTable(tx),
				func() error { return tx.Commit(context.Background()) },
				func() error { return tx.Rollback(context.Background()) },
			), nil
		},
		ping:  db.PingContext,
		close: db.Close,
	}
}

// Write begins a unit of work. The caller must Commit or Rollback it.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	return s.begin(ctx)
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

func (s *Storage) Close() error {
	return s.close()
}
