package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gksession/internal/client/migrations"
	"github.com/dmitrijs2005/gksession/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gksession/internal/dbx"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

const savedAtSuffix = ".saved_at"

// SQLiteStorage implements Storage on top of the metadata repository.
type SQLiteStorage struct {
	db  *sql.DB
	now func() time.Time
}

// New wraps an already migrated database.
func New(db *sql.DB) *SQLiteStorage {
	return &SQLiteStorage{db: db, now: time.Now}
}

// Open opens (or creates) the SQLite database at dsn and applies migrations.
func Open(ctx context.Context, dsn string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// SQLite allows one writer; a single connection also keeps ":memory:" alive.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return New(db), nil
}

// RunMigrations brings the schema up to date. It is idempotent.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// DB exposes the underlying handle.
func (s *SQLiteStorage) DB() *sql.DB {
	return s.db
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func (s *SQLiteStorage) GetItem(ctx context.Context, key string) (Item, bool, error) {
	repo := metadata.NewSQLiteRepository(s.db)

	value, err := repo.Get(ctx, key)
	if err != nil {
		return Item{}, false, err
	}
	if value == nil {
		return Item{}, false, nil
	}

	item := Item{Value: string(value)}

	raw, err := repo.Get(ctx, key+savedAtSuffix)
	if err != nil {
		return Item{}, false, err
	}
	if raw != nil {
		if ts, perr := time.Parse(time.RFC3339Nano, string(raw)); perr == nil {
			item.SavedAt = ts
		}
	}
	return item, true, nil
}

// SetItem writes the value and its timestamp in one transaction.
func (s *SQLiteStorage) SetItem(ctx context.Context, key string, value string) error {
	savedAt := s.now().UTC().Format(time.RFC3339Nano)

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, key, []byte(value)); err != nil {
			return err
		}
		return repo.Set(ctx, key+savedAtSuffix, []byte(savedAt))
	})
}

func (s *SQLiteStorage) RemoveItem(ctx context.Context, key string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, key); err != nil {
			return err
		}
		return repo.Delete(ctx, key+savedAtSuffix)
	})
}
