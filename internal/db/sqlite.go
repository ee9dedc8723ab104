package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/imgajeed76/erpgrid/internal/records"
)

// SQLite reads records from a local SQLite file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens path read-only.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=query_only(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Dataset(ctx context.Context) (*records.Dataset, error) {
	return loadDataset(ctx, func(ctx context.Context, query string) (rows, error) {
		return s.db.QueryContext(ctx, query)
	})
}
