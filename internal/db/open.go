package db

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/imgajeed76/erpgrid/internal/records"
	"github.com/imgajeed76/erpgrid/internal/util"
)

// Source is a record source that holds a connection.
type Source interface {
	records.Source
	Close()
}

type pgSource struct{ *DB }

type sqliteSource struct{ *SQLite }

func (s sqliteSource) Close() { _ = s.SQLite.Close() }

// Open connects to dsn: PostgreSQL for postgres:// and postgresql:// urls,
// otherwise an existing SQLite file (optionally prefixed with sqlite://).
func Open(ctx context.Context, dsn string) (Source, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		db, err := Connect(ctx, dsn)
		if err != nil {
			return nil, util.DatabaseConnectionError(dsn, err)
		}
		return pgSource{db}, nil

	case strings.Contains(dsn, "://") && !strings.HasPrefix(dsn, "sqlite://"):
		return nil, fmt.Errorf("%w: %s", util.ErrUnsupportedDSN, util.RedactURL(dsn))
	}

	path := strings.TrimPrefix(dsn, "sqlite://")
	if _, err := os.Stat(path); err != nil {
		return nil, util.DatabaseConnectionError(path, err).
			WithMessage("SQLite file not found: " + path)
	}
	s, err := OpenSQLite(ctx, path)
	if err != nil {
		return nil, util.DatabaseConnectionError(path, err)
	}
	return sqliteSource{s}, nil
}
