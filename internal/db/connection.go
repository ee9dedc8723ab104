package db

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/imgajeed76/erpgrid/internal/records"
)

// DB holds a PostgreSQL connection pool. Every connection is opened
// read-only; erpgrid never writes back to the ERP database.
type DB struct {
	pool *pgxpool.Pool
	mu   sync.RWMutex
}

// sessionGUCs are applied to every new connection in the pool
var sessionGUCs = []string{
	"SET default_transaction_read_only = on",
	"SET statement_timeout = '30s'",
}

// Connect establishes a small connection pool for loading record sets
func Connect(ctx context.Context, url string) (*DB, error) {
	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("invalid connection URL: %w", err)
	}

	// Loading runs three queries; more connections would sit idle.
	config.MaxConns = 4
	config.MinConns = 0
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 5 * time.Minute

	config.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for _, guc := range sessionGUCs {
			if _, err := conn.Exec(ctx, guc); err != nil {
				return fmt.Errorf("failed to set GUC %q on new connection: %w", guc, err)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the database connection
func (db *DB) Close() {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.pool != nil {
		db.pool.Close()
		db.pool = nil
	}
}

// Pool returns the underlying connection pool
func (db *DB) Pool() *pgxpool.Pool {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.pool
}

// Dataset loads leads, approvals and employees in one read-only transaction
// so the three sets are consistent with each other.
func (db *DB) Dataset(ctx context.Context) (*records.Dataset, error) {
	pool := db.Pool()
	if pool == nil {
		return nil, errNotConnected
	}

	tx, err := pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly, IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	return loadDataset(ctx, func(ctx context.Context, query string) (rows, error) {
		r, err := tx.Query(ctx, query)
		if err != nil {
			return nil, err
		}
		return pgxRows{r}, nil
	})
}

// pgxRows adapts pgx.Rows to the rows interface shared with database/sql.
type pgxRows struct {
	pgx.Rows
}

func (r pgxRows) Close() error {
	r.Rows.Close()
	return r.Rows.Err()
}
