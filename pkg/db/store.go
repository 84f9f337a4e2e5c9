package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/yumyai/phamfasta/logger"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib" // driver "pgx"
	_ "modernc.org/sqlite"             // driver "sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// Store is the repository handle for one run or server lifetime. It is
// opened explicitly and must be closed by its owner.
type Store struct {
	genetableSQL *sql.DB
	driver       string
}

func Open(driver, dsn string) (*Store, error) {
	switch driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	// One shared connection; every lookup is sequential.
	db.SetMaxOpenConns(1)

	return NewStore(db, driver), nil
}

func NewStore(db *sql.DB, driver string) *Store {
	return &Store{
		genetableSQL: db,
		driver:       driver,
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.genetableSQL.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.genetableSQL.Close()
}

// DB exposes the underlying handle, e.g. for loading fixtures in tests.
func (s *Store) DB() *sql.DB { return s.genetableSQL }

// rebind rewrites ? placeholders into $n for Postgres.
func (s *Store) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *Store) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	q := s.rebind(query)
	logger.Debug("Query executed", zap.String("query", q), zap.Any("args", args))
	return s.genetableSQL.QueryContext(ctx, q, args...)
}

func (s *Store) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	q := s.rebind(query)
	logger.Debug("Query executed", zap.String("query", q), zap.Any("args", args))
	return s.genetableSQL.QueryRowContext(ctx, q, args...)
}
