package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "modernc.org/sqlite"             // pure go sqlite driver
)

// Dialect selects the SQL flavour of an SQL backend.
type Dialect int

const (
	// SQLite uses modernc.org/sqlite ("sqlite" driver).
	SQLite Dialect = iota
	// Postgres uses pgx through database/sql ("pgx" driver).
	Postgres
)

// String returns "sqlite" or "postgres".
func (d Dialect) String() string {
	switch d {
	case SQLite:
		return "sqlite"
	case Postgres:
		return "postgres"
	}

	return fmt.Sprintf("dialect(%d)", int(d))
}

// ParseDialect accepts "sqlite", "postgres" or "pgx".
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	}

	return SQLite, fmt.Errorf("%q: %w", s, ErrDialect)
}

func (d Dialect) driver() string {
	if d == Postgres {
		return "pgx"
	}

	return "sqlite"
}

type queries struct {
	schema, upsert, get, del, list string
}

func (d Dialect) queries() queries {
	q := queries{
		list: `SELECT object_key FROM enzfit_objects ORDER BY object_key`,
	}
	switch d {
	case Postgres:
		q.schema = `CREATE TABLE IF NOT EXISTS enzfit_objects (
		object_key TEXT PRIMARY KEY,
		payload BYTEA NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`
		q.upsert = `INSERT INTO enzfit_objects(object_key,payload,updated_at) VALUES($1,$2,$3) ON CONFLICT(object_key) DO UPDATE SET payload=EXCLUDED.payload, updated_at=EXCLUDED.updated_at`
		q.get = `SELECT payload FROM enzfit_objects WHERE object_key=$1`
		q.del = `DELETE FROM enzfit_objects WHERE object_key=$1`
	default:
		q.schema = `CREATE TABLE IF NOT EXISTS enzfit_objects (
		object_key TEXT PRIMARY KEY,
		payload BLOB NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`
		q.upsert = `INSERT INTO enzfit_objects(object_key,payload,updated_at) VALUES(?,?,?) ON CONFLICT(object_key) DO UPDATE SET payload=excluded.payload, updated_at=excluded.updated_at`
		q.get = `SELECT payload FROM enzfit_objects WHERE object_key=?`
		q.del = `DELETE FROM enzfit_objects WHERE object_key=?`
	}

	return q
}

// SQL is a Backend storing one row per key.
type SQL struct {
	db      *sql.DB
	dialect Dialect
	q       queries
	owned   bool
}

// OpenSQL opens dsn with the driver of d, checks connectivity and ensures
// the object table exists. For SQLite dsn is a file path.
func OpenSQL(ctx context.Context, d Dialect, dsn string) (*SQL, error) {
	if d != SQLite && d != Postgres {
		return nil, fmt.Errorf("%s: %w", d, ErrDialect)
	}
	db, err := sql.Open(d.driver(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d, err)
	}
	if d == SQLite {
		// sqlite serializes writers
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", d, err)
	}
	s, err := NewSQL(ctx, db, d)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	s.owned = true

	return s, nil
}

// NewSQL wraps an already opened database. Close leaves db open.
func NewSQL(ctx context.Context, db *sql.DB, d Dialect) (*SQL, error) {
	if d != SQLite && d != Postgres {
		return nil, fmt.Errorf("%s: %w", d, ErrDialect)
	}
	q := d.queries()
	if _, err := db.ExecContext(ctx, q.schema); err != nil {
		return nil, fmt.Errorf("ensure object table: %w", err)
	}

	return &SQL{db: db, dialect: d, q: q}, nil
}

// Dialect returns the SQL flavour in use.
func (s *SQL) Dialect() Dialect { return s.dialect }

// DB exposes the underlying handle.
func (s *SQL) DB() *sql.DB { return s.db }

// Close releases the database if OpenSQL created it.
func (s *SQL) Close() error {
	if !s.owned {
		return nil
	}

	return s.db.Close()
}

// Put implements Backend.
func (s *SQL) Put(ctx context.Context, key string, data []byte) error {
	if data == nil {
		data = []byte{}
	}
	if _, err := s.db.ExecContext(ctx, s.q.upsert, key, data, time.Now().UTC()); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}

	return nil
}

// Get implements Backend.
func (s *SQL) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, s.q.get, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}

	return data, nil
}

// Delete implements Backend.
func (s *SQL) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.q.del, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}

	return nil
}

// List implements Backend.
func (s *SQL) List(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, s.q.list)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("list: %w", err)
		}
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	// postgres orders by collation, not bytes
	sort.Strings(keys)

	return keys, nil
}
