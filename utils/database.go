package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound is returned when a user or feedback row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when an insert violates a unique constraint.
	ErrDuplicate = errors.New("duplicate value")
	// ErrInvalidCredentials is returned when a login attempt fails. It never
	// distinguishes an unknown username from a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		username   VARCHAR(20) PRIMARY KEY,
		password   TEXT NOT NULL,
		email      VARCHAR(50) NOT NULL UNIQUE,
		first_name VARCHAR(30) NOT NULL,
		last_name  VARCHAR(30) NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS feedback (
		id       SERIAL PRIMARY KEY,
		title    VARCHAR(100) NOT NULL,
		content  TEXT NOT NULL,
		username VARCHAR(20) NOT NULL REFERENCES users(username) ON DELETE CASCADE
	);`,
}

// Store wraps the Postgres connection pool and owns every query the
// handlers run. Handlers receive it explicitly instead of reaching for a
// package-level pool.
type Store struct {
	pool *pgxpool.Pool
}

func OpenDB(dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing database DSN: %w", err)
	}

	config.MaxConns = 20
	config.MinConns = 2
	config.MaxConnIdleTime = 5 * time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return pool, nil
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// EnsureSchema creates the users and feedback tables if they are missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	for _, stmt := range schema {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}
