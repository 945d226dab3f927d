package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SidhantUppal/roombook/internal/config"
)

type PostgresRepo struct {
	pool *pgxpool.Pool
}

// Connect creates the connection pool and returns the repository.
func Connect(ctx context.Context, cfg *config.Config) (*PostgresRepo, error) {
	const op = "storage.postgres.Connect"

	poolConfig, err := pgxpool.ParseConfig(dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse config: %w", op, err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = time.Minute * 30

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create pool: %w", op, err)
	}

	return &PostgresRepo{pool: pool}, nil
}

// Bootstrap creates the schema if it does not exist yet.
func (r *PostgresRepo) Bootstrap(ctx context.Context) error {
	const op = "storage.postgres.Bootstrap"

	_, err := r.pool.Exec(ctx, schema)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id         BIGSERIAL PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name  TEXT NOT NULL,
	email      TEXT NOT NULL UNIQUE,
	pass_hash  BYTEA NOT NULL,
	is_admin   BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS bookings (
	id            BIGSERIAL PRIMARY KEY,
	user_id       BIGINT NOT NULL REFERENCES users (id),
	room_number   SMALLINT NOT NULL,
	booking_start TIMESTAMPTZ NOT NULL,
	booking_end   TIMESTAMPTZ NOT NULL,
	notes         TEXT NOT NULL DEFAULT '',
	cancelled     BOOLEAN NOT NULL DEFAULT FALSE,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	modified_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS bookings_room_idx ON bookings (room_number, booking_start);

CREATE TABLE IF NOT EXISTS todos (
	id          BIGSERIAL PRIMARY KEY,
	user_id     BIGINT NOT NULL REFERENCES users (id),
	text        TEXT NOT NULL,
	completed   BOOLEAN NOT NULL DEFAULT FALSE,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	modified_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Ping checks that the database is reachable.
func (r *PostgresRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Stat exposes pool statistics for the health endpoint.
func (r *PostgresRepo) Stat() map[string]string {
	s := r.pool.Stat()

	return map[string]string{
		"total_conns":    fmt.Sprint(s.TotalConns()),
		"acquired_conns": fmt.Sprint(s.AcquiredConns()),
		"idle_conns":     fmt.Sprint(s.IdleConns()),
	}
}

// Close closes the connection pool.
func (r *PostgresRepo) Close() {
	r.pool.Close()
}

func dsn(cfg *config.Config) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s database=%s sslmode=%s",
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.DBName,
		cfg.Postgres.SSLMode,
	)
}
