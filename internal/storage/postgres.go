package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    player TEXT NOT NULL DEFAULT '',
    score INTEGER NOT NULL,
    cheese INTEGER NOT NULL DEFAULT 0,
    boosts INTEGER NOT NULL DEFAULT 0,
    elapsed DOUBLE PRECISION NOT NULL DEFAULT 0,
    difficulty TEXT NOT NULL DEFAULT '',
    seed BIGINT NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_runs_score ON runs(score DESC);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
`

// PostgresStore is the Store backed by a PostgreSQL connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore connects to PostgreSQL and initializes the schema.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage: cannot connect to postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close releases database resources.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// Get returns the value stored under key.
func (s *PostgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.pool.QueryRow(ctx, `SELECT value FROM kv WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key.
func (s *PostgresStore) Set(ctx context.Context, key, value string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES ($1, $2, NOW())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, value)
	if err != nil {
		return fmt.Errorf("storage: cannot write %q: %w", key, err)
	}
	return nil
}

// intValue reads kv.value as a non-negative integer, 0 when it is not one.
const intValue = `CASE WHEN btrim(kv.value) ~ '^[0-9]{1,18}$' THEN btrim(kv.value)::bigint ELSE 0 END`

// SetMax raises the integer stored under key to value.
func (s *PostgresStore) SetMax(ctx context.Context, key string, value int) (int, error) {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES ($1, $2, NOW())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
		 WHERE $3::bigint > `+intValue,
		key, strconv.Itoa(value), int64(value))
	if err != nil {
		return 0, fmt.Errorf("storage: cannot raise %q: %w", key, err)
	}

	var stored int64
	err = s.pool.QueryRow(ctx, `SELECT `+intValue+` FROM kv WHERE key = $1`, key).Scan(&stored)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read %q: %w", key, err)
	}
	return int(stored), nil
}

// Delete removes key.
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM kv WHERE key = $1`, key); err != nil {
		return fmt.Errorf("storage: cannot delete %q: %w", key, err)
	}
	return nil
}

// SaveRun records a finished run.
func (s *PostgresStore) SaveRun(ctx context.Context, run Run) (Run, error) {
	run = prepareRun(run)
	_, err := s.pool.Exec(ctx,
		`INSERT INTO runs (id, player, score, cheese, boosts, elapsed, difficulty, seed, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		run.ID, run.Player, run.Score, run.Cheese, run.Boosts, run.Elapsed,
		run.Difficulty, run.Seed, run.CreatedAt)
	if err != nil {
		return run, fmt.Errorf("storage: cannot save run: %w", err)
	}
	return run, nil
}

const postgresRunColumns = `id, player, score, cheese, boosts, elapsed, difficulty, seed, created_at`

// TopRuns returns the highest scoring runs.
func (s *PostgresStore) TopRuns(ctx context.Context, limit int) ([]Run, error) {
	return s.queryRuns(ctx,
		`SELECT `+postgresRunColumns+` FROM runs ORDER BY score DESC, created_at ASC LIMIT $1`,
		normalizeLimit(limit))
}

// RecentRuns returns the latest runs.
func (s *PostgresStore) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	return s.queryRuns(ctx,
		`SELECT `+postgresRunColumns+` FROM runs ORDER BY created_at DESC LIMIT $1`,
		normalizeLimit(limit))
}

// RunByID looks up a single run.
func (s *PostgresStore) RunByID(ctx context.Context, id string) (Run, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+postgresRunColumns+` FROM runs WHERE id = $1`, id)
	run, err := scanPostgresRun(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Run{}, ErrNotFound
	}
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot get run: %w", err)
	}
	return run, nil
}

func (s *PostgresStore) queryRuns(ctx context.Context, query string, args ...any) ([]Run, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanPostgresRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

func scanPostgresRun(row pgx.Row) (Run, error) {
	var run Run
	err := row.Scan(&run.ID, &run.Player, &run.Score, &run.Cheese, &run.Boosts,
		&run.Elapsed, &run.Difficulty, &run.Seed, &run.CreatedAt)
	if err != nil {
		return Run{}, err
	}
	run.CreatedAt = run.CreatedAt.UTC()
	return run, nil
}

// Stats aggregates all runs.
func (s *PostgresStore) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	var last *time.Time
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0)::float8,
		        COALESCE(SUM(cheese), 0), COALESCE(SUM(elapsed), 0)::float8, MAX(created_at)
		 FROM runs`,
	).Scan(&st.Runs, &st.HighScore, &st.AvgScore, &st.TotalCheese, &st.TotalSeconds, &last)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	if last != nil {
		st.LastPlayed = last.UTC()
	}
	return st, nil
}

// ClearRuns deletes the run history.
func (s *PostgresStore) ClearRuns(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM runs`); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}
