// Package storage persists the best score and the history of finished runs.
// SQLite (pure Go, modernc.org/sqlite) is the default backend; a postgres://
// DSN selects PostgreSQL through pgx.
package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultPath is where the SQLite database lives unless --db says otherwise.
const DefaultPath = "~/.cheesechase/chase.db"

// ErrNotFound is returned when a single-row lookup matches nothing.
var ErrNotFound = errors.New("storage: not found")

// Run is one finished game.
type Run struct {
	ID         string // uuid
	Player     string // local user or SSH user name
	Score      int
	Cheese     int // cheese collected during the run
	Boosts     int
	Elapsed    float64 // seconds survived
	Difficulty string
	Seed       int64
	CreatedAt  time.Time
}

// Stats aggregates every recorded run.
type Stats struct {
	Runs         int
	HighScore    int
	AvgScore     float64
	TotalCheese  int
	TotalSeconds float64
	LastPlayed   time.Time
}

// Store is the persistence used by the game and the CLI.
// Implementations are safe for concurrent use.
type Store interface {
	// Get returns the value stored under key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// SetMax stores value under key only when it is greater than the
	// integer already stored there (a missing or non-numeric value counts
	// as 0), and returns the value left in the store. The comparison and
	// the write are one statement, so concurrent callers never lower it.
	SetMax(ctx context.Context, key string, value int) (int, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// SaveRun records a finished run, filling in ID and CreatedAt when empty.
	SaveRun(ctx context.Context, run Run) (Run, error)
	// TopRuns returns the highest scoring runs, best first.
	TopRuns(ctx context.Context, limit int) ([]Run, error)
	// RecentRuns returns the latest runs, newest first.
	RecentRuns(ctx context.Context, limit int) ([]Run, error)
	// RunByID looks up a single run, returning ErrNotFound if absent.
	RunByID(ctx context.Context, id string) (Run, error)
	// Stats aggregates all runs.
	Stats(ctx context.Context) (Stats, error)
	// ClearRuns deletes the run history.
	ClearRuns(ctx context.Context) error

	// Close releases database resources.
	Close() error
}

// Open picks a backend from the DSN: postgres:// or postgresql:// URLs go
// to PostgreSQL, anything else is a SQLite file path.
func Open(ctx context.Context, dsn string) (Store, error) {
	if IsPostgresDSN(dsn) {
		return NewPostgresStore(ctx, dsn)
	}
	if dsn == "" {
		dsn = DefaultPath
	}
	return OpenSQLite(dsn)
}

// IsPostgresDSN reports whether dsn names a PostgreSQL database.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// prepareRun fills in the generated fields of a run about to be saved.
func prepareRun(run Run) Run {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	run.CreatedAt = run.CreatedAt.UTC()
	return run
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 10
	}
	return limit
}
