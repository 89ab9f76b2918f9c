package chase

import (
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// BestStore is the key/value persistence the best score lives in.
// storage.Store implements it.
type BestStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// maxSetter is implemented by stores that raise a stored integer in one
// atomic write. storage.Store implements it.
type maxSetter interface {
	SetMax(ctx context.Context, key string, value int) (int, error)
}

// persistTimeout bounds a single best-score read or write.
const persistTimeout = 2 * time.Second

// BestTracker holds the best score and writes it through on improvement.
// A nil store keeps the best in memory only.
type BestTracker struct {
	store  BestStore
	key    string
	best   int
	logger *log.Logger
}

// NewBestTracker reads the stored best once. Missing, unparsable or
// negative values, and read errors, all start from 0.
func NewBestTracker(store BestStore, key string, logger *log.Logger) *BestTracker {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	b := &BestTracker{store: store, key: key, logger: logger}
	if store == nil {
		return b
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	raw, ok, err := store.Get(ctx, key)
	switch {
	case err != nil:
		logger.Warn("could not read best score", "key", key, "error", err)
	case ok:
		b.best = ParseBest(raw)
	}
	return b
}

// ParseBest decodes a stored best score. Anything that is not a
// non-negative integer is treated as 0.
func ParseBest(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Best returns the current best score.
func (b *BestTracker) Best() int {
	return b.best
}

// Submit offers a finished run's score. Several sessions may share one
// store, so the stored best is raised, never overwritten: when another
// session has already stored a higher best, that value is adopted and the
// score is not a new best. A failed write is logged and otherwise ignored.
// Returns true when score is a new best.
func (b *BestTracker) Submit(score int) bool {
	if score <= b.best {
		return false
	}
	if b.store == nil {
		b.best = score
		return true
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	stored, err := b.raise(ctx, score)
	if err != nil {
		b.logger.Warn("could not persist best score", "key", b.key, "score", score, "error", err)
		b.best = score
		return true
	}
	if stored > score {
		b.logger.Debug("best raised elsewhere", "key", b.key, "stored", stored, "score", score)
		b.best = stored
		return false
	}
	b.best = score
	return true
}

// raise stores score unless the stored best is already at least as high,
// and returns the best left in the store.
func (b *BestTracker) raise(ctx context.Context, score int) (int, error) {
	if ms, ok := b.store.(maxSetter); ok {
		return ms.SetMax(ctx, b.key, score)
	}

	raw, ok, err := b.store.Get(ctx, b.key)
	if err != nil {
		return 0, err
	}
	if ok {
		if cur := ParseBest(raw); cur >= score {
			return cur, nil
		}
	}
	if err := b.store.Set(ctx, b.key, strconv.Itoa(score)); err != nil {
		return 0, err
	}
	return score, nil
}
