package chase

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory BestStore with switchable failures.
type memStore struct {
	data    map[string]string
	getErr  error
	setErr  error
	setCall int
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]string)}
}

func (m *memStore) Get(_ context.Context, key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStore) Set(_ context.Context, key, value string) error {
	m.setCall++
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func TestParseBest(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"0", 0},
		{"42", 42},
		{" 17\n", 17},
		{"", 0},
		{"abc", 0},
		{"12.5", 0},
		{"-3", 0},
		{"99999999999999999999999", 0},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseBest(tc.raw))
		})
	}
}

func TestBestTrackerLoadsOnce(t *testing.T) {
	store := newMemStore()
	store.data["k"] = "120"

	b := NewBestTracker(store, "k", nil)
	assert.Equal(t, 120, b.Best())

	// Later changes to the store are not re-read.
	store.data["k"] = "5000"
	assert.Equal(t, 120, b.Best())
}

func TestBestTrackerMissingOrBrokenStartsAtZero(t *testing.T) {
	assert.Equal(t, 0, NewBestTracker(newMemStore(), "k", nil).Best())

	store := newMemStore()
	store.data["k"] = "not a number"
	assert.Equal(t, 0, NewBestTracker(store, "k", nil).Best())

	store = newMemStore()
	store.getErr = errors.New("disk on fire")
	assert.Equal(t, 0, NewBestTracker(store, "k", nil).Best())

	assert.Equal(t, 0, NewBestTracker(nil, "k", nil).Best())
}

func TestBestTrackerSubmit(t *testing.T) {
	store := newMemStore()
	store.data["k"] = "50"
	b := NewBestTracker(store, "k", nil)

	assert.False(t, b.Submit(50), "ties are not a new best")
	assert.False(t, b.Submit(10))
	assert.Equal(t, 0, store.setCall)

	assert.True(t, b.Submit(51))
	assert.Equal(t, 51, b.Best())
	assert.Equal(t, "51", store.data["k"])
	assert.Equal(t, 1, store.setCall)
}

func TestBestTrackerWriteFailureIsLoggedAndSwallowed(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.WarnLevel})

	store := newMemStore()
	store.setErr = errors.New("read-only")
	b := NewBestTracker(store, "k", logger)

	require.NotPanics(t, func() {
		assert.True(t, b.Submit(30))
	})
	assert.Equal(t, 30, b.Best(), "best is kept in memory")
	assert.Contains(t, buf.String(), "could not persist best score")
}

// maxStore adds an atomic SetMax to memStore, as the real stores have.
type maxStore struct {
	*memStore
	setMaxCall int
}

func (m *maxStore) SetMax(_ context.Context, key string, value int) (int, error) {
	m.setMaxCall++
	if cur := ParseBest(m.data[key]); cur >= value {
		return cur, nil
	}
	m.data[key] = strconv.Itoa(value)
	return value, nil
}

func TestBestTrackerSharedStoreNeverLowers(t *testing.T) {
	tests := []struct {
		name  string
		store BestStore
	}{
		{"get then set", newMemStore()},
		{"atomic set max", &maxStore{memStore: newMemStore()}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Both trackers load before either run ends.
			a := NewBestTracker(tc.store, "k", nil)
			b := NewBestTracker(tc.store, "k", nil)

			assert.True(t, a.Submit(100))
			assert.False(t, b.Submit(80), "a lower score than the stored best is not a new best")
			assert.Equal(t, 100, b.Best(), "the stored best is adopted")

			raw, _, err := tc.store.Get(context.Background(), "k")
			require.NoError(t, err)
			assert.Equal(t, "100", raw)

			assert.True(t, b.Submit(120))
			raw, _, err = tc.store.Get(context.Background(), "k")
			require.NoError(t, err)
			assert.Equal(t, "120", raw)
		})
	}
}

func TestBestTrackerPrefersAtomicSetMax(t *testing.T) {
	store := &maxStore{memStore: newMemStore()}
	b := NewBestTracker(store, "k", nil)

	assert.True(t, b.Submit(7))
	assert.Equal(t, 1, store.setMaxCall)
	assert.Equal(t, 0, store.setCall)
}

func TestBestTrackerRereadFailureSkipsWrite(t *testing.T) {
	store := newMemStore()
	b := NewBestTracker(store, "k", nil)
	store.getErr = errors.New("locked")

	assert.True(t, b.Submit(30))
	assert.Equal(t, 30, b.Best())
	assert.Equal(t, 0, store.setCall, "nothing is written without knowing the stored best")
}
