package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/hyperjump/palette/internal/models"
	"github.com/hyperjump/palette/internal/search"
	"github.com/hyperjump/palette/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const testDebounce = 30 * time.Millisecond

// fakeEngine returns one hit per category whose ID is the query. Fetches for a gated
// query/category block until the gate is released.
type fakeEngine struct {
	mu      sync.Mutex
	fetches []string
	gates   map[string]chan struct{}
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{gates: make(map[string]chan struct{})}
}

func (f *fakeEngine) gate(query string, category models.Category) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[query+"/"+string(category)] = ch
	return ch
}

func (f *fakeEngine) queries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, q := range f.fetches {
		if !seen[q] {
			seen[q] = true
			out = append(out, q)
		}
	}
	return out
}

func (f *fakeEngine) Categories() []models.Category { return models.Categories }

func (f *fakeEngine) FetchCategory(ctx context.Context, category models.Category, query, _ string) []models.Hit {
	f.mu.Lock()
	f.fetches = append(f.fetches, query)
	gate := f.gates[query+"/"+string(category)]
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return []models.Hit{}
		}
	}
	var payload models.Payload
	switch category {
	case models.CategoryDocs:
		payload = &models.DocumentationPayload{Title: query, URL: "/docs"}
	case models.CategoryTutorials:
		payload = &models.TutorialPayload{Title: query, URL: "/tutorials"}
	default:
		payload = &models.IntegrationPayload{Name: query, URL: "/integrations"}
	}
	return []models.Hit{{ID: query, Category: category, Position: 1, Payload: payload}}
}

func (f *fakeEngine) Present(coll models.HitCollection, product string) (models.MergedResultList, []models.Tab) {
	return search.Merge(coll), search.BuildTabs(coll, search.Capabilities{ProductsWithIntegrations: []string{"vault"}}, product)
}

type recorder struct {
	mu    sync.Mutex
	snaps []Snapshot
}

func (r *recorder) record(s Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snaps = append(r.snaps, s)
}

func (r *recorder) all() []Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Snapshot(nil), r.snaps...)
}

func waitForState(t *testing.T, s *Session, state State) Snapshot {
	t.Helper()
	require.Eventually(t, func() bool { return s.Snapshot().State == state }, 2*time.Second, 5*time.Millisecond)
	return s.Snapshot()
}

func TestSession_DebounceDispatchesOnceWithLastValue(t *testing.T) {
	engine := newFakeEngine()
	s := New(engine, WithDebounce(testDebounce))
	defer s.Close()

	for _, v := range []string{"v", "va", "vau", "vaul", "vault"} {
		s.Input(v)
		assert.Equal(t, StateDebouncing, s.Snapshot().State)
		time.Sleep(testDebounce / 5)
	}
	snap := waitForState(t, s, StateSettled)

	assert.Equal(t, 1, s.Dispatched())
	assert.Equal(t, []string{"vault"}, engine.queries())
	assert.Equal(t, "vault", snap.Query)
	assert.Equal(t, 3, snap.Collection.Len())
	assert.Len(t, snap.Results, 3)
}

func TestSession_StaleResponsesAreDiscarded(t *testing.T) {
	engine := newFakeEngine()
	release := engine.gate("old", models.CategoryDocs)
	rec := &recorder{}
	s := New(engine, WithDebounce(testDebounce), WithOnUpdate(rec.record))
	defer s.Close()

	s.Input("old")
	require.Eventually(t, func() bool { return s.Dispatched() == 1 }, time.Second, time.Millisecond)

	s.Input("new")
	snap := waitForState(t, s, StateSettled)
	assert.Equal(t, "new", snap.Query)

	// The superseded docs fetch resolves after the newer query settled.
	close(release)
	require.Eventually(t, func() bool {
		engine.mu.Lock()
		defer engine.mu.Unlock()
		return len(engine.fetches) == 6
	}, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	final := s.Snapshot()
	assert.Equal(t, "new", final.Query)
	for _, h := range final.Results {
		assert.Equal(t, "new", h.ID, "stale hit leaked into the live view")
	}

	// Once a snapshot for "new" was published, no "old" results follow it.
	seenNew := false
	var last uint64
	for _, snap := range rec.all() {
		assert.Greater(t, snap.Version, last, "snapshots must be published in version order")
		last = snap.Version
		if snap.Query == "new" {
			seenNew = true
		}
		if seenNew {
			for _, h := range snap.Results {
				assert.NotEqual(t, "old", h.ID)
			}
		}
	}
}

func TestSession_ProgressiveResults(t *testing.T) {
	engine := newFakeEngine()
	release := engine.gate("vault", models.CategoryIntegrations)
	s := New(engine, WithDebounce(testDebounce))
	defer s.Close()

	s.Input("vault")
	require.Eventually(t, func() bool {
		snap := s.Snapshot()
		return snap.Collection.Has(models.CategoryDocs) && snap.Collection.Has(models.CategoryTutorials)
	}, time.Second, time.Millisecond)

	partial := s.Snapshot()
	assert.Equal(t, StateQuerying, partial.State)
	assert.Equal(t, 1, partial.Pending)
	assert.Len(t, partial.Results, 2)
	assert.False(t, partial.Collection.Has(models.CategoryIntegrations))

	close(release)
	final := waitForState(t, s, StateSettled)
	assert.Len(t, final.Results, 3)
	assert.Equal(t, 0, final.Pending)
}

func TestSession_RecentSearchRecordedOnSettle(t *testing.T) {
	store := storage.NewMemoryStore(5)
	s := New(newFakeEngine(), WithDebounce(testDebounce), WithRecentStore(store))
	defer s.Close()

	s.Input("consul")
	waitForState(t, s, StateSettled)
	require.Eventually(t, func() bool {
		recent, err := s.RecentSearches(context.Background())
		return err == nil && len(recent) == 1 && recent[0] == "consul"
	}, time.Second, time.Millisecond)
}

func TestSession_EmptyInputReturnsToIdle(t *testing.T) {
	engine := newFakeEngine()
	release := engine.gate("vault", models.CategoryDocs)
	s := New(engine, WithDebounce(testDebounce))
	defer s.Close()

	s.Input("vault")
	require.Eventually(t, func() bool { return s.Dispatched() == 1 }, time.Second, time.Millisecond)

	s.Input("   ")
	snap := s.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Equal(t, 0, snap.Collection.Len())

	close(release)
	time.Sleep(20 * time.Millisecond)
	snap = s.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Empty(t, snap.Results)
}

func TestSession_SetProductRequeries(t *testing.T) {
	engine := newFakeEngine()
	s := New(engine, WithDebounce(testDebounce), WithProduct("Vault"))
	defer s.Close()

	assert.Equal(t, "vault", s.Snapshot().Product)
	s.Input("aws")
	waitForState(t, s, StateSettled)
	require.Len(t, s.Snapshot().Tabs, 3)

	s.SetProduct("terraform")
	assert.Equal(t, StateDebouncing, s.Snapshot().State)
	snap := waitForState(t, s, StateSettled)
	assert.Equal(t, 2, s.Dispatched())
	assert.Equal(t, "terraform", snap.Product)
	assert.Len(t, snap.Tabs, 2, "integrations hidden for a product without integrations")
}

func TestSession_CloseWaitsForInFlightFetches(t *testing.T) {
	engine := newFakeEngine()
	engine.gate("slow", models.CategoryTutorials)
	s := New(engine, WithDebounce(testDebounce))

	s.Input("slow")
	require.Eventually(t, func() bool { return s.Dispatched() == 1 }, time.Second, time.Millisecond)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	s.Input("ignored")
	assert.Equal(t, 1, s.Dispatched())
}

func TestSession_CloseCancelsPendingDebounce(t *testing.T) {
	s := New(newFakeEngine(), WithDebounce(time.Hour))
	s.Input("never")
	require.NoError(t, s.Close())
	assert.Equal(t, 0, s.Dispatched())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "debouncing", StateDebouncing.String())
	assert.Equal(t, "querying", StateQuerying.String())
	assert.Equal(t, "settled", StateSettled.String())
	assert.Equal(t, "unknown", State(42).String())
}
