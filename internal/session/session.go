// Package session drives one interactive search: keystrokes are debounced into queries,
// each query fans out to every category, and results from superseded queries are discarded.
package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hyperjump/palette/internal/models"
	"github.com/hyperjump/palette/internal/search"
	"github.com/hyperjump/palette/internal/storage"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet interval between the last keystroke and query dispatch.
const DefaultDebounce = 300 * time.Millisecond

// State is the search session lifecycle state.
type State int

const (
	// StateIdle means there is no input.
	StateIdle State = iota
	// StateDebouncing means a keystroke was received and the dispatch timer is pending.
	StateDebouncing
	// StateQuerying means category fetches for the current query are in flight.
	StateQuerying
	// StateSettled means every category fetch for the current query resolved or failed.
	StateSettled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDebouncing:
		return "debouncing"
	case StateQuerying:
		return "querying"
	case StateSettled:
		return "settled"
	}
	return "unknown"
}

// Engine fetches and presents hits. *search.Engine satisfies it.
type Engine interface {
	Categories() []models.Category
	FetchCategory(ctx context.Context, category models.Category, query, product string) []models.Hit
	Present(coll models.HitCollection, product string) (models.MergedResultList, []models.Tab)
}

// Snapshot is an immutable view of the session published after every state change.
type Snapshot struct {
	// Version increases with every change; consumers may drop snapshots older than one already seen.
	Version uint64
	State   State
	// Input is the raw input value; Query is the query whose hits are shown.
	Input      string
	Query      string
	Product    string
	Generation uint64
	Pending    int
	Collection models.HitCollection
	Results    models.MergedResultList
	Tabs       []models.Tab
}

// Session is safe for concurrent use. Callbacks registered with WithOnUpdate run on
// session goroutines, never concurrently with each other, and in version order.
type Session struct {
	id       string
	engine   Engine
	debounce time.Duration
	recent   storage.RecentStore
	reporter search.Reporter
	logger   *zap.Logger
	onUpdate func(Snapshot)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu         sync.Mutex
	state      State
	input      string
	product    string
	inputSeq   uint64
	timer      *time.Timer
	generation uint64
	query      string
	collection models.HitCollection
	pending    int
	dispatched int
	closed     bool
	version    uint64

	publishMu sync.Mutex
	published uint64
}

// Option configures a Session.
type Option func(*Session)

// WithDebounce sets the debounce interval. Defaults to DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.debounce = d
		}
	}
}

// WithProduct sets the initial product context.
func WithProduct(product string) Option {
	return func(s *Session) { s.product = strings.ToLower(strings.TrimSpace(product)) }
}

// WithRecentStore sets the store that settled queries are appended to.
func WithRecentStore(r storage.RecentStore) Option {
	return func(s *Session) { s.recent = r }
}

// WithReporter sets the diagnostics reporter.
func WithReporter(r search.Reporter) Option {
	return func(s *Session) {
		if r != nil {
			s.reporter = r
		}
	}
}

// WithLogger sets the logger for the session.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithOnUpdate registers a callback receiving every published snapshot.
func WithOnUpdate(fn func(Snapshot)) Option {
	return func(s *Session) { s.onUpdate = fn }
}

// New creates an idle session over engine.
func New(engine Engine, opts ...Option) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		id:         uuid.New().String(),
		engine:     engine,
		debounce:   DefaultDebounce,
		reporter:   search.NopReporter{},
		logger:     zap.NewNop(),
		ctx:        ctx,
		cancel:     cancel,
		collection: models.NewHitCollection(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("session", s.id))
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Input records a new input value. An empty value returns the session to idle and
// supersedes any in-flight query; otherwise the debounce timer is (re)started.
func (s *Session) Input(value string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.input = value
	s.restartLocked()
	s.mu.Unlock()
	s.publish()
}

// SetProduct changes the product context. A non-empty input is searched again.
func (s *Session) SetProduct(product string) {
	product = strings.ToLower(strings.TrimSpace(product))
	s.mu.Lock()
	if s.closed || product == s.product {
		s.mu.Unlock()
		return
	}
	s.product = product
	s.restartLocked()
	s.mu.Unlock()
	s.publish()
}

func (s *Session) restartLocked() {
	s.inputSeq++
	seq := s.inputSeq
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if strings.TrimSpace(s.input) == "" {
		s.generation++
		s.state = StateIdle
		s.query = ""
		s.pending = 0
		s.collection = models.NewHitCollection()
	} else {
		s.state = StateDebouncing
		s.timer = time.AfterFunc(s.debounce, func() { s.dispatch(seq) })
	}
	s.version++
}

// dispatch issues the query for input sequence seq unless a later keystroke superseded it.
func (s *Session) dispatch(seq uint64) {
	s.mu.Lock()
	if s.closed || seq != s.inputSeq {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.generation++
	gen := s.generation
	query := strings.TrimSpace(s.input)
	product := s.product
	categories := s.engine.Categories()

	s.query = query
	s.collection = models.NewHitCollection()
	s.pending = len(categories)
	s.dispatched++
	s.state = StateQuerying
	if len(categories) == 0 {
		s.state = StateSettled
	}
	s.version++
	s.wg.Add(len(categories))
	s.mu.Unlock()

	s.reporter.QueryDispatched(query)
	s.logger.Debug("dispatching query",
		zap.String("query", query),
		zap.String("product", product),
		zap.Uint64("generation", gen))
	if len(categories) == 0 {
		s.recordRecent(query)
	}
	s.publish()

	for _, category := range categories {
		go s.fetch(gen, category, query, product)
	}
}

func (s *Session) fetch(gen uint64, category models.Category, query, product string) {
	defer s.wg.Done()
	hits := s.engine.FetchCategory(s.ctx, category, query, product)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if gen != s.generation {
		s.mu.Unlock()
		s.reporter.StaleDiscarded(category)
		return
	}
	s.collection = s.collection.With(category, hits)
	s.pending--
	settled := s.pending == 0
	if settled && s.state == StateQuerying {
		s.state = StateSettled
	}
	s.version++
	s.mu.Unlock()

	if settled {
		s.recordRecent(query)
	}
	s.publish()
}

func (s *Session) recordRecent(query string) {
	if s.recent == nil || query == "" {
		return
	}
	if err := s.recent.Add(s.ctx, query); err != nil {
		s.logger.Warn("failed to record recent search", zap.String("query", query), zap.Error(err))
	}
}

// Snapshot returns the current view of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	snap := s.snapshotLocked()
	s.mu.Unlock()
	return s.present(snap)
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		Version:    s.version,
		State:      s.state,
		Input:      s.input,
		Query:      s.query,
		Product:    s.product,
		Generation: s.generation,
		Pending:    s.pending,
		Collection: s.collection,
	}
}

func (s *Session) present(snap Snapshot) Snapshot {
	snap.Results, snap.Tabs = s.engine.Present(snap.Collection, snap.Product)
	return snap
}

func (s *Session) publish() {
	if s.onUpdate == nil {
		return
	}
	s.mu.Lock()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publishMu.Lock()
	defer s.publishMu.Unlock()
	if snap.Version <= s.published {
		return
	}
	s.published = snap.Version
	s.onUpdate(s.present(snap))
}

// Dispatched returns the number of queries dispatched so far.
func (s *Session) Dispatched() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatched
}

// RecentSearches returns the recorded queries, most recent first.
func (s *Session) RecentSearches(ctx context.Context) ([]string, error) {
	if s.recent == nil {
		return nil, nil
	}
	list, err := s.recent.List(ctx)
	if err != nil {
		return nil, err
	}
	return storage.Queries(list), nil
}

// Close stops the debounce timer, discards in-flight fetches and waits for them to return.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.generation++
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
	return nil
}
