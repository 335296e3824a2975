// Package recommend answers "more like this" queries over the movie catalog.
//
// An Engine starts Unbuilt. Build fits the vector space once and publishes an
// immutable index; from then on the engine is Ready and every query is a
// lock-free read. There is no way back to Unbuilt.
package recommend

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"movierec/internal/catalog"
	"movierec/internal/domain"
	"movierec/internal/logging"
)

// State of the engine.
type State string

const (
	StateUnbuilt State = "unbuilt"
	StateReady   State = "ready"
)

// Default result limits.
const (
	DefaultRecommendLimit = 5
	DefaultSearchLimit    = 10
)

// Status describes the engine for health reporting.
type Status struct {
	State         State         `json:"state"`
	Movies        int           `json:"movies"`
	Vocabulary    int           `json:"vocabulary"`
	Vectorizer    string        `json:"vectorizer"`
	BuiltAt       time.Time     `json:"built_at,omitempty"`
	BuildDuration time.Duration `json:"build_duration_ns,omitempty"`
	Error         string        `json:"error,omitempty"`
}

type index struct {
	source      string
	movies      []domain.Movie
	lowerTitles []string
	store       domain.VectorStore
	dimension   int
	builtAt     time.Time
	took        time.Duration
}

// Engine is the catalog and similarity engine. Create it with NewEngine and
// share one instance between all consumers.
type Engine struct {
	vectorizer domain.Vectorizer
	store      domain.VectorStore
	logger     zerolog.Logger

	idx      atomic.Pointer[index]
	building atomic.Bool

	mu      sync.Mutex
	lastErr error
}

// NewEngine returns an Unbuilt engine that will fit vectorizer and fill store.
func NewEngine(vectorizer domain.Vectorizer, store domain.VectorStore) *Engine {
	return &Engine{
		vectorizer: vectorizer,
		store:      store,
		logger:     logging.With("recommend"),
	}
}

// LoadAndBuild loads the catalog at source and builds the engine from it.
// Load failures are remembered and reported by Status.
func (e *Engine) LoadAndBuild(ctx context.Context, source string) error {
	cat, err := catalog.Load(ctx, source)
	if err != nil {
		e.setErr(err)
		return err
	}
	return e.Build(cat)
}

// Build fits the vector space over cat and moves the engine to Ready.
func (e *Engine) Build(cat *catalog.Catalog) error {
	if e.idx.Load() != nil {
		return ErrAlreadyBuilt
	}
	if !e.building.CompareAndSwap(false, true) {
		return ErrBuildInProgress
	}
	defer e.building.Store(false)

	idx, err := e.build(cat)
	if err != nil {
		e.setErr(err)
		return err
	}
	e.idx.Store(idx)
	e.setErr(nil)
	e.logger.Info().
		Str("source", idx.source).
		Int("movies", len(idx.movies)).
		Int("vocabulary", idx.dimension).
		Dur("took", idx.took).
		Msg("vector space built")
	return nil
}

func (e *Engine) build(cat *catalog.Catalog) (*index, error) {
	if cat == nil || cat.Len() == 0 {
		return nil, ErrEmptyCatalog
	}
	start := time.Now()
	rows, err := e.vectorizer.Fit(cat.Overviews())
	if err != nil {
		return nil, fmt.Errorf("fit %s: %w", e.vectorizer.Name(), err)
	}
	if err := e.store.Init(e.vectorizer.Dimension()); err != nil {
		return nil, fmt.Errorf("init vector store: %w", err)
	}
	if err := e.store.Load(rows); err != nil {
		return nil, fmt.Errorf("load vector store: %w", err)
	}
	if e.store.Len() != cat.Len() {
		panic(fmt.Sprintf("recommend: %d vectors for %d movies", e.store.Len(), cat.Len()))
	}

	movies := make([]domain.Movie, cat.Len())
	copy(movies, cat.Movies)
	lower := make([]string, len(movies))
	for i, m := range movies {
		lower[i] = strings.ToLower(m.Title)
	}
	return &index{
		source:      cat.Source,
		movies:      movies,
		lowerTitles: lower,
		store:       e.store,
		dimension:   e.vectorizer.Dimension(),
		builtAt:     time.Now(),
		took:        time.Since(start),
	}, nil
}

func (e *Engine) setErr(err error) {
	e.mu.Lock()
	e.lastErr = err
	e.mu.Unlock()
}

// Ready reports whether Build has completed successfully.
func (e *Engine) Ready() bool { return e.idx.Load() != nil }

// Status reports the engine state and, when not ready, the last build error.
func (e *Engine) Status() Status {
	st := Status{State: StateUnbuilt, Vectorizer: e.vectorizer.Name()}
	if idx := e.idx.Load(); idx != nil {
		st.State = StateReady
		st.Movies = len(idx.movies)
		st.Vocabulary = idx.dimension
		st.BuiltAt = idx.builtAt
		st.BuildDuration = idx.took
		return st
	}
	e.mu.Lock()
	if e.lastErr != nil {
		st.Error = e.lastErr.Error()
	}
	e.mu.Unlock()
	return st
}

func (e *Engine) ready() (*index, error) {
	idx := e.idx.Load()
	if idx == nil {
		return nil, ErrModelNotReady
	}
	return idx, nil
}

// Len returns the catalog size, 0 before Build.
func (e *Engine) Len() int {
	if idx := e.idx.Load(); idx != nil {
		return len(idx.movies)
	}
	return 0
}

// Movie returns the catalog row at i.
func (e *Engine) Movie(i int) (domain.Movie, error) {
	idx, err := e.ready()
	if err != nil {
		return domain.Movie{}, err
	}
	if i < 0 || i >= len(idx.movies) {
		return domain.Movie{}, fmt.Errorf("movie index %d out of range", i)
	}
	return idx.movies[i], nil
}

// FindMovieIndex resolves title to a catalog position: a case-insensitive
// exact match first, then the first title containing it. Both tiers take the
// earliest row in catalog order.
func (e *Engine) FindMovieIndex(title string) (int, error) {
	idx, err := e.ready()
	if err != nil {
		return -1, err
	}
	q := strings.ToLower(strings.TrimSpace(title))
	if q == "" {
		return -1, &MovieNotFoundError{Query: title}
	}
	for i, t := range idx.lowerTitles {
		if t == q {
			return i, nil
		}
	}
	for i, t := range idx.lowerTitles {
		if strings.Contains(t, q) {
			return i, nil
		}
	}
	return -1, &MovieNotFoundError{Query: title}
}

// Similarity returns the cosine similarity of catalog rows i and j.
func (e *Engine) Similarity(i, j int) (float64, error) {
	idx, err := e.ready()
	if err != nil {
		return 0, err
	}
	n := len(idx.movies)
	if i < 0 || i >= n || j < 0 || j >= n {
		return 0, fmt.Errorf("movie index out of range: %d, %d", i, j)
	}
	return idx.store.Similarity(i, j), nil
}

// Recommend returns up to limit movies most similar to title, never
// including the resolved movie itself. limit <= 0 means DefaultRecommendLimit.
func (e *Engine) Recommend(title string, limit int) (*domain.RecommendResult, error) {
	idx, err := e.ready()
	if err != nil {
		return nil, err
	}
	i, err := e.FindMovieIndex(title)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultRecommendLimit
	}
	neighbors, err := idx.store.Neighbors(i, limit)
	if err != nil {
		return nil, err
	}
	res := &domain.RecommendResult{
		RequestedMovie:  idx.movies[i].Title,
		Recommendations: make([]domain.Recommendation, 0, len(neighbors)),
	}
	for _, n := range neighbors {
		m := idx.movies[n.Index]
		res.Recommendations = append(res.Recommendations, domain.Recommendation{
			Title:           m.Title,
			Overview:        m.Overview,
			SimilarityScore: n.Score,
			Poster:          m.Poster,
		})
	}
	return res, nil
}

// Search returns up to limit movies whose title contains query,
// case-insensitively, in catalog order. limit <= 0 means DefaultSearchLimit.
func (e *Engine) Search(query string, limit int) ([]domain.MovieSummary, error) {
	idx, err := e.ready()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.MovieSummary, 0, limit)
	for i, t := range idx.lowerTitles {
		if len(out) == limit {
			break
		}
		if strings.Contains(t, q) {
			m := idx.movies[i]
			out = append(out, domain.MovieSummary{Title: m.Title, Overview: m.Overview, Poster: m.Poster})
		}
	}
	return out, nil
}

var _ domain.Recommender = (*Engine)(nil)
