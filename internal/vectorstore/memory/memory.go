package memory

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"movierec/internal/domain"
)

var (
	errInvalidDimension = errors.New("invalid dimension")
	errAlreadyLoaded    = errors.New("vectors already loaded")
)

// Storage is an immutable in-memory matrix ranked by brute-force cosine similarity.
// It is written once by Load and only read afterwards, so lookups need no locking
// as long as the Storage is published after Load returns.
type Storage struct {
	dimension int
	vectors   [][]float64
	norms     []float64
	loaded    bool
}

func NewStorage() *Storage { return &Storage{} }

func (s *Storage) Init(dimension int) error {
	if dimension <= 0 {
		return errInvalidDimension
	}
	if s.loaded {
		return errAlreadyLoaded
	}
	s.dimension = dimension
	return nil
}

// Load stores vectors as rows 0..len-1. It may be called once.
func (s *Storage) Load(vectors [][]float64) error {
	if s.loaded {
		return errAlreadyLoaded
	}
	if s.dimension <= 0 {
		return errInvalidDimension
	}
	norms := make([]float64, len(vectors))
	for i, v := range vectors {
		if len(v) != s.dimension {
			return fmt.Errorf("vector %d dimension mismatch: got %d, want %d", i, len(v), s.dimension)
		}
		norms[i] = math.Sqrt(dot(v, v))
	}
	s.vectors = vectors
	s.norms = norms
	s.loaded = true
	return nil
}

func (s *Storage) Len() int { return len(s.vectors) }

// Similarity returns the cosine of rows i and j, 0 when either is all-zero.
func (s *Storage) Similarity(i, j int) float64 {
	if s.norms[i] == 0 || s.norms[j] == 0 {
		return 0
	}
	if i == j {
		return 1
	}
	return clamp(dot(s.vectors[i], s.vectors[j]) / (s.norms[i] * s.norms[j]))
}

// Neighbors ranks every row other than i by similarity to row i, descending.
// Equal scores keep row order.
func (s *Storage) Neighbors(i int, topK int) ([]domain.SearchResult, error) {
	if i < 0 || i >= len(s.vectors) {
		return nil, fmt.Errorf("row %d out of range [0,%d)", i, len(s.vectors))
	}
	if topK <= 0 {
		topK = 5
	}
	results := make([]domain.SearchResult, 0, len(s.vectors)-1)
	for j := range s.vectors {
		if j == i {
			continue
		}
		results = append(results, domain.SearchResult{Index: j, Score: s.Similarity(i, j)})
	}
	sort.SliceStable(results, func(a, b int) bool { return results[a].Score > results[b].Score })
	if topK > len(results) {
		topK = len(results)
	}
	return results[:topK], nil
}

func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

func clamp(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	}
	return x
}
