package domain

// Movie is a single catalog row.
type Movie struct {
	Title    string
	Overview string
	// Poster is empty when the source had no usable URL.
	Poster string
	// Cleaned is the normalised overview the vector space is built from.
	Cleaned string
}

// Recommendation is a ranked neighbour of the requested movie.
type Recommendation struct {
	Title           string  `json:"title"`
	Overview        string  `json:"overview"`
	SimilarityScore float64 `json:"similarity_score"`
	Poster          string  `json:"poster,omitempty"`
}

// RecommendResult holds the resolved title of the query movie and its neighbours.
type RecommendResult struct {
	RequestedMovie  string           `json:"requested_movie"`
	Recommendations []Recommendation `json:"recommendations"`
}

// MovieSummary is a title search hit.
type MovieSummary struct {
	Title    string `json:"title"`
	Overview string `json:"overview"`
	Poster   string `json:"poster,omitempty"`
}

// SearchResult represents a matching row with a relevance score.
type SearchResult struct {
	Index int
	Score float64
}

// Vectorizer fits a term-weighting model over a corpus and produces one
// vector per document.
type Vectorizer interface {
	Name() string
	Fit(corpus []string) ([][]float64, error)
	Dimension() int
	Transform(text string) ([]float64, error)
}

// VectorStore holds an immutable matrix and ranks rows against one of them.
type VectorStore interface {
	Init(dimension int) error
	Load(vectors [][]float64) error
	Len() int
	Similarity(i, j int) float64
	Neighbors(i int, topK int) ([]SearchResult, error)
}

// Recommender defines the read-only operations consumers run against the engine.
type Recommender interface {
	Recommend(title string, limit int) (*RecommendResult, error)
	Search(query string, limit int) ([]MovieSummary, error)
	Ready() bool
}
