package api

import (
	"net/http"

	"movierec/internal/domain"
	"movierec/internal/metrics"
)

// RecommendQuery holds the parameters of GET /recommend.
type RecommendQuery struct {
	Movie *string `json:"movie" validate:"required"`
	Limit int     `json:"limit"`
}

// Recommend handles GET /recommend?movie=&limit=.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r, h.limits.RecommendDefault, h.limits.RecommendMax)
	if err != nil {
		h.respondEngineError(w, "recommend", err)
		return
	}
	q := RecommendQuery{Movie: queryParam(r, "movie"), Limit: limit}
	if err := validateStruct(&q); err != nil {
		h.respondEngineError(w, "recommend", err)
		return
	}

	res, err := h.engine.Recommend(*q.Movie, q.Limit)
	if err != nil {
		h.respondEngineError(w, "recommend", err)
		return
	}
	metrics.RecordQuery("recommend", "ok")
	respondJSON(w, http.StatusOK, res)
}

// SearchQuery holds the parameters of GET /movies/search.
type SearchQuery struct {
	Query *string `json:"query" validate:"required"`
	Limit int     `json:"limit"`
}

// SearchResponse is the body of a successful search.
type SearchResponse struct {
	Query  string                `json:"query"`
	Count  int                   `json:"count"`
	Movies []domain.MovieSummary `json:"movies"`
}

// Search handles GET /movies/search?query=&limit=.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r, h.limits.SearchDefault, h.limits.SearchMax)
	if err != nil {
		h.respondEngineError(w, "search", err)
		return
	}
	q := SearchQuery{Query: queryParam(r, "query"), Limit: limit}
	if err := validateStruct(&q); err != nil {
		h.respondEngineError(w, "search", err)
		return
	}

	movies, err := h.engine.Search(*q.Query, q.Limit)
	if err != nil {
		h.respondEngineError(w, "search", err)
		return
	}
	if movies == nil {
		movies = []domain.MovieSummary{}
	}
	metrics.RecordQuery("search", "ok")
	respondJSON(w, http.StatusOK, &SearchResponse{Query: *q.Query, Count: len(movies), Movies: movies})
}
