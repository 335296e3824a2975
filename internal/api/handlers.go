// Package api exposes the recommendation engine and the chat service over HTTP.
package api

import (
	"errors"
	"net/http"
	"strconv"

	"movierec/internal/chat"
	"movierec/internal/domain"
	"movierec/internal/metrics"
	"movierec/internal/recommend"
)

// Version is reported by the root endpoint.
const Version = "1.0.0"

// Engine is what the handlers need from the recommendation engine.
type Engine interface {
	domain.Recommender
	Status() recommend.Status
}

// Limits are the default and maximum list sizes accepted from clients.
type Limits struct {
	RecommendDefault int
	RecommendMax     int
	SearchDefault    int
	SearchMax        int
}

// DefaultLimits returns 5 (max 20) recommendations and 10 (max 50) search hits.
func DefaultLimits() Limits {
	return Limits{RecommendDefault: 5, RecommendMax: 20, SearchDefault: 10, SearchMax: 50}
}

// Handler serves the HTTP endpoints. The engine and chat service are injected.
type Handler struct {
	engine Engine
	chat   *chat.Service
	limits Limits
}

// NewHandler creates a handler. Zero limits fall back to DefaultLimits.
func NewHandler(engine Engine, chatSvc *chat.Service, limits Limits) *Handler {
	def := DefaultLimits()
	if limits.RecommendDefault <= 0 {
		limits.RecommendDefault = def.RecommendDefault
	}
	if limits.RecommendMax <= 0 {
		limits.RecommendMax = def.RecommendMax
	}
	if limits.SearchDefault <= 0 {
		limits.SearchDefault = def.SearchDefault
	}
	if limits.SearchMax <= 0 {
		limits.SearchMax = def.SearchMax
	}
	return &Handler{engine: engine, chat: chatSvc, limits: limits}
}

// RootResponse describes the service.
type RootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Status  string `json:"status"`
}

// Root handles GET /.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	status := "running"
	if !h.engine.Ready() {
		status = "model not loaded"
	}
	respondJSON(w, http.StatusOK, &RootResponse{
		Message: "Movie Recommendation API",
		Version: Version,
		Status:  status,
	})
}

// parseLimit reads the limit query parameter, applying def when absent and
// enforcing 1..upper.
func parseLimit(r *http.Request, def, upper int) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fieldError("limit", "int", "limit must be an integer")
	}
	if n < 1 {
		return 0, fieldError("limit", "gte", "limit must be greater than or equal to 1")
	}
	if n > upper {
		return 0, fieldError("limit", "lte", "limit must be less than or equal to "+strconv.Itoa(upper))
	}
	return n, nil
}

// queryParam returns nil when the parameter is absent.
func queryParam(r *http.Request, name string) *string {
	q := r.URL.Query()
	if !q.Has(name) {
		return nil
	}
	v := q.Get(name)
	return &v
}

// respondEngineError maps engine failures onto status codes.
func (h *Handler) respondEngineError(w http.ResponseWriter, kind string, err error) {
	var verr *ValidationError
	var nf *recommend.MovieNotFoundError
	switch {
	case errors.As(err, &verr):
		respondJSON(w, http.StatusBadRequest, &ErrorResponse{
			Detail:  verr.Error(),
			Code:    ErrCodeValidation,
			Details: map[string]any{"fields": verr.Fields},
		})
	case errors.Is(err, recommend.ErrModelNotReady):
		metrics.RecordQuery(kind, "not_ready")
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable,
			"Recommendation model is not loaded. Please ensure the movie catalog exists.", nil)
	case errors.As(err, &nf):
		metrics.RecordQuery(kind, "not_found")
		query := nf.Query
		respondJSON(w, http.StatusNotFound, &ErrorResponse{
			Detail:         nf.Error(),
			Code:           ErrCodeMovieNotFound,
			RequestedMovie: &query,
		})
	default:
		metrics.RecordQuery(kind, "error")
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError,
			"Internal server error", err)
	}
}
