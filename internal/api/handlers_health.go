package api

import (
	"net/http"

	"movierec/internal/recommend"
)

// HealthResponse reports whether the engine finished its build.
type HealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
	Movies      int    `json:"movies"`
	Vocabulary  int    `json:"vocabulary"`
	Error       string `json:"error,omitempty"`
}

// Health handles GET /health. It answers 200 in both states so probes can
// read the body; readiness is in model_loaded.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	st := h.engine.Status()
	resp := &HealthResponse{
		Status:      "unhealthy",
		ModelLoaded: st.State == recommend.StateReady,
		Movies:      st.Movies,
		Vocabulary:  st.Vocabulary,
		Error:       st.Error,
	}
	if resp.ModelLoaded {
		resp.Status = "healthy"
	}
	respondJSON(w, http.StatusOK, resp)
}
