package handlers

import "net/http"

// HealthResponse reports service health
// swagger:model HealthResponse
type HealthResponse struct {
	// default: true
	Healthy bool `json:"healthy"`
}

// NewHealthCheckHandler returns an HTTP handler reporting that the API is up.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} handlers.HealthResponse
// @Router /health-check [get]
func NewHealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{Healthy: true})
	}
}
