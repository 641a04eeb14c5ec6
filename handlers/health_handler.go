package handlers

import (
	"log/slog"
	"net/http"
)

// NewHealthHandler handles GET /health
func NewHealthHandler(logger *slog.Logger) http.HandlerFunc {
	rs := newResponder(logger)
	return func(w http.ResponseWriter, r *http.Request) {
		if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "ok"}, nil); err != nil {
			rs.serverErrorResponse(w, r, err)
		}
	}
}
