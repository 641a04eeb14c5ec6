package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MinoPlay/mexicano/services"
)

type TournamentHandler struct {
	responder
	tournamentService services.TournamentService
}

func NewTournamentHandler(ts services.TournamentService, logger *slog.Logger) *TournamentHandler {
	return &TournamentHandler{
		responder:         newResponder(logger),
		tournamentService: ts,
	}
}

// CreateHandler handles POST /tournaments
func (h *TournamentHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		h.badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.CreateTournament(r.Context(), input)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}

	headers := make(http.Header)
	headers.Set("Location", "/tournaments/"+tournament.TournamentDate)
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"tournament": tournament}, headers); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ListHandler handles GET /tournaments
func (h *TournamentHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.tournamentService.ListTournaments(r.Context())
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournaments": tournaments}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// GetHandler handles GET /tournaments/{date}
func (h *TournamentHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	tournament, err := h.tournamentService.GetTournament(r.Context(), date)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}

	state, currentRound := tournament.State()
	env := jsonResponse{
		"tournament":   tournament,
		"state":        state,
		"currentRound": currentRound,
	}
	if url := h.tournamentService.PublicURL(date); url != "" {
		env["publicUrl"] = url
	}
	if err := writeJSON(w, http.StatusOK, env, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// DeleteHandler handles DELETE /tournaments/{date}
func (h *TournamentHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.tournamentService.DeleteTournament(r.Context(), chi.URLParam(r, "date")); err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
