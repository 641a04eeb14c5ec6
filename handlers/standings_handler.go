package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MinoPlay/mexicano/reports"
	"github.com/MinoPlay/mexicano/services"
	"github.com/MinoPlay/mexicano/standings"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type StandingsHandler struct {
	responder
	tournamentService services.TournamentService
}

func NewStandingsHandler(ts services.TournamentService, logger *slog.Logger) *StandingsHandler {
	return &StandingsHandler{responder: newResponder(logger), tournamentService: ts}
}

// GetHandler handles GET /tournaments/{date}/standings
func (h *StandingsHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	ranked, err := h.tournamentService.GetStandings(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": ranked}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// StatsHandler handles GET /tournaments/{date}/stats
func (h *StandingsHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.tournamentService.GetStats(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"stats": stats}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ExportHandler handles GET /tournaments/{date}/standings.xlsx
func (h *StandingsHandler) ExportHandler(w http.ResponseWriter, r *http.Request) {
	tournament, err := h.tournamentService.GetTournament(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := reports.WriteStandingsXLSX(&buf, tournament, standings.RankPlayers(tournament)); err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="mexicano-%s.xlsx"`, tournament.TournamentDate))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.requestLogger(r).Warn("failed to write workbook", slog.Any("error", err))
	}
}

// EditWindowHandler handles GET /tournaments/{date}/edit-window
func (h *StandingsHandler) EditWindowHandler(w http.ResponseWriter, r *http.Request) {
	window, err := h.tournamentService.GetEditWindow(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"editWindow": window}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
