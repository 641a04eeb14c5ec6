package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MinoPlay/mexicano/services"
)

type RoundHandler struct {
	responder
	tournamentService services.TournamentService
}

func NewRoundHandler(ts services.TournamentService, logger *slog.Logger) *RoundHandler {
	return &RoundHandler{responder: newResponder(logger), tournamentService: ts}
}

type updateScoreInput struct {
	Team1Score *int `json:"team1Score"`
	Team2Score *int `json:"team2Score"`
}

// GenerateHandler handles POST /tournaments/{date}/rounds
func (h *RoundHandler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	tournament, round, err := h.tournamentService.GenerateNextRound(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"tournament": tournament, "round": round}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// UpdateScoreHandler handles PUT /tournaments/{date}/rounds/{roundNumber}/matches/{matchID}/score
func (h *RoundHandler) UpdateScoreHandler(w http.ResponseWriter, r *http.Request) {
	roundNumber, err := getIntFromURL(r, "roundNumber")
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	matchID, err := getIntFromURL(r, "matchID")
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}

	var input updateScoreInput
	if err := readJSON(w, r, &input); err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	if input.Team1Score == nil || input.Team2Score == nil {
		h.badRequestResponse(w, r, errors.New("team1Score and team2Score are both required"))
		return
	}

	update, err := h.tournamentService.UpdateMatchScore(r.Context(), chi.URLParam(r, "date"),
		roundNumber, matchID, *input.Team1Score, *input.Team2Score)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}

	env := jsonResponse{
		"tournament":      update.Tournament,
		"discardedRounds": update.DiscardedRounds,
	}
	if update.RegeneratedRound != nil {
		env["regeneratedRound"] = update.RegeneratedRound
	}
	if err := writeJSON(w, http.StatusOK, env, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
