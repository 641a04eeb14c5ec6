package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/MinoPlay/mexicano/brackets"
	"github.com/MinoPlay/mexicano/metrics"
	"github.com/MinoPlay/mexicano/models"
	"github.com/MinoPlay/mexicano/standings"
	"github.com/MinoPlay/mexicano/storage"
)

// Broadcaster pushes live updates to the watchers of a room.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message any)
}

type CreateTournamentInput struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	TournamentDate string   `json:"tournamentDate"`
	Players        []string `json:"players"`
}

// EditWindow describes until when a tournament accepts new rounds and scores.
type EditWindow struct {
	TournamentDate string    `json:"tournamentDate"`
	Timezone       string    `json:"timezone"`
	Deadline       time.Time `json:"deadline"`
	CanEdit        bool      `json:"canEdit"`
}

type RoundGeneratedPayload struct {
	TournamentDate string        `json:"tournamentDate"`
	Round          *models.Round `json:"round"`
}

type ScoreUpdatedPayload struct {
	TournamentDate string `json:"tournamentDate"`
	RoundNumber    int    `json:"roundNumber"`
	MatchID        int    `json:"matchId"`
	Team1Score     int    `json:"team1Score"`
	Team2Score     int    `json:"team2Score"`
}

type RoundsRegeneratedPayload struct {
	TournamentDate  string        `json:"tournamentDate"`
	EditedRound     int           `json:"editedRound"`
	DiscardedRounds int           `json:"discardedRounds"`
	Round           *models.Round `json:"round,omitempty"`
}

type TournamentDeletedPayload struct {
	TournamentDate string `json:"tournamentDate"`
}

type TournamentService interface {
	CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	GetTournament(ctx context.Context, date string) (*models.Tournament, error)
	ListTournaments(ctx context.Context) ([]models.TournamentMeta, error)
	DeleteTournament(ctx context.Context, date string) error
	GenerateNextRound(ctx context.Context, date string) (*models.Tournament, *models.Round, error)
	UpdateMatchScore(ctx context.Context, date string, roundNumber, matchID, team1Score, team2Score int) (*ScoreUpdate, error)
	GetStandings(ctx context.Context, date string) ([]models.PlayerStats, error)
	GetStats(ctx context.Context, date string) ([]models.PlayerStats, error)
	GetEditWindow(ctx context.Context, date string) (*EditWindow, error)
	PublicURL(date string) string
}

type tournamentService struct {
	store    storage.TournamentStore
	rounds   *RoundManager
	hub      Broadcaster
	recorder metrics.Recorder
	logger   *slog.Logger
	locks    *dateLocks
	now      func() time.Time
}

type TournamentServiceOption func(*tournamentService)

// WithClock replaces time.Now, for edit window checks and timestamps.
func WithClock(now func() time.Time) TournamentServiceOption {
	return func(s *tournamentService) {
		if now != nil {
			s.now = now
		}
	}
}

func NewTournamentService(
	store storage.TournamentStore,
	rounds *RoundManager,
	hub Broadcaster,
	recorder metrics.Recorder,
	logger *slog.Logger,
	opts ...TournamentServiceOption,
) TournamentService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &tournamentService{
		store:    store,
		rounds:   rounds,
		hub:      hub,
		recorder: recorder,
		logger:   logger,
		locks:    newDateLocks(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *tournamentService) CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, s.reject("create_tournament", ErrTournamentNameRequired)
	}
	if _, err := parseTournamentDate(input.TournamentDate); err != nil {
		return nil, s.reject("create_tournament", err)
	}
	players, err := NormalizePlayers(input.Players)
	if err != nil {
		return nil, s.reject("create_tournament", err)
	}

	unlock := s.locks.lock(input.TournamentDate)
	defer unlock()

	_, err = s.store.Load(ctx, input.TournamentDate)
	switch {
	case err == nil:
		return nil, s.reject("create_tournament", fmt.Errorf("%w: %s", ErrTournamentExists, input.TournamentDate))
	case !errors.Is(err, storage.ErrObjectNotFound):
		return nil, fmt.Errorf("failed to check for existing tournament %s: %w", input.TournamentDate, err)
	}

	now := s.now().UTC()
	t := &models.Tournament{
		Name:           name,
		Description:    strings.TrimSpace(input.Description),
		TournamentDate: input.TournamentDate,
		Players:        players,
		Rounds:         []models.Round{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	saved, err := s.store.Save(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("failed to save tournament %s: %w", t.TournamentDate, err)
	}

	s.recorder.TournamentCreated()
	s.logger.Info("tournament created",
		slog.String("tournament_date", saved.TournamentDate),
		slog.Int("players", len(saved.Players)))
	return saved, nil
}

func (s *tournamentService) GetTournament(ctx context.Context, date string) (*models.Tournament, error) {
	if _, err := parseTournamentDate(date); err != nil {
		return nil, err
	}
	return s.load(ctx, date)
}

func (s *tournamentService) ListTournaments(ctx context.Context) ([]models.TournamentMeta, error) {
	metas, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return metas, nil
}

func (s *tournamentService) DeleteTournament(ctx context.Context, date string) error {
	if _, err := parseTournamentDate(date); err != nil {
		return err
	}
	unlock := s.locks.lock(date)
	defer unlock()

	if err := s.store.Delete(ctx, date); err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return fmt.Errorf("%w: %s", ErrTournamentNotFound, date)
		}
		return fmt.Errorf("failed to delete tournament %s: %w", date, err)
	}

	s.recorder.TournamentDeleted()
	s.logger.Info("tournament deleted", slog.String("tournament_date", date))
	s.broadcast(date, brackets.MessageTournamentDeleted, TournamentDeletedPayload{TournamentDate: date})
	return nil
}

func (s *tournamentService) GenerateNextRound(ctx context.Context, date string) (*models.Tournament, *models.Round, error) {
	if _, err := parseTournamentDate(date); err != nil {
		return nil, nil, s.reject("generate_round", err)
	}
	unlock := s.locks.lock(date)
	defer unlock()

	t, err := s.load(ctx, date)
	if err != nil {
		return nil, nil, s.reject("generate_round", err)
	}
	if err := s.checkEditable(t); err != nil {
		return nil, nil, s.reject("generate_round", err)
	}

	next, round, err := s.rounds.GenerateNextRound(t)
	if err != nil {
		return nil, nil, s.reject("generate_round", err)
	}
	next.UpdatedAt = s.now().UTC()

	saved, err := s.store.Save(ctx, next)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to save round %d of tournament %s: %w", round.RoundNumber, date, err)
	}
	round = saved.CurrentRound()

	s.recorder.RoundGenerated(round.RoundNumber)
	s.logger.Info("round generated",
		slog.String("tournament_date", date),
		slog.Int("round", round.RoundNumber),
		slog.Int("matches", len(round.Matches)))
	s.broadcast(date, brackets.MessageRoundGenerated, RoundGeneratedPayload{TournamentDate: date, Round: round})
	return saved, round, nil
}

func (s *tournamentService) UpdateMatchScore(ctx context.Context, date string, roundNumber, matchID, team1Score, team2Score int) (*ScoreUpdate, error) {
	if _, err := parseTournamentDate(date); err != nil {
		return nil, s.reject("update_score", err)
	}
	unlock := s.locks.lock(date)
	defer unlock()

	t, err := s.load(ctx, date)
	if err != nil {
		return nil, s.reject("update_score", err)
	}
	if err := s.checkEditable(t); err != nil {
		return nil, s.reject("update_score", err)
	}

	update, err := s.rounds.UpdateMatchScore(t, roundNumber, matchID, team1Score, team2Score)
	if err != nil {
		return nil, s.reject("update_score", err)
	}
	update.Tournament.UpdatedAt = s.now().UTC()

	saved, err := s.store.Save(ctx, update.Tournament)
	if err != nil {
		return nil, fmt.Errorf("failed to save score of match %d in tournament %s: %w", matchID, date, err)
	}
	update.Tournament = saved
	if update.RegeneratedRound != nil {
		update.RegeneratedRound = saved.CurrentRound()
	}

	s.recorder.ScoreRecorded(update.Cascaded())
	s.logger.Info("match score recorded",
		slog.String("tournament_date", date),
		slog.Int("round", roundNumber),
		slog.Int("match_id", matchID),
		slog.Int("team1_score", team1Score),
		slog.Int("team2_score", team2Score))
	s.broadcast(date, brackets.MessageScoreUpdated, ScoreUpdatedPayload{
		TournamentDate: date,
		RoundNumber:    roundNumber,
		MatchID:        matchID,
		Team1Score:     team1Score,
		Team2Score:     team2Score,
	})

	if update.Cascaded() {
		s.recorder.RoundsDiscarded(update.DiscardedRounds)
		if update.RegeneratedRound != nil {
			s.recorder.RoundGenerated(update.RegeneratedRound.RoundNumber)
		}
		s.logger.Warn("past round edited, later rounds discarded",
			slog.String("tournament_date", date),
			slog.Int("edited_round", roundNumber),
			slog.Int("discarded_rounds", update.DiscardedRounds),
			slog.Bool("regenerated", update.RegeneratedRound != nil))
		s.broadcast(date, brackets.MessageRoundsRegenerated, RoundsRegeneratedPayload{
			TournamentDate:  date,
			EditedRound:     roundNumber,
			DiscardedRounds: update.DiscardedRounds,
			Round:           update.RegeneratedRound,
		})
	}
	return update, nil
}

func (s *tournamentService) GetStandings(ctx context.Context, date string) ([]models.PlayerStats, error) {
	t, err := s.GetTournament(ctx, date)
	if err != nil {
		return nil, err
	}
	return standings.RankPlayers(t), nil
}

// GetStats returns unranked statistics in the declared player order.
func (s *tournamentService) GetStats(ctx context.Context, date string) ([]models.PlayerStats, error) {
	t, err := s.GetTournament(ctx, date)
	if err != nil {
		return nil, err
	}
	byName := standings.ComputeStats(t)
	stats := make([]models.PlayerStats, 0, len(t.Players))
	for _, name := range t.Players {
		if st, ok := byName[name]; ok {
			stats = append(stats, *st)
		}
	}
	return stats, nil
}

func (s *tournamentService) GetEditWindow(ctx context.Context, date string) (*EditWindow, error) {
	t, err := s.GetTournament(ctx, date)
	if err != nil {
		return nil, err
	}
	deadline, err := s.rounds.EditDeadline(t)
	if err != nil {
		return nil, err
	}
	return &EditWindow{
		TournamentDate: date,
		Timezone:       s.rounds.Location().String(),
		Deadline:       deadline,
		CanEdit:        s.rounds.CanEdit(t, s.now()),
	}, nil
}

// PublicURL returns the public address of the stored record, when the
// backend serves one.
func (s *tournamentService) PublicURL(date string) string {
	if p, ok := s.store.(storage.PublicURLProvider); ok {
		return p.PublicURL(date)
	}
	return ""
}

func (s *tournamentService) load(ctx context.Context, date string) (*models.Tournament, error) {
	t, err := s.store.Load(ctx, date)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTournamentNotFound, date)
		}
		return nil, fmt.Errorf("failed to load tournament %s: %w", date, err)
	}
	return t, nil
}

func (s *tournamentService) checkEditable(t *models.Tournament) error {
	if s.rounds.CanEdit(t, s.now()) {
		return nil
	}
	deadline, err := s.rounds.EditDeadline(t)
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: %s closed at %s", ErrEditWindowClosed, t.TournamentDate, deadline.Format(time.RFC3339))
}

// reject counts a refused operation and passes err through.
func (s *tournamentService) reject(operation string, err error) error {
	s.recorder.OperationRejected(operation, errorCategory(err))
	return err
}

func (s *tournamentService) broadcast(date, messageType string, payload any) {
	if s.hub == nil {
		return
	}
	room := brackets.RoomForTournament(date)
	s.hub.BroadcastToRoom(room, brackets.WebSocketMessage{
		Type:    messageType,
		Payload: payload,
		RoomID:  room,
	})
}
