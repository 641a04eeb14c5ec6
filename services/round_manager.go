package services

import (
	"fmt"
	"time"

	"github.com/MinoPlay/mexicano/brackets"
	"github.com/MinoPlay/mexicano/models"
	"github.com/MinoPlay/mexicano/standings"
)

// editWindowDays is how many calendar days, counted from the start of the
// tournament day, scores stay editable: the tournament day plus one more.
const editWindowDays = 2

// RoundManager drives the round lifecycle of a tournament. It holds no
// tournament state: every call takes a tournament and, on success, returns a
// new one. The tournament passed in is never modified, so a rejected call
// leaves the caller's value exactly as it was.
type RoundManager struct {
	initial  brackets.PairingGenerator
	mexicano brackets.PairingGenerator
	location *time.Location
}

type RoundManagerOption func(*RoundManager)

// WithShuffler randomizes the round 1 order with s.
func WithShuffler(s brackets.Shuffler) RoundManagerOption {
	return func(m *RoundManager) {
		m.initial = brackets.NewInitialGenerator(s)
	}
}

// WithEditLocation sets the timezone in which tournament days start and end.
func WithEditLocation(loc *time.Location) RoundManagerOption {
	return func(m *RoundManager) {
		if loc != nil {
			m.location = loc
		}
	}
}

func NewRoundManager(opts ...RoundManagerOption) *RoundManager {
	m := &RoundManager{
		initial:  brackets.NewInitialGenerator(nil),
		mexicano: brackets.NewMexicanoGenerator(),
		location: time.UTC,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ScoreUpdate is the outcome of UpdateMatchScore.
type ScoreUpdate struct {
	Tournament *models.Tournament
	// DiscardedRounds counts the rounds after the edited one that were dropped.
	DiscardedRounds int
	// RegeneratedRound is the round rebuilt after a cascade, if any.
	RegeneratedRound *models.Round
}

// Cascaded reports whether the edit invalidated later rounds.
func (u *ScoreUpdate) Cascaded() bool {
	return u.DiscardedRounds > 0
}

// State reports the lifecycle state of t and its current round number.
func (m *RoundManager) State(t *models.Tournament) (models.LifecycleState, int) {
	return t.State()
}

// GenerateNextRound appends the next round. Round 1 pairs the declared
// players; later rounds pair the current standings Mexicano style. It fails
// with ErrRoundIncomplete while the last round still has unscored matches.
func (m *RoundManager) GenerateNextRound(t *models.Tournament) (*models.Tournament, *models.Round, error) {
	if err := checkCanAdvance(t); err != nil {
		return nil, nil, err
	}
	next := t.Clone()
	round, err := m.appendRound(next)
	if err != nil {
		return nil, nil, err
	}
	return next, round, nil
}

func checkCanAdvance(t *models.Tournament) error {
	current := t.CurrentRound()
	if current == nil || current.IsComplete() {
		return nil
	}
	return fmt.Errorf("%w: round %d has %d of %d matches scored",
		ErrRoundIncomplete, current.RoundNumber, current.CompletedMatches(), len(current.Matches))
}

// appendRound builds the next round onto t in place. t must already be a
// value the caller owns.
func (m *RoundManager) appendRound(t *models.Tournament) (*models.Round, error) {
	if len(t.Players) == 0 || len(t.Players)%4 != 0 {
		return nil, fmt.Errorf("%w: tournament %s has %d players", ErrInvalidPlayerCount, t.TournamentDate, len(t.Players))
	}

	roundNumber := 1
	if current := t.CurrentRound(); current != nil {
		roundNumber = current.RoundNumber + 1
	}

	params := brackets.GeneratePairingsParams{FirstMatchID: t.LastMatchID() + 1}
	generator := m.mexicano
	if roundNumber == 1 {
		generator = m.initial
		params.Players = t.Players
	} else {
		params.Ranked = standings.RankPlayers(t)
	}

	t.Rounds = append(t.Rounds, models.Round{
		RoundNumber: roundNumber,
		Matches:     generator.GeneratePairings(params),
	})
	t.MatchIDSeq = t.LastMatchID()
	return &t.Rounds[len(t.Rounds)-1], nil
}

// UpdateMatchScore records a score. Editing the current round changes only
// that match. Editing an earlier round discards every later round, since
// their pairings came from standings that no longer hold, and, when the
// edited round is complete, rebuilds the following round from the new
// standings. Match ids of discarded rounds are never issued again.
func (m *RoundManager) UpdateMatchScore(t *models.Tournament, roundNumber, matchID, team1Score, team2Score int) (*ScoreUpdate, error) {
	if !models.IsValidScore(team1Score, team2Score) {
		return nil, fmt.Errorf("%w: got %d-%d for match %d", ErrInvalidScore, team1Score, team2Score, matchID)
	}

	idx := t.RoundIndex(roundNumber)
	if idx < 0 {
		return nil, fmt.Errorf("%w: round %d", ErrRoundNotFound, roundNumber)
	}
	if t.Rounds[idx].MatchByID(matchID) == nil {
		return nil, fmt.Errorf("%w: match %d in round %d", ErrMatchNotFound, matchID, roundNumber)
	}

	next := t.Clone()
	next.Rounds[idx].MatchByID(matchID).SetScore(team1Score, team2Score)
	update := &ScoreUpdate{Tournament: next}

	if idx == len(next.Rounds)-1 {
		return update, nil
	}

	reserved := next.LastMatchID()
	kept := make([]models.Round, idx+1)
	copy(kept, next.Rounds[:idx+1])
	update.DiscardedRounds = len(next.Rounds) - len(kept)
	next.Rounds = kept
	next.MatchIDSeq = reserved

	if !next.Rounds[idx].IsComplete() {
		return update, nil
	}
	round, err := m.appendRound(next)
	if err != nil {
		return nil, err
	}
	update.RegeneratedRound = round
	return update, nil
}

// EditDeadline is the first instant at which t can no longer be edited: the
// start of the second day after the tournament date, in the manager's
// location.
func (m *RoundManager) EditDeadline(t *models.Tournament) (time.Time, error) {
	day, err := t.Date(m.location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTournamentDate, t.TournamentDate)
	}
	return day.AddDate(0, 0, editWindowDays), nil
}

// CanEdit reports whether scores and rounds of t may still change at now.
func (m *RoundManager) CanEdit(t *models.Tournament, now time.Time) bool {
	deadline, err := m.EditDeadline(t)
	if err != nil {
		return false
	}
	return now.Before(deadline)
}

// Location is the timezone tournament days are evaluated in.
func (m *RoundManager) Location() *time.Location {
	return m.location
}
