package services

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MinoPlay/mexicano/brackets"
	"github.com/MinoPlay/mexicano/models"
)

func newTestTournament(players []string) *models.Tournament {
	return &models.Tournament{
		Name:           "Friday padel",
		TournamentDate: "2025-03-01",
		Players:        players,
		Rounds:         []models.Round{},
	}
}

type pairing struct {
	ID    int
	Team1 [2]string
	Team2 [2]string
}

func pairingsOf(r *models.Round) []pairing {
	out := make([]pairing, len(r.Matches))
	for i, m := range r.Matches {
		out[i] = pairing{ID: m.ID, Team1: m.TeamPlayers(models.Team1), Team2: m.TeamPlayers(models.Team2)}
	}
	return out
}

// scoreCurrentRound scores the matches of the last round in order.
func scoreCurrentRound(t *testing.T, m *RoundManager, tr *models.Tournament, scores ...[2]int) *models.Tournament {
	t.Helper()
	current := tr.CurrentRound()
	require.NotNil(t, current)
	require.Len(t, scores, len(current.Matches))

	roundNumber := current.RoundNumber
	ids := make([]int, len(current.Matches))
	for i, match := range current.Matches {
		ids[i] = match.ID
	}
	for i, s := range scores {
		update, err := m.UpdateMatchScore(tr, roundNumber, ids[i], s[0], s[1])
		require.NoError(t, err)
		require.False(t, update.Cascaded())
		tr = update.Tournament
	}
	return tr
}

func generate(t *testing.T, m *RoundManager, tr *models.Tournament) *models.Tournament {
	t.Helper()
	next, _, err := m.GenerateNextRound(tr)
	require.NoError(t, err)
	return next
}

func TestGenerateNextRound_FirstRound(t *testing.T) {
	m := NewRoundManager()
	tr := newTestTournament(eightPlayers())

	next, round, err := m.GenerateNextRound(tr)
	require.NoError(t, err)

	assert.Empty(t, tr.Rounds, "input tournament is not modified")
	require.Len(t, next.Rounds, 1)
	assert.Equal(t, 1, round.RoundNumber)
	assert.Equal(t, []pairing{
		{ID: 1, Team1: [2]string{"P1", "P4"}, Team2: [2]string{"P2", "P3"}},
		{ID: 2, Team1: [2]string{"P5", "P8"}, Team2: [2]string{"P6", "P7"}},
	}, pairingsOf(round))

	state, n := m.State(next)
	assert.Equal(t, models.StateRoundInProgress, state)
	assert.Equal(t, 1, n)
}

func TestGenerateNextRound_RefusedWhileRoundIncomplete(t *testing.T) {
	m := NewRoundManager()
	tr := generate(t, m, newTestTournament(eightPlayers()))

	update, err := m.UpdateMatchScore(tr, 1, 1, 18, 7)
	require.NoError(t, err)
	tr = update.Tournament
	before := tr.Clone()

	_, _, err = m.GenerateNextRound(tr)
	require.ErrorIs(t, err, ErrRoundIncomplete)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Contains(t, err.Error(), "1 of 2")
	if diff := cmp.Diff(before, tr); diff != "" {
		t.Fatalf("rejected call changed the tournament (-before +after):\n%s", diff)
	}

	update, err = m.UpdateMatchScore(tr, 1, 2, 11, 14)
	require.NoError(t, err)
	_, _, err = m.GenerateNextRound(update.Tournament)
	assert.NoError(t, err)
}

func TestGenerateNextRound_PairsByStandings(t *testing.T) {
	m := NewRoundManager()
	tr := generate(t, m, newTestTournament(eightPlayers()))
	tr = scoreCurrentRound(t, m, tr, [2]int{18, 7}, [2]int{11, 14})

	next, round, err := m.GenerateNextRound(tr)
	require.NoError(t, err)

	assert.Equal(t, 2, round.RoundNumber)
	assert.Equal(t, []pairing{
		{ID: 3, Team1: [2]string{"P1", "P7"}, Team2: [2]string{"P4", "P6"}},
		{ID: 4, Team1: [2]string{"P5", "P3"}, Team2: [2]string{"P8", "P2"}},
	}, pairingsOf(round))
	assert.Equal(t, 4, next.MatchIDSeq)
}

func TestGenerateNextRound_RejectsUnsupportedPlayerList(t *testing.T) {
	m := NewRoundManager()
	_, _, err := m.GenerateNextRound(newTestTournament([]string{"A", "B", "C", "D", "E", "F"}))
	assert.ErrorIs(t, err, ErrInvalidPlayerCount)
}

func TestUpdateMatchScore_CurrentRoundOnlyChangesThatMatch(t *testing.T) {
	m := NewRoundManager()
	tr := generate(t, m, newTestTournament(eightPlayers()))

	update, err := m.UpdateMatchScore(tr, 1, 2, 25, 0)
	require.NoError(t, err)

	assert.False(t, update.Cascaded())
	assert.Nil(t, update.RegeneratedRound)
	got := update.Tournament.Rounds[0]
	assert.False(t, got.Matches[0].IsComplete())
	assert.Equal(t, 25, *got.Matches[1].Team1Score)
	assert.Equal(t, 0, *got.Matches[1].Team2Score)
	assert.Nil(t, tr.Rounds[0].Matches[1].Team1Score, "input tournament is not modified")
}

func TestUpdateMatchScore_Rejections(t *testing.T) {
	m := NewRoundManager()
	tr := generate(t, m, newTestTournament(eightPlayers()))
	before := tr.Clone()

	tests := []struct {
		name         string
		round, match int
		s1, s2       int
		wantErr      error
		wantCategory error
	}{
		{name: "sum is not 25", round: 1, match: 1, s1: 13, s2: 13, wantErr: ErrInvalidScore, wantCategory: ErrValidationFailed},
		{name: "negative score", round: 1, match: 1, s1: -5, s2: 30, wantErr: ErrInvalidScore, wantCategory: ErrValidationFailed},
		{name: "unknown round", round: 4, match: 1, s1: 15, s2: 10, wantErr: ErrRoundNotFound, wantCategory: ErrInvalidState},
		{name: "match from another round", round: 1, match: 3, s1: 15, s2: 10, wantErr: ErrMatchNotFound, wantCategory: ErrInvalidState},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			update, err := m.UpdateMatchScore(tr, tt.round, tt.match, tt.s1, tt.s2)
			require.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, tt.wantCategory)
			assert.Nil(t, update)
		})
	}
	if diff := cmp.Diff(before, tr); diff != "" {
		t.Fatalf("rejected calls changed the tournament (-before +after):\n%s", diff)
	}
}

func TestUpdateMatchScore_PastRoundCascade(t *testing.T) {
	m := NewRoundManager()
	tr := generate(t, m, newTestTournament(eightPlayers()))
	tr = scoreCurrentRound(t, m, tr, [2]int{18, 7}, [2]int{11, 14})
	tr = generate(t, m, tr)
	tr = scoreCurrentRound(t, m, tr, [2]int{15, 10}, [2]int{12, 13})
	tr = generate(t, m, tr)
	require.Len(t, tr.Rounds, 3)
	require.Equal(t, 6, tr.LastMatchID())
	before := tr.Clone()

	update, err := m.UpdateMatchScore(tr, 1, 1, 5, 20)
	require.NoError(t, err)

	assert.True(t, update.Cascaded())
	assert.Equal(t, 2, update.DiscardedRounds)
	require.NotNil(t, update.RegeneratedRound)

	next := update.Tournament
	require.Len(t, next.Rounds, 2)
	assert.Equal(t, 5, *next.Rounds[0].Matches[0].Team1Score)
	assert.Equal(t, 20, *next.Rounds[0].Matches[0].Team2Score)
	assert.Equal(t, 2, next.Rounds[1].RoundNumber)
	assert.Equal(t, []pairing{
		{ID: 7, Team1: [2]string{"P2", "P7"}, Team2: [2]string{"P3", "P6"}},
		{ID: 8, Team1: [2]string{"P5", "P4"}, Team2: [2]string{"P8", "P1"}},
	}, pairingsOf(&next.Rounds[1]))
	assert.Equal(t, 8, next.MatchIDSeq)

	if diff := cmp.Diff(before, tr); diff != "" {
		t.Fatalf("cascade changed the input tournament (-before +after):\n%s", diff)
	}
}

func TestUpdateMatchScore_CascadeWithoutRegeneration(t *testing.T) {
	m := NewRoundManager()
	// Round 1 still has an open match while round 2 exists, as in records
	// written before scores were validated.
	tr := newTestTournament(eightPlayers())
	tr.Rounds = []models.Round{
		{RoundNumber: 1, Matches: []models.Match{
			{ID: 1, Team1Player1: "P1", Team1Player2: "P4", Team2Player1: "P2", Team2Player2: "P3"},
			{ID: 2, Team1Player1: "P5", Team1Player2: "P8", Team2Player1: "P6", Team2Player2: "P7"},
		}},
		{RoundNumber: 2, Matches: []models.Match{
			{ID: 3, Team1Player1: "P1", Team1Player2: "P7", Team2Player1: "P4", Team2Player2: "P6"},
			{ID: 4, Team1Player1: "P5", Team1Player2: "P3", Team2Player1: "P8", Team2Player2: "P2"},
		}},
	}

	update, err := m.UpdateMatchScore(tr, 1, 1, 15, 10)
	require.NoError(t, err)

	assert.Equal(t, 1, update.DiscardedRounds)
	assert.Nil(t, update.RegeneratedRound)
	require.Len(t, update.Tournament.Rounds, 1)
	assert.Equal(t, 4, update.Tournament.MatchIDSeq, "ids of the discarded round stay reserved")

	state, n := m.State(update.Tournament)
	assert.Equal(t, models.StateRoundInProgress, state)
	assert.Equal(t, 1, n)

	next := scoreCurrentRound(t, m, update.Tournament, [2]int{15, 10}, [2]int{20, 5})
	next, round, err := m.GenerateNextRound(next)
	require.NoError(t, err)
	assert.Equal(t, 5, round.Matches[0].ID)
	assert.Equal(t, 6, round.Matches[1].ID)
	assert.Equal(t, 6, next.LastMatchID())
}

func TestRoundManager_SeededShuffleIsReproducible(t *testing.T) {
	players := eightPlayers()
	first := NewRoundManager(WithShuffler(brackets.NewSeededShuffler(7)))
	second := NewRoundManager(WithShuffler(brackets.NewSeededShuffler(7)))

	a, _, err := first.GenerateNextRound(newTestTournament(players))
	require.NoError(t, err)
	b, _, err := second.GenerateNextRound(newTestTournament(players))
	require.NoError(t, err)

	assert.Equal(t, pairingsOf(&a.Rounds[0]), pairingsOf(&b.Rounds[0]))
	assert.Equal(t, eightPlayers(), a.Players, "declared order is kept")
	var seated []string
	for _, match := range a.Rounds[0].Matches {
		seated = append(seated, match.Players()...)
	}
	assert.ElementsMatch(t, players, seated)
}

func TestCanEdit(t *testing.T) {
	tr := newTestTournament(eightPlayers())
	plusTwo := time.FixedZone("UTC+2", 2*60*60)

	tests := []struct {
		name string
		loc  *time.Location
		now  time.Time
		want bool
	}{
		{name: "before the tournament day", loc: time.UTC, now: time.Date(2025, 2, 27, 12, 0, 0, 0, time.UTC), want: true},
		{name: "on the tournament day", loc: time.UTC, now: time.Date(2025, 3, 1, 21, 0, 0, 0, time.UTC), want: true},
		{name: "last instant of the next day", loc: time.UTC, now: time.Date(2025, 3, 2, 23, 59, 59, 0, time.UTC), want: true},
		{name: "deadline itself", loc: time.UTC, now: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), want: false},
		{name: "week later", loc: time.UTC, now: time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC), want: false},
		{name: "configured zone ahead of UTC, still open", loc: plusTwo, now: time.Date(2025, 3, 2, 21, 59, 0, 0, time.UTC), want: true},
		{name: "configured zone ahead of UTC, closed", loc: plusTwo, now: time.Date(2025, 3, 2, 22, 0, 0, 0, time.UTC), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewRoundManager(WithEditLocation(tt.loc))
			assert.Equal(t, tt.want, m.CanEdit(tr, tt.now))
		})
	}
}

func TestEditDeadline_InvalidDate(t *testing.T) {
	m := NewRoundManager()
	tr := newTestTournament(eightPlayers())
	tr.TournamentDate = "01/03/2025"

	_, err := m.EditDeadline(tr)
	assert.ErrorIs(t, err, ErrInvalidTournamentDate)
	assert.False(t, m.CanEdit(tr, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
}
