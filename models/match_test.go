package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestIsValidScore(t *testing.T) {
	tests := []struct {
		name   string
		team1  int
		team2  int
		expect bool
	}{
		{name: "regular win", team1: 15, team2: 10, expect: true},
		{name: "shutout", team1: 25, team2: 0, expect: true},
		{name: "shutout for team2", team1: 0, team2: 25, expect: true},
		{name: "sum above 25", team1: 13, team2: 13, expect: false},
		{name: "sum below 25", team1: 12, team2: 12, expect: false},
		{name: "negative score", team1: -1, team2: 26, expect: false},
		{name: "negative team2", team1: 26, team2: -1, expect: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, IsValidScore(tt.team1, tt.team2))
		})
	}
}

func TestMatchIsComplete(t *testing.T) {
	tests := []struct {
		name   string
		match  Match
		expect bool
	}{
		{name: "no scores", match: Match{}, expect: false},
		{name: "only team1 set", match: Match{Team1Score: intPtr(15)}, expect: false},
		{name: "only team2 set", match: Match{Team2Score: intPtr(10)}, expect: false},
		{name: "valid pair", match: Match{Team1Score: intPtr(15), Team2Score: intPtr(10)}, expect: true},
		{name: "invalid pair from storage", match: Match{Team1Score: intPtr(20), Team2Score: intPtr(20)}, expect: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.match.IsComplete())
		})
	}
}

func TestMatchWinner(t *testing.T) {
	assert.Equal(t, Team1, Match{Team1Score: intPtr(15), Team2Score: intPtr(10)}.Winner())
	assert.Equal(t, Team2, Match{Team1Score: intPtr(3), Team2Score: intPtr(22)}.Winner())
	assert.Equal(t, NoTeam, Match{Team1Score: intPtr(15)}.Winner())
}

func TestRoundIsComplete(t *testing.T) {
	done := Match{ID: 1, Team1Score: intPtr(13), Team2Score: intPtr(12)}
	open := Match{ID: 2}

	assert.False(t, Round{RoundNumber: 1}.IsComplete(), "empty round")
	assert.False(t, Round{RoundNumber: 1, Matches: []Match{done, open}}.IsComplete())
	assert.True(t, Round{RoundNumber: 1, Matches: []Match{done, done}}.IsComplete())
	assert.Equal(t, 1, Round{Matches: []Match{done, open}}.CompletedMatches())
}

func TestTournamentState(t *testing.T) {
	tr := &Tournament{}
	state, n := tr.State()
	assert.Equal(t, StateNoRounds, state)
	assert.Zero(t, n)

	tr.Rounds = []Round{{RoundNumber: 1, Matches: []Match{{ID: 1}}}}
	state, n = tr.State()
	assert.Equal(t, StateRoundInProgress, state)
	assert.Equal(t, 1, n)

	tr.Rounds[0].Matches[0].SetScore(20, 5)
	state, n = tr.State()
	assert.Equal(t, StateRoundComplete, state)
	assert.Equal(t, 1, n)
}

func TestTournamentLastMatchID(t *testing.T) {
	tr := &Tournament{Rounds: []Round{
		{RoundNumber: 1, Matches: []Match{{ID: 1}, {ID: 2}}},
		{RoundNumber: 2, Matches: []Match{{ID: 3}, {ID: 4}}},
	}}
	assert.Equal(t, 4, tr.LastMatchID())

	tr.MatchIDSeq = 9
	assert.Equal(t, 9, tr.LastMatchID(), "discarded ids stay reserved")
}

func TestTournamentCloneIsDeep(t *testing.T) {
	tr := &Tournament{
		Players: []string{"Alice", "Bob"},
		Rounds:  []Round{{RoundNumber: 1, Matches: []Match{{ID: 1, Team1Score: intPtr(15), Team2Score: intPtr(10)}}}},
	}
	c := tr.Clone()
	c.Players[0] = "Zed"
	c.Rounds[0].Matches[0].SetScore(5, 20)
	*c.Rounds[0].Matches[0].Team1Score = 1

	assert.Equal(t, "Alice", tr.Players[0])
	assert.Equal(t, 15, *tr.Rounds[0].Matches[0].Team1Score)
	assert.Equal(t, 10, *tr.Rounds[0].Matches[0].Team2Score)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		date    string
		wantErr bool
	}{
		{date: "2025-03-01"},
		{date: "2024-02-29"},
		{date: "2025-02-29", wantErr: true},
		{date: "2025-3-1", wantErr: true},
		{date: "index", wantErr: true},
		{date: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			_, err := ParseDate(tt.date)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
