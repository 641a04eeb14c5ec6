package models

import (
	"fmt"
	"time"
)

// DateLayout is the format of Tournament.TournamentDate and of every store key.
const DateLayout = "2006-01-02"

// ValidPlayerCounts lists the supported field sizes (two, three or four courts).
var ValidPlayerCounts = []int{8, 12, 16}

// LifecycleState is the round state of a tournament.
type LifecycleState string

const (
	StateNoRounds        LifecycleState = "no_rounds"
	StateRoundInProgress LifecycleState = "round_in_progress"
	StateRoundComplete   LifecycleState = "round_complete"
)

// Tournament is the persisted aggregate. One tournament exists per calendar
// date; the date string is its key in every store.
type Tournament struct {
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	TournamentDate string    `json:"tournamentDate"`
	Players        []string  `json:"players"`
	Rounds         []Round   `json:"rounds"`
	MatchIDSeq     int       `json:"matchIdSeq,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// TournamentMeta is the listing projection of a Tournament.
type TournamentMeta struct {
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	TournamentDate string    `json:"tournamentDate"`
	PlayerCount    int       `json:"playerCount"`
	RoundCount     int       `json:"roundCount"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Meta builds the listing projection.
func (t *Tournament) Meta() TournamentMeta {
	return TournamentMeta{
		Name:           t.Name,
		Description:    t.Description,
		TournamentDate: t.TournamentDate,
		PlayerCount:    len(t.Players),
		RoundCount:     len(t.Rounds),
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

// CurrentRound returns the last round, or nil before round 1 exists.
func (t *Tournament) CurrentRound() *Round {
	if len(t.Rounds) == 0 {
		return nil
	}
	return &t.Rounds[len(t.Rounds)-1]
}

// RoundIndex returns the slice index of the round with the given number, or -1.
func (t *Tournament) RoundIndex(roundNumber int) int {
	for i := range t.Rounds {
		if t.Rounds[i].RoundNumber == roundNumber {
			return i
		}
	}
	return -1
}

// State reports the lifecycle state together with the current round number
// (0 for StateNoRounds).
func (t *Tournament) State() (LifecycleState, int) {
	current := t.CurrentRound()
	switch {
	case current == nil:
		return StateNoRounds, 0
	case current.IsComplete():
		return StateRoundComplete, current.RoundNumber
	default:
		return StateRoundInProgress, current.RoundNumber
	}
}

// LastMatchID is the highest match id ever issued in this tournament,
// including ids of rounds that were later discarded.
func (t *Tournament) LastMatchID() int {
	highest := t.MatchIDSeq
	for _, r := range t.Rounds {
		for _, m := range r.Matches {
			if m.ID > highest {
				highest = m.ID
			}
		}
	}
	return highest
}

// ParseDate parses a canonical YYYY-MM-DD date. Non-canonical forms are
// rejected so a valid date maps to exactly one store key.
func ParseDate(date string) (time.Time, error) {
	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, err
	}
	if day.Format(DateLayout) != date {
		return time.Time{}, fmt.Errorf("date %q is not in canonical form", date)
	}
	return day, nil
}

// Date parses TournamentDate as a calendar date in loc.
func (t *Tournament) Date(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, t.TournamentDate, loc)
}

// Clone returns a deep copy that shares no slices with t.
func (t *Tournament) Clone() *Tournament {
	c := *t
	c.Players = append([]string(nil), t.Players...)
	if t.Rounds != nil {
		c.Rounds = make([]Round, len(t.Rounds))
		for i, r := range t.Rounds {
			c.Rounds[i] = r.clone()
		}
	}
	return &c
}
