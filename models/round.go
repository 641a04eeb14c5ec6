package models

// Round is a batch of matches generated together and played concurrently,
// one match per court.
type Round struct {
	RoundNumber int     `json:"roundNumber"`
	Matches     []Match `json:"matches"`
}

// IsComplete reports whether every match in the round has a final score.
// A round without matches is never complete.
func (r Round) IsComplete() bool {
	if len(r.Matches) == 0 {
		return false
	}
	for _, m := range r.Matches {
		if !m.IsComplete() {
			return false
		}
	}
	return true
}

// CompletedMatches counts the matches that already have a final score.
func (r Round) CompletedMatches() int {
	n := 0
	for _, m := range r.Matches {
		if m.IsComplete() {
			n++
		}
	}
	return n
}

// MatchByID returns a pointer into r.Matches, or nil.
func (r *Round) MatchByID(id int) *Match {
	for i := range r.Matches {
		if r.Matches[i].ID == id {
			return &r.Matches[i]
		}
	}
	return nil
}

func (r Round) clone() Round {
	c := Round{RoundNumber: r.RoundNumber, Matches: make([]Match, len(r.Matches))}
	for i, m := range r.Matches {
		c.Matches[i] = m.clone()
	}
	return c
}
