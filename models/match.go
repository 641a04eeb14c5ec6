package models

// MatchPoints is the number of points played in every match; a finished
// match's two scores always add up to it.
const MatchPoints = 25

// Team identifies one side of a Match.
type Team int

const (
	NoTeam Team = iota
	Team1
	Team2
)

// Match is a 2v2 game inside a Round. Scores are nil until entered.
type Match struct {
	ID           int    `json:"id"`
	Team1Player1 string `json:"team1Player1"`
	Team1Player2 string `json:"team1Player2"`
	Team2Player1 string `json:"team2Player1"`
	Team2Player2 string `json:"team2Player2"`
	Team1Score   *int   `json:"team1Score"`
	Team2Score   *int   `json:"team2Score"`
}

// IsValidScore reports whether a score pair may be recorded: both
// non-negative and summing to exactly MatchPoints.
func IsValidScore(team1Score, team2Score int) bool {
	return team1Score >= 0 && team2Score >= 0 && team1Score+team2Score == MatchPoints
}

// IsComplete reports whether both scores are set and form a valid pair.
func (m Match) IsComplete() bool {
	if m.Team1Score == nil || m.Team2Score == nil {
		return false
	}
	return IsValidScore(*m.Team1Score, *m.Team2Score)
}

// Winner returns the team with the strictly higher score. It returns NoTeam
// for incomplete matches and for equal scores, which cannot be produced by a
// valid pair but are guarded against for records loaded from storage.
func (m Match) Winner() Team {
	if !m.IsComplete() {
		return NoTeam
	}
	switch {
	case *m.Team1Score > *m.Team2Score:
		return Team1
	case *m.Team2Score > *m.Team1Score:
		return Team2
	default:
		return NoTeam
	}
}

// TeamPlayers returns the two players on the given side.
func (m Match) TeamPlayers(team Team) [2]string {
	if team == Team2 {
		return [2]string{m.Team2Player1, m.Team2Player2}
	}
	return [2]string{m.Team1Player1, m.Team1Player2}
}

// TeamScore returns the score of the given side, or 0 when unset.
func (m Match) TeamScore(team Team) int {
	s := m.Team1Score
	if team == Team2 {
		s = m.Team2Score
	}
	if s == nil {
		return 0
	}
	return *s
}

// Players lists all four participants, team1 first.
func (m Match) Players() []string {
	return []string{m.Team1Player1, m.Team1Player2, m.Team2Player1, m.Team2Player2}
}

// SetScore records both scores. Callers validate with IsValidScore first.
func (m *Match) SetScore(team1Score, team2Score int) {
	s1, s2 := team1Score, team2Score
	m.Team1Score = &s1
	m.Team2Score = &s2
}

func (m Match) clone() Match {
	c := m
	if m.Team1Score != nil {
		s := *m.Team1Score
		c.Team1Score = &s
	}
	if m.Team2Score != nil {
		s := *m.Team2Score
		c.Team2Score = &s
	}
	return c
}
