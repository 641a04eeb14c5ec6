package models

// PlayerStats is one player's standing derived from the match history.
// It is never persisted; Rank is 0 until the stats have been ranked.
type PlayerStats struct {
	Name          string  `json:"name"`
	TotalPoints   int     `json:"totalPoints"`
	GamesPlayed   int     `json:"gamesPlayed"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	PointsPerGame float64 `json:"pointsPerGame"`
	WinPercentage float64 `json:"winPercentage"`
	Rank          int     `json:"rank,omitempty"`
}
