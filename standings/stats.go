// Package standings derives per-player statistics and rankings from a
// tournament's match history. Everything here is recomputed on every call.
package standings

import "github.com/MinoPlay/mexicano/models"

// ComputeStats returns the statistics of every declared player, including
// players who have not played yet. Incomplete matches contribute nothing.
func ComputeStats(t *models.Tournament) map[string]*models.PlayerStats {
	index := make(map[string]*models.PlayerStats, len(t.Players))
	for _, name := range t.Players {
		index[name] = &models.PlayerStats{Name: name}
	}

	for _, round := range t.Rounds {
		for _, match := range round.Matches {
			winner := match.Winner()
			if winner == models.NoTeam {
				// Incomplete, or a tied pair that a valid score can never produce.
				continue
			}
			loser := models.Team1
			if winner == models.Team1 {
				loser = models.Team2
			}
			credit(index, match, winner, true)
			credit(index, match, loser, false)
		}
	}

	for _, s := range index {
		if s.GamesPlayed == 0 {
			continue
		}
		s.PointsPerGame = float64(s.TotalPoints) / float64(s.GamesPlayed)
		s.WinPercentage = 100 * float64(s.Wins) / float64(s.GamesPlayed)
	}
	return index
}

func credit(index map[string]*models.PlayerStats, match models.Match, team models.Team, won bool) {
	points := match.TeamScore(team)
	for _, name := range match.TeamPlayers(team) {
		s, ok := index[name]
		if !ok {
			continue
		}
		s.TotalPoints += points
		s.GamesPlayed++
		if won {
			s.Wins++
		} else {
			s.Losses++
		}
	}
}
