package standings

import (
	"cmp"
	"slices"

	"github.com/MinoPlay/mexicano/models"
)

// RankPlayers computes fresh statistics and returns them best first with
// ranks assigned.
func RankPlayers(t *models.Tournament) []models.PlayerStats {
	return RankStats(ComputeStats(t))
}

// RankStats orders stats by total points, wins, points per game and finally
// name, then assigns competition ranks: a player level with its predecessor
// on both total points and wins shares its rank, anyone else is ranked by
// position. Points per game orders tied players but never splits a rank.
func RankStats(stats map[string]*models.PlayerStats) []models.PlayerStats {
	ranked := make([]models.PlayerStats, 0, len(stats))
	for _, s := range stats {
		ranked = append(ranked, *s)
	}

	slices.SortFunc(ranked, func(a, b models.PlayerStats) int {
		if c := cmp.Compare(b.TotalPoints, a.TotalPoints); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Wins, a.Wins); c != 0 {
			return c
		}
		if c := cmp.Compare(b.PointsPerGame, a.PointsPerGame); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	for i := range ranked {
		if i > 0 && sharesRank(ranked[i-1], ranked[i]) {
			ranked[i].Rank = ranked[i-1].Rank
			continue
		}
		ranked[i].Rank = i + 1
	}
	return ranked
}

func sharesRank(prev, cur models.PlayerStats) bool {
	return prev.TotalPoints == cur.TotalPoints && prev.Wins == cur.Wins
}
