package brackets

import "github.com/MinoPlay/mexicano/models"

// GeneratePairingsParams is the input of a PairingGenerator. Round 1
// generators read Players, the declared entry list; standings based
// generators read Ranked, best first. Either list has a multiple of four
// entries.
type GeneratePairingsParams struct {
	Players      []string
	Ranked       []models.PlayerStats
	FirstMatchID int
}

type PairingGenerator interface {
	GeneratePairings(params GeneratePairingsParams) []models.Match

	GetName() string
}

// pairQuartets splits players into consecutive groups of four and pits the
// first and last of each group against the middle two. IDs are issued from
// firstID upwards in group order.
func pairQuartets(players []string, firstID int) []models.Match {
	matches := make([]models.Match, 0, len(players)/4)
	nextID := firstID
	for i := 0; i+4 <= len(players); i += 4 {
		g := players[i : i+4]
		matches = append(matches, models.Match{
			ID:           nextID,
			Team1Player1: g[0],
			Team1Player2: g[3],
			Team2Player1: g[1],
			Team2Player2: g[2],
		})
		nextID++
	}
	return matches
}
