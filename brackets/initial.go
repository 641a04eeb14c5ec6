package brackets

import "github.com/MinoPlay/mexicano/models"

// InitialPairing builds round 1 from players in the order given.
func InitialPairing(players []string, firstID int) []models.Match {
	return pairQuartets(players, firstID)
}

// InitialGenerator pairs the declared player list for round 1. With a
// Shuffler the order is permuted first; the caller's slice is left as is.
type InitialGenerator struct {
	Shuffle Shuffler
}

func NewInitialGenerator(shuffle Shuffler) PairingGenerator {
	return &InitialGenerator{Shuffle: shuffle}
}

func (g *InitialGenerator) GetName() string {
	return "Initial"
}

func (g *InitialGenerator) GeneratePairings(params GeneratePairingsParams) []models.Match {
	players := params.Players
	if g.Shuffle != nil {
		players = append([]string(nil), params.Players...)
		g.Shuffle(players)
	}
	return InitialPairing(players, params.FirstMatchID)
}
