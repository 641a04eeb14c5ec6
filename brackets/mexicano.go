package brackets

import "github.com/MinoPlay/mexicano/models"

// MexicanoPairing groups ranked players (best first) by position into fours:
// ranks 1-4 play together, then 5-8 and so on, regardless of shared rank
// values. In each group the best and the worst partner up against the two
// in the middle.
func MexicanoPairing(ranked []models.PlayerStats, firstID int) []models.Match {
	names := make([]string, len(ranked))
	for i, s := range ranked {
		names[i] = s.Name
	}
	return pairQuartets(names, firstID)
}

// MexicanoGenerator pairs the current standings.
type MexicanoGenerator struct{}

func NewMexicanoGenerator() PairingGenerator {
	return &MexicanoGenerator{}
}

func (g *MexicanoGenerator) GetName() string {
	return "Mexicano"
}

func (g *MexicanoGenerator) GeneratePairings(params GeneratePairingsParams) []models.Match {
	return MexicanoPairing(params.Ranked, params.FirstMatchID)
}
