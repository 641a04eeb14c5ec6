package brackets

import (
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MinoPlay/mexicano/models"
)

func numberedPlayers(n int) []string {
	players := make([]string, n)
	for i := range players {
		players[i] = fmt.Sprintf("P%d", i+1)
	}
	return players
}

func fakePlayers(t *testing.T, n int) []string {
	t.Helper()
	faker := gofakeit.New(uint64(n))
	seen := make(map[string]bool, n)
	players := make([]string, 0, n)
	for len(players) < n {
		name := faker.Name()
		if seen[name] {
			continue
		}
		seen[name] = true
		players = append(players, name)
	}
	return players
}

func rankedFrom(names []string) []models.PlayerStats {
	ranked := make([]models.PlayerStats, len(names))
	for i, name := range names {
		ranked[i] = models.PlayerStats{Name: name, Rank: i + 1}
	}
	return ranked
}

func assertPartition(t *testing.T, players []string, matches []models.Match) {
	t.Helper()
	require.Len(t, matches, len(players)/4)

	seen := make(map[string]int, len(players))
	for _, m := range matches {
		inMatch := make(map[string]bool, 4)
		for _, p := range m.Players() {
			assert.False(t, inMatch[p], "player %q appears twice in match %d", p, m.ID)
			inMatch[p] = true
			seen[p]++
		}
	}
	require.Len(t, seen, len(players))
	for _, p := range players {
		assert.Equal(t, 1, seen[p], "player %q", p)
	}
}

func TestPairingsPartitionEveryValidFieldSize(t *testing.T) {
	for _, n := range models.ValidPlayerCounts {
		t.Run(fmt.Sprintf("%d players", n), func(t *testing.T) {
			players := fakePlayers(t, n)

			assertPartition(t, players, InitialPairing(players, 1))
			assertPartition(t, players, MexicanoPairing(rankedFrom(players), 1))
		})
	}
}

func TestInitialPairing_EntryOrder(t *testing.T) {
	matches := InitialPairing(numberedPlayers(8), 1)

	require.Len(t, matches, 2)
	assert.Equal(t, models.Match{ID: 1, Team1Player1: "P1", Team1Player2: "P4", Team2Player1: "P2", Team2Player2: "P3"}, matches[0])
	assert.Equal(t, models.Match{ID: 2, Team1Player1: "P5", Team1Player2: "P8", Team2Player1: "P6", Team2Player2: "P7"}, matches[1])
}

func TestMexicanoPairing_BestAndWorstAgainstMiddle(t *testing.T) {
	matches := MexicanoPairing(rankedFrom(numberedPlayers(8)), 1)

	require.Len(t, matches, 2)
	assert.Equal(t, [2]string{"P1", "P4"}, matches[0].TeamPlayers(models.Team1))
	assert.Equal(t, [2]string{"P2", "P3"}, matches[0].TeamPlayers(models.Team2))
	assert.Equal(t, [2]string{"P5", "P8"}, matches[1].TeamPlayers(models.Team1))
	assert.Equal(t, [2]string{"P6", "P7"}, matches[1].TeamPlayers(models.Team2))
}

func TestMexicanoPairing_GroupsByPositionNotRankValue(t *testing.T) {
	ranked := rankedFrom(numberedPlayers(8))
	// P4 and P5 share rank 4 but sit in different quartets.
	ranked[4].Rank = 4

	matches := MexicanoPairing(ranked, 1)
	assert.Contains(t, matches[0].Players(), "P4")
	assert.Contains(t, matches[1].Players(), "P5")
}

func TestPairingIDsContinueFromFirstID(t *testing.T) {
	matches := MexicanoPairing(rankedFrom(numberedPlayers(16)), 13)

	ids := make([]int, len(matches))
	for i, m := range matches {
		ids[i] = m.ID
		assert.Nil(t, m.Team1Score)
		assert.Nil(t, m.Team2Score)
	}
	assert.Equal(t, []int{13, 14, 15, 16}, ids)
}

func TestInitialGenerator_ShuffleIsSeededAndLeavesInputAlone(t *testing.T) {
	players := numberedPlayers(12)
	original := append([]string(nil), players...)
	params := GeneratePairingsParams{Players: players, FirstMatchID: 1}

	first := NewInitialGenerator(NewSeededShuffler(42)).GeneratePairings(params)
	second := NewInitialGenerator(NewSeededShuffler(42)).GeneratePairings(params)

	assert.Equal(t, first, second, "same seed must give the same round")
	assert.Equal(t, original, players, "declared order must not change")
	assertPartition(t, players, first)
}

func TestInitialGenerator_WithoutShuffleUsesEntryOrder(t *testing.T) {
	players := numberedPlayers(8)
	g := NewInitialGenerator(nil)

	assert.Equal(t, "Initial", g.GetName())
	assert.Equal(t, InitialPairing(players, 5), g.GeneratePairings(GeneratePairingsParams{Players: players, FirstMatchID: 5}))
}

func TestMexicanoGenerator(t *testing.T) {
	g := NewMexicanoGenerator()
	players := numberedPlayers(8)
	ranked := rankedFrom(players)

	assert.Equal(t, "Mexicano", g.GetName())
	got := g.GeneratePairings(GeneratePairingsParams{Ranked: ranked, FirstMatchID: 3})
	assert.Equal(t, MexicanoPairing(ranked, 3), got)
	assert.Equal(t, models.Match{ID: 3, Team1Player1: "P1", Team1Player2: "P4", Team2Player1: "P2", Team2Player2: "P3"}, got[0])
	assert.Empty(t, g.GeneratePairings(GeneratePairingsParams{Players: players, FirstMatchID: 3}), "declared entry order is ignored")
}
