package brackets

import (
	"math/rand/v2"
	"sync"
)

// Shuffler permutes a player list in place.
type Shuffler func(players []string)

// NewSeededShuffler returns a Shuffler whose sequence of permutations is
// fully determined by seed.
func NewSeededShuffler(seed uint64) Shuffler {
	var mu sync.Mutex
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return func(players []string) {
		mu.Lock()
		defer mu.Unlock()
		rng.Shuffle(len(players), func(i, j int) {
			players[i], players[j] = players[j], players[i]
		})
	}
}
