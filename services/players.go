package services

import (
	"fmt"
	"slices"
	"strings"

	"github.com/MinoPlay/mexicano/models"
)

// NormalizePlayers trims every name and checks the list can seed a
// tournament. Names must be non-empty and unique ignoring case, and the
// count must be a supported field size. The returned slice keeps entry order.
func NormalizePlayers(names []string) ([]string, error) {
	if !slices.Contains(models.ValidPlayerCounts, len(names)) {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPlayerCount, len(names))
	}

	players := make([]string, len(names))
	seen := make(map[string]int, len(names))
	for i, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			return nil, fmt.Errorf("%w: position %d", ErrPlayerNameRequired, i+1)
		}
		key := strings.ToLower(name)
		if prev, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: %q at position %d duplicates %q", ErrDuplicatePlayerName, name, i+1, players[prev])
		}
		seen[key] = i
		players[i] = name
	}
	return players, nil
}
