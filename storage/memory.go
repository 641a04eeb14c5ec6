package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/MinoPlay/mexicano/models"
)

type memoryTournamentStore struct {
	mu          sync.RWMutex
	tournaments map[string]*models.Tournament
}

// NewMemoryTournamentStore keeps tournaments in process memory. Records are
// cloned on the way in and out, so callers never share state with the store.
func NewMemoryTournamentStore() TournamentStore {
	return &memoryTournamentStore{tournaments: make(map[string]*models.Tournament)}
}

func (s *memoryTournamentStore) List(ctx context.Context) ([]models.TournamentMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	metas := make([]models.TournamentMeta, 0, len(s.tournaments))
	for _, t := range s.tournaments {
		metas = append(metas, t.Meta())
	}
	SortMetaNewestFirst(metas)
	return metas, nil
}

func (s *memoryTournamentStore) Load(ctx context.Context, date string) (*models.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tournaments[date]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, date)
	}
	return t.Clone(), nil
}

func (s *memoryTournamentStore) Save(ctx context.Context, t *models.Tournament) (*models.Tournament, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tournaments[t.TournamentDate] = t.Clone()
	return t.Clone(), nil
}

func (s *memoryTournamentStore) Delete(ctx context.Context, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tournaments[date]; !ok {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, date)
	}
	delete(s.tournaments, date)
	return nil
}
