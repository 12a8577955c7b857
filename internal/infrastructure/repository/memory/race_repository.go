package memory

import (
	"context"
	"sync"

	"github.com/gridrivals/fantasy-motorsport/internal/domain/race"
)

type RaceRepository struct {
	mu    sync.RWMutex
	items map[string]race.Race
	order []string
}

func NewRaceRepository(seed []race.Race) *RaceRepository {
	repo := &RaceRepository{items: make(map[string]race.Race, len(seed))}
	for _, item := range seed {
		repo.items[item.ID] = item
		repo.order = append(repo.order, item.ID)
	}
	return repo
}

func (r *RaceRepository) List(_ context.Context) ([]race.Race, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]race.Race, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *RaceRepository) GetByID(_ context.Context, raceID string) (race.Race, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[raceID]
	return item, ok, nil
}

func (r *RaceRepository) MarkPricesAdjusted(_ context.Context, raceIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range raceIDs {
		item, ok := r.items[id]
		if !ok {
			continue
		}
		item.PricesAdjusted = true
		r.items[id] = item
	}
	return nil
}
