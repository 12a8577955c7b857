package memory

import (
	"context"
	"sync"

	"github.com/gridrivals/fantasy-motorsport/internal/domain/rider"
)

type RiderRepository struct {
	mu    sync.RWMutex
	items map[string]rider.Rider
	order []string
}

func NewRiderRepository(seed []rider.Rider) *RiderRepository {
	repo := &RiderRepository{items: make(map[string]rider.Rider, len(seed))}
	for _, item := range seed {
		repo.items[item.ID] = item
		repo.order = append(repo.order, item.ID)
	}
	return repo
}

func (r *RiderRepository) List(_ context.Context) ([]rider.Rider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]rider.Rider, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *RiderRepository) GetByIDs(_ context.Context, riderIDs []string) ([]rider.Rider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]rider.Rider, 0, len(riderIDs))
	for _, id := range riderIDs {
		if item, ok := r.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *RiderRepository) UpdatePrices(_ context.Context, priceByID map[string]int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, price := range priceByID {
		item, ok := r.items[id]
		if !ok {
			continue
		}
		item.Price = price
		r.items[id] = item
	}
	return nil
}

// Upsert is used by admin flows and test setup; InitialPrice is kept from the
// existing row when the rider already exists.
func (r *RiderRepository) Upsert(_ context.Context, item rider.Rider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[item.ID]
	if ok {
		item.InitialPrice = existing.InitialPrice
	} else {
		r.order = append(r.order, item.ID)
	}
	r.items[item.ID] = item
	return nil
}
