package memory

import (
	"context"
	"sync"

	"github.com/gridrivals/fantasy-motorsport/internal/domain/constructor"
)

type ConstructorRepository struct {
	mu    sync.RWMutex
	items map[string]constructor.Constructor
	order []string
}

func NewConstructorRepository(seed []constructor.Constructor) *ConstructorRepository {
	repo := &ConstructorRepository{items: make(map[string]constructor.Constructor, len(seed))}
	for _, item := range seed {
		repo.items[item.ID] = item
		repo.order = append(repo.order, item.ID)
	}
	return repo
}

func (r *ConstructorRepository) List(_ context.Context) ([]constructor.Constructor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]constructor.Constructor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *ConstructorRepository) UpdatePrices(_ context.Context, priceByID map[string]int64) error {
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
