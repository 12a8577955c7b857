package cache

import (
	"context"
	"sort"
	"strings"

	"github.com/gridrivals/fantasy-motorsport/internal/domain/constructor"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/race"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/rider"
	basecache "github.com/gridrivals/fantasy-motorsport/internal/platform/cache"
)

// RiderRepository caches the read side of the rider pool. Price writes
// invalidate every rider key since both List and GetByIDs carry prices.
type RiderRepository struct {
	next  rider.Repository
	cache *basecache.Store
}

func NewRiderRepository(next rider.Repository, cache *basecache.Store) *RiderRepository {
	return &RiderRepository{next: next, cache: cache}
}

func (r *RiderRepository) List(ctx context.Context) ([]rider.Rider, error) {
	v, err := r.cache.GetOrLoad(ctx, "rider:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]rider.Rider(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]rider.Rider)
	return append([]rider.Rider(nil), items...), nil
}

func (r *RiderRepository) GetByIDs(ctx context.Context, riderIDs []string) ([]rider.Rider, error) {
	ids := append([]string(nil), riderIDs...)
	sort.Strings(ids)
	key := "rider:ids:" + strings.Join(ids, ",")
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.GetByIDs(ctx, riderIDs)
		if err != nil {
			return nil, err
		}
		return append([]rider.Rider(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]rider.Rider)
	return append([]rider.Rider(nil), items...), nil
}

func (r *RiderRepository) UpdatePrices(ctx context.Context, priceByID map[string]int64) error {
	if err := r.next.UpdatePrices(ctx, priceByID); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "rider:")
	return nil
}

type ConstructorRepository struct {
	next  constructor.Repository
	cache *basecache.Store
}

func NewConstructorRepository(next constructor.Repository, cache *basecache.Store) *ConstructorRepository {
	return &ConstructorRepository{next: next, cache: cache}
}

func (r *ConstructorRepository) List(ctx context.Context) ([]constructor.Constructor, error) {
	v, err := r.cache.GetOrLoad(ctx, "constructor:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]constructor.Constructor(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]constructor.Constructor)
	return append([]constructor.Constructor(nil), items...), nil
}

func (r *ConstructorRepository) UpdatePrices(ctx context.Context, priceByID map[string]int64) error {
	if err := r.next.UpdatePrices(ctx, priceByID); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "constructor:")
	return nil
}

type RaceRepository struct {
	next  race.Repository
	cache *basecache.Store
}

func NewRaceRepository(next race.Repository, cache *basecache.Store) *RaceRepository {
	return &RaceRepository{next: next, cache: cache}
}

func (r *RaceRepository) List(ctx context.Context) ([]race.Race, error) {
	v, err := r.cache.GetOrLoad(ctx, "race:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]race.Race(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]race.Race)
	return append([]race.Race(nil), items...), nil
}

func (r *RaceRepository) GetByID(ctx context.Context, raceID string) (race.Race, bool, error) {
	key := "race:id:" + raceID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, raceID)
		if err != nil {
			return nil, err
		}
		return cachedRaceByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return race.Race{}, false, err
	}

	cached, _ := v.(cachedRaceByID)
	return cached.value, cached.exists, nil
}

func (r *RaceRepository) MarkPricesAdjusted(ctx context.Context, raceIDs []string) error {
	if err := r.next.MarkPricesAdjusted(ctx, raceIDs); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "race:")
	return nil
}

type cachedRaceByID struct {
	value  race.Race
	exists bool
}
