package market

import (
	"sort"
	"time"

	"github.com/gridrivals/fantasy-motorsport/internal/domain/constructor"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/participant"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/race"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/rider"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/roster"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/snapshot"
)

// Popularity tier thresholds, in percent of qualifying participants.
const (
	dominantAbove    = 75.0
	veryPopularAbove = 50.0
	popularAbove     = 25.0
)

// Fixed price deltas per tier, in the sport's native price unit. Decreases
// are distributed in -10 steps until they fund the applied increases.
const (
	deltaDominant    = 30
	deltaVeryPopular = 20
	deltaPopular     = 10
	decreaseStep     = 10
)

// Input is everything the engine reads. All slices are immutable snapshots;
// the engine never writes to storage.
type Input struct {
	Races        []race.Race
	Riders       []rider.Rider
	Constructors []constructor.Constructor
	Participants []participant.Participant
	Snapshots    []snapshot.TeamSnapshot
	Rules        roster.Rules
	Now          time.Time
}

// PriceChange is one entity whose price moved across the processed races.
type PriceChange struct {
	ID       string
	OldPrice int64
	NewPrice int64
}

// Adjustment is the diff the caller must persist: changed prices plus the
// races consumed, to be marked processed in the same transaction.
type Adjustment struct {
	RiderPrices       []PriceChange
	ConstructorPrices []PriceChange
	ProcessedRaceIDs  []string
}

// entity is the tier-bucketing view of a rider or constructor.
type entity struct {
	id          string
	unavailable bool
}

// Run folds the price-adjustment algorithm over every unprocessed past race
// in chronological order, carrying the working price map from one race into
// the next. The order dependency is essential: a rider made expensive by race
// N sits higher in race N+1's decrease pool.
//
// Returns nil when no race is unprocessed. A race with no qualifying
// participants contributes zero deltas but is still marked processed.
//
// Re-running after the caller has persisted the diff and marked the returned
// races is a no-op; re-running without marking them double-applies. The
// PricesAdjusted gate is part of this engine's contract.
func Run(input Input) *Adjustment {
	pending := make([]race.Race, 0, len(input.Races))
	for _, item := range input.Races {
		if item.PricesAdjusted || !item.IsPast(input.Now) {
			continue
		}
		pending = append(pending, item)
	}
	if len(pending) == 0 {
		return nil
	}
	race.SortChronological(pending)

	riderPrices := make(map[string]int64, len(input.Riders))
	riderEntities := make([]entity, 0, len(input.Riders))
	for _, item := range input.Riders {
		riderPrices[item.ID] = item.Price
		riderEntities = append(riderEntities, entity{id: item.ID, unavailable: item.Unavailable()})
	}

	constructorPrices := make(map[string]int64, len(input.Constructors))
	constructorEntities := make([]entity, 0, len(input.Constructors))
	for _, item := range input.Constructors {
		constructorPrices[item.ID] = item.Price
		constructorEntities = append(constructorEntities, entity{id: item.ID})
	}

	out := &Adjustment{ProcessedRaceIDs: make([]string, 0, len(pending))}
	for _, item := range pending {
		riderCounts := make(map[string]int)
		constructorCounts := make(map[string]int)
		qualifying := 0

		for _, p := range input.Participants {
			resolved := roster.ResolveAt(p.ID, item.RaceDate, input.Snapshots)
			if resolved.IsEmpty() {
				continue
			}
			qualifying++
			for _, riderID := range resolved.RiderIDs {
				riderCounts[riderID]++
			}
			if resolved.ConstructorID != "" {
				constructorCounts[resolved.ConstructorID]++
			}
		}

		if qualifying > 0 {
			adjustEntities(riderEntities, riderCounts, qualifying, riderPrices)
			if input.Rules.HasConstructors {
				adjustEntities(constructorEntities, constructorCounts, qualifying, constructorPrices)
			}
		}
		out.ProcessedRaceIDs = append(out.ProcessedRaceIDs, item.ID)
	}

	for _, item := range input.Riders {
		if next := riderPrices[item.ID]; next != item.Price {
			out.RiderPrices = append(out.RiderPrices, PriceChange{ID: item.ID, OldPrice: item.Price, NewPrice: next})
		}
	}
	for _, item := range input.Constructors {
		if next := constructorPrices[item.ID]; next != item.Price {
			out.ConstructorPrices = append(out.ConstructorPrices, PriceChange{ID: item.ID, OldPrice: item.Price, NewPrice: next})
		}
	}

	return out
}

// adjustEntities applies one race's tiered deltas to the working price map.
// Increases go to the dominant/very popular/popular tiers; an equal total is
// taken back from the unpopular tier (or, when empty, the differential tier)
// in -10 round-robin steps across the pool sorted by price descending. The
// total decrease is floored to a multiple of 10; a remainder below 10 is not
// distributed. Prices clamp at zero.
func adjustEntities(entities []entity, counts map[string]int, qualifying int, prices map[string]int64) {
	var unpopular, differential []string
	totalIncrease := 0

	for _, e := range entities {
		percent := float64(counts[e.id]) / float64(qualifying) * 100

		switch {
		case percent > dominantAbove:
			prices[e.id] += deltaDominant
			totalIncrease += deltaDominant
		case percent > veryPopularAbove:
			prices[e.id] += deltaVeryPopular
			totalIncrease += deltaVeryPopular
		case percent > popularAbove:
			prices[e.id] += deltaPopular
			totalIncrease += deltaPopular
		case percent > 0:
			if !e.unavailable {
				differential = append(differential, e.id)
			}
		default:
			if !e.unavailable {
				unpopular = append(unpopular, e.id)
			}
		}
	}

	if totalIncrease == 0 {
		return
	}

	pool := unpopular
	if len(pool) == 0 {
		pool = differential
	}
	if len(pool) == 0 {
		return
	}

	// Most expensive first; equal prices fall back to id order so the
	// round-robin stays deterministic.
	sort.SliceStable(pool, func(i, j int) bool {
		if prices[pool[i]] != prices[pool[j]] {
			return prices[pool[i]] > prices[pool[j]]
		}
		return pool[i] < pool[j]
	})

	steps := totalIncrease / decreaseStep
	for i := 0; i < steps; i++ {
		id := pool[i%len(pool)]
		prices[id] -= decreaseStep
		if prices[id] < 0 {
			prices[id] = 0
		}
	}
}
