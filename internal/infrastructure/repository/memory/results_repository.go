package memory

import (
	"context"
	"sync"

	"github.com/gridrivals/fantasy-motorsport/internal/domain/results"
)

type ResultsRepository struct {
	mu     sync.RWMutex
	byRace map[string]results.RacePoints
}

func NewResultsRepository(seed map[string]results.RacePoints) *ResultsRepository {
	repo := &ResultsRepository{byRace: make(map[string]results.RacePoints, len(seed))}
	for raceID, points := range seed {
		repo.byRace[raceID] = cloneRacePoints(points)
	}
	return repo
}

func (r *ResultsRepository) GetByRace(_ context.Context, raceID string) (results.RacePoints, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return cloneRacePoints(r.byRace[raceID]), nil
}

func (r *ResultsRepository) ListAll(_ context.Context) (map[string]results.RacePoints, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]results.RacePoints, len(r.byRace))
	for raceID, points := range r.byRace {
		out[raceID] = cloneRacePoints(points)
	}
	return out, nil
}

func (r *ResultsRepository) UpsertByRace(_ context.Context, raceID string, points results.RacePoints) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byRace[raceID] = cloneRacePoints(points)
	return nil
}

func cloneRacePoints(points results.RacePoints) results.RacePoints {
	if points == nil {
		return nil
	}
	out := make(results.RacePoints, len(points))
	for riderID, pts := range points {
		out[riderID] = pts
	}
	return out
}
