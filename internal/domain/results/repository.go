package results

import "context"

type Repository interface {
	GetByRace(ctx context.Context, raceID string) (RacePoints, error)
	ListAll(ctx context.Context) (map[string]RacePoints, error)
	UpsertByRace(ctx context.Context, raceID string, points RacePoints) error
}
