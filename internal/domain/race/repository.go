package race

import "context"

type Repository interface {
	List(ctx context.Context) ([]Race, error)
	GetByID(ctx context.Context, raceID string) (Race, bool, error)
	MarkPricesAdjusted(ctx context.Context, raceIDs []string) error
}
