package settings

import "context"

type Repository interface {
	Get(ctx context.Context) (LeagueSettings, error)
	Update(ctx context.Context, item LeagueSettings) error
}
