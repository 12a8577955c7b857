package rider

import "context"

// Repository describes rider persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Rider, error)
	GetByIDs(ctx context.Context, riderIDs []string) ([]Rider, error)
	UpdatePrices(ctx context.Context, priceByID map[string]int64) error
}
