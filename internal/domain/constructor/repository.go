package constructor

import "context"

type Repository interface {
	List(ctx context.Context) ([]Constructor, error)
	UpdatePrices(ctx context.Context, priceByID map[string]int64) error
}
