package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gridrivals/fantasy-motorsport/internal/domain/constructor"
	qb "github.com/gridrivals/fantasy-motorsport/internal/platform/querybuilder"
)

type ConstructorRepository struct {
	db *sqlx.DB
}

func NewConstructorRepository(db *sqlx.DB) *ConstructorRepository {
	return &ConstructorRepository{db: db}
}

func (r *ConstructorRepository) List(ctx context.Context) ([]constructor.Constructor, error) {
	query, args, err := qb.Select("*").From("constructors").
		Where(qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select constructors query: %w", err)
	}

	var rows []constructorTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select constructors: %w", err)
	}

	out := make([]constructor.Constructor, 0, len(rows))
	for _, row := range rows {
		out = append(out, constructor.Constructor{
			ID:           row.PublicID,
			Name:         row.Name,
			Price:        row.Price,
			InitialPrice: row.InitialPrice,
		})
	}
	return out, nil
}

func (r *ConstructorRepository) UpdatePrices(ctx context.Context, priceByID map[string]int64) error {
	if len(priceByID) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin constructor price update tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for constructorID, price := range priceByID {
		query, args, err := qb.Update("constructors").
			Set("price", price).
			SetExpr("updated_at", "NOW()").
			Where(
				qb.Eq("public_id", constructorID),
				qb.IsNull("deleted_at"),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build constructor %s price update query: %w", constructorID, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("update constructor %s price: %w", constructorID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit constructor price update tx: %w", err)
	}
	return nil
}
