package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gridrivals/fantasy-motorsport/internal/domain/rider"
	qb "github.com/gridrivals/fantasy-motorsport/internal/platform/querybuilder"
)

type RiderRepository struct {
	db *sqlx.DB
}

func NewRiderRepository(db *sqlx.DB) *RiderRepository {
	return &RiderRepository{db: db}
}

func (r *RiderRepository) List(ctx context.Context) ([]rider.Rider, error) {
	query, args, err := qb.Select("*").From("riders").
		Where(qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select riders query: %w", err)
	}

	var rows []riderTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select riders: %w", err)
	}

	out := make([]rider.Rider, 0, len(rows))
	for _, row := range rows {
		out = append(out, riderFromRow(row))
	}
	return out, nil
}

func (r *RiderRepository) GetByIDs(ctx context.Context, riderIDs []string) ([]rider.Rider, error) {
	if len(riderIDs) == 0 {
		return nil, nil
	}

	ids := make([]any, 0, len(riderIDs))
	for _, id := range riderIDs {
		ids = append(ids, id)
	}
	query, args, err := qb.Select("*").From("riders").
		Where(
			qb.In("public_id", ids),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select riders by ids query: %w", err)
	}

	var rows []riderTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select riders by ids: %w", err)
	}

	out := make([]rider.Rider, 0, len(rows))
	for _, row := range rows {
		out = append(out, riderFromRow(row))
	}
	return out, nil
}

func (r *RiderRepository) UpdatePrices(ctx context.Context, priceByID map[string]int64) error {
	if len(priceByID) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin rider price update tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for riderID, price := range priceByID {
		query, args, err := qb.Update("riders").
			Set("price", price).
			SetExpr("updated_at", "NOW()").
			Where(
				qb.Eq("public_id", riderID),
				qb.IsNull("deleted_at"),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build rider %s price update query: %w", riderID, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("update rider %s price: %w", riderID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit rider price update tx: %w", err)
	}
	return nil
}

func riderFromRow(row riderTableModel) rider.Rider {
	return rider.Rider{
		ID:            row.PublicID,
		Name:          row.Name,
		Team:          row.TeamName,
		Bike:          row.Bike,
		Price:         row.Price,
		InitialPrice:  row.InitialPrice,
		Condition:     row.Condition,
		ConstructorID: row.ConstructorID,
		IsOfficial:    row.IsOfficial,
	}
}
