package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gridrivals/fantasy-motorsport/internal/domain/race"
	qb "github.com/gridrivals/fantasy-motorsport/internal/platform/querybuilder"
)

type RaceRepository struct {
	db *sqlx.DB
}

func NewRaceRepository(db *sqlx.DB) *RaceRepository {
	return &RaceRepository{db: db}
}

func (r *RaceRepository) List(ctx context.Context) ([]race.Race, error) {
	query, args, err := qb.Select("*").From("races").
		Where(qb.IsNull("deleted_at")).
		OrderBy("race_date", "round", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select races query: %w", err)
	}

	var rows []raceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select races: %w", err)
	}

	out := make([]race.Race, 0, len(rows))
	for _, row := range rows {
		out = append(out, raceFromRow(row))
	}
	return out, nil
}

func (r *RaceRepository) GetByID(ctx context.Context, raceID string) (race.Race, bool, error) {
	query, args, err := qb.Select("*").From("races").
		Where(
			qb.Eq("public_id", raceID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return race.Race{}, false, fmt.Errorf("build get race by id query: %w", err)
	}

	var row raceTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return race.Race{}, false, nil
		}
		return race.Race{}, false, fmt.Errorf("get race by id: %w", err)
	}

	return raceFromRow(row), true, nil
}

func (r *RaceRepository) MarkPricesAdjusted(ctx context.Context, raceIDs []string) error {
	if len(raceIDs) == 0 {
		return nil
	}

	ids := make([]any, 0, len(raceIDs))
	for _, id := range raceIDs {
		ids = append(ids, id)
	}
	query, args, err := qb.Update("races").
		Set("prices_adjusted", true).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.In("public_id", ids),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build mark races prices adjusted query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("mark races prices adjusted: %w", err)
	}
	return nil
}

func raceFromRow(row raceTableModel) race.Race {
	return race.Race{
		ID:             row.PublicID,
		Round:          row.Round,
		GPName:         row.GPName,
		Location:       row.Location,
		RaceDate:       row.RaceDate,
		PricesAdjusted: row.PricesAdjusted,
	}
}
