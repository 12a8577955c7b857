package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gridrivals/fantasy-motorsport/internal/domain/results"
	qb "github.com/gridrivals/fantasy-motorsport/internal/platform/querybuilder"
)

type ResultsRepository struct {
	db *sqlx.DB
}

func NewResultsRepository(db *sqlx.DB) *ResultsRepository {
	return &ResultsRepository{db: db}
}

func (r *ResultsRepository) GetByRace(ctx context.Context, raceID string) (results.RacePoints, error) {
	query, args, err := qb.Select("*").From("race_results").
		Where(qb.Eq("race_public_id", raceID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select race results query: %w", err)
	}

	var rows []raceResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select race results: %w", err)
	}

	out := make(results.RacePoints, len(rows))
	for _, row := range rows {
		out[row.RiderID] = resultFromRow(row)
	}
	return out, nil
}

func (r *ResultsRepository) ListAll(ctx context.Context) (map[string]results.RacePoints, error) {
	query, args, err := qb.Select("*").From("race_results").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select all race results query: %w", err)
	}

	var rows []raceResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select all race results: %w", err)
	}

	out := make(map[string]results.RacePoints)
	for _, row := range rows {
		racePoints, ok := out[row.RaceID]
		if !ok {
			racePoints = make(results.RacePoints)
			out[row.RaceID] = racePoints
		}
		racePoints[row.RiderID] = resultFromRow(row)
	}
	return out, nil
}

func (r *ResultsRepository) UpsertByRace(ctx context.Context, raceID string, points results.RacePoints) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin race results upsert tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// A fresh sync replaces the race wholesale so riders dropped by the feed
	// do not keep stale points.
	if _, err := tx.ExecContext(ctx, `DELETE FROM race_results WHERE race_public_id = $1`, raceID); err != nil {
		return fmt.Errorf("clear race results: %w", err)
	}

	for riderID, pts := range points {
		normalized := pts.Normalize()
		query, args, err := qb.InsertInto("race_results").
			Columns("race_public_id", "rider_public_id", "total_points", "main_points", "sprint_points").
			Values(raceID, riderID, normalized.Total, normalized.Main, normalized.Sprint).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build race result insert query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert race result for rider %s: %w", riderID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit race results upsert tx: %w", err)
	}
	return nil
}

func resultFromRow(row raceResultTableModel) results.RoundPoints {
	return results.RoundPoints{
		Total:  row.TotalPoints,
		Main:   row.MainPoints,
		Sprint: row.SprintPoints,
	}
}
