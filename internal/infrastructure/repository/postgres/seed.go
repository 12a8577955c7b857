package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gridrivals/fantasy-motorsport/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the starter grid into an empty database. It is a no-op
// once any constructor row exists, so redeploys never clobber live prices.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM constructors WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count constructors for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, c := range memory.SeedConstructors() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO constructors (public_id, name, price, initial_price)
VALUES (:public_id, :name, :price, :initial_price)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":     c.ID,
			"name":          c.Name,
			"price":         c.Price,
			"initial_price": c.InitialPrice,
		})
		if err != nil {
			return fmt.Errorf("bind seed constructor %s query: %w", c.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed constructor %s: %w", c.ID, err)
		}
	}

	for _, rd := range memory.SeedRiders() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO riders (public_id, name, team_name, bike, price, initial_price, condition, constructor_public_id, is_official)
VALUES (:public_id, :name, :team_name, :bike, :price, :initial_price, :condition, :constructor_public_id, :is_official)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":             rd.ID,
			"name":                  rd.Name,
			"team_name":             rd.Team,
			"bike":                  rd.Bike,
			"price":                 rd.Price,
			"initial_price":         rd.InitialPrice,
			"condition":             rd.Condition,
			"constructor_public_id": rd.ConstructorID,
			"is_official":           rd.IsOfficial,
		})
		if err != nil {
			return fmt.Errorf("bind seed rider %s query: %w", rd.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed rider %s: %w", rd.ID, err)
		}
	}

	for _, rc := range memory.SeedRaces() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO races (public_id, round, gp_name, location, race_date, prices_adjusted)
VALUES (:public_id, :round, :gp_name, :location, :race_date, FALSE)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id": rc.ID,
			"round":     rc.Round,
			"gp_name":   rc.GPName,
			"location":  rc.Location,
			"race_date": rc.RaceDate,
		})
		if err != nil {
			return fmt.Errorf("bind seed race %s query: %w", rc.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed race %s: %w", rc.ID, err)
		}
	}

	for _, p := range memory.SeedParticipants() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO participants (public_id, name, joined_at)
VALUES (:public_id, :name, :joined_at)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id": p.ID,
			"name":      p.Name,
			"joined_at": p.JoinedAt,
		})
		if err != nil {
			return fmt.Errorf("bind seed participant %s query: %w", p.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed participant %s: %w", p.ID, err)
		}
	}

	s := memory.SeedSettings()
	if _, err := tx.ExecContext(ctx, `
INSERT INTO league_settings (id, market_deadline)
VALUES (1, $1)
ON CONFLICT (id) DO NOTHING`, s.MarketDeadline); err != nil {
		return fmt.Errorf("seed league settings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
