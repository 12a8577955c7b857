package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gridrivals/fantasy-motorsport/internal/domain/settings"
	qb "github.com/gridrivals/fantasy-motorsport/internal/platform/querybuilder"
)

// SettingsRepository reads and writes the single league settings row.
type SettingsRepository struct {
	db *sqlx.DB
}

func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Get(ctx context.Context) (settings.LeagueSettings, error) {
	query, args, err := qb.Select("*").From("league_settings").
		OrderBy("id").
		Limit(1).
		ToSQL()
	if err != nil {
		return settings.LeagueSettings{}, fmt.Errorf("build select league settings query: %w", err)
	}

	var row settingsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return settings.LeagueSettings{}, nil
		}
		return settings.LeagueSettings{}, fmt.Errorf("get league settings: %w", err)
	}

	return settings.LeagueSettings{MarketDeadline: row.MarketDeadline}, nil
}

func (r *SettingsRepository) Update(ctx context.Context, item settings.LeagueSettings) error {
	query, args, err := qb.InsertInto("league_settings").
		Columns("id", "market_deadline").
		Values(int64(1), item.MarketDeadline).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
    market_deadline = EXCLUDED.market_deadline,
    updated_at = NOW()`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build league settings upsert query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert league settings: %w", err)
	}
	return nil
}
