package postgres

import "time"

type settingsTableModel struct {
	ID             int64     `db:"id"`
	MarketDeadline time.Time `db:"market_deadline"`
	UpdatedAt      time.Time `db:"updated_at"`
}
