package postgres

import "time"

type raceTableModel struct {
	ID             int64      `db:"id"`
	PublicID       string     `db:"public_id"`
	Round          int        `db:"round"`
	GPName         string     `db:"gp_name"`
	Location       string     `db:"location"`
	RaceDate       time.Time  `db:"race_date"`
	PricesAdjusted bool       `db:"prices_adjusted"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
	DeletedAt      *time.Time `db:"deleted_at"`
}
