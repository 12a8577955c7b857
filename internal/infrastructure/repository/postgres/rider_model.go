package postgres

import "time"

type riderTableModel struct {
	ID            int64      `db:"id"`
	PublicID      string     `db:"public_id"`
	Name          string     `db:"name"`
	TeamName      string     `db:"team_name"`
	Bike          string     `db:"bike"`
	Price         int64      `db:"price"`
	InitialPrice  int64      `db:"initial_price"`
	Condition     string     `db:"condition"`
	ConstructorID string     `db:"constructor_public_id"`
	IsOfficial    bool       `db:"is_official"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
	DeletedAt     *time.Time `db:"deleted_at"`
}
