package postgres

import "time"

type constructorTableModel struct {
	ID           int64      `db:"id"`
	PublicID     string     `db:"public_id"`
	Name         string     `db:"name"`
	Price        int64      `db:"price"`
	InitialPrice int64      `db:"initial_price"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}
