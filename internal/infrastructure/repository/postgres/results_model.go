package postgres

import "time"

type raceResultTableModel struct {
	ID           int64     `db:"id"`
	RaceID       string    `db:"race_public_id"`
	RiderID      string    `db:"rider_public_id"`
	TotalPoints  int       `db:"total_points"`
	MainPoints   int       `db:"main_points"`
	SprintPoints int       `db:"sprint_points"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
