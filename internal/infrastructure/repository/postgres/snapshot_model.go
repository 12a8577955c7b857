package postgres

import (
	"time"

	"github.com/lib/pq"
)

type snapshotTableModel struct {
	ID            int64          `db:"id"`
	PublicID      string         `db:"public_id"`
	ParticipantID string         `db:"participant_public_id"`
	RiderIDs      pq.StringArray `db:"rider_public_ids"`
	ConstructorID string         `db:"constructor_public_id"`
	RaceID        string         `db:"race_public_id"`
	CreatedAt     time.Time      `db:"created_at"`
}

type snapshotInsertModel struct {
	PublicID      string         `db:"public_id"`
	ParticipantID string         `db:"participant_public_id"`
	RiderIDs      pq.StringArray `db:"rider_public_ids"`
	ConstructorID string         `db:"constructor_public_id"`
	RaceID        string         `db:"race_public_id"`
	CreatedAt     time.Time      `db:"created_at"`
}
