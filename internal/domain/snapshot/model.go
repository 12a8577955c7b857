package snapshot

import (
	"fmt"
	"time"
)

// TeamSnapshot is an immutable, append-only record of a participant's roster
// as saved at a point in time. Snapshots are never mutated or deleted; roster
// changes append a new snapshot.
type TeamSnapshot struct {
	ID            string
	ParticipantID string
	RiderIDs      []string
	ConstructorID string
	RaceID        string
	CreatedAt     time.Time
}

func (s TeamSnapshot) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("snapshot id is required")
	}
	if s.ParticipantID == "" {
		return fmt.Errorf("snapshot participant id is required")
	}
	if s.CreatedAt.IsZero() {
		return fmt.Errorf("snapshot created_at is required")
	}

	return nil
}
