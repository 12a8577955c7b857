package participant

import (
	"fmt"
	"time"
)

// Participant is a league member who saves team snapshots over the season.
type Participant struct {
	ID       string
	Name     string
	JoinedAt time.Time
}

func (p Participant) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("participant id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("participant name is required")
	}

	return nil
}
