package constructor

import "fmt"

// Constructor is a team entry selectable alongside riders. It owns riders
// either by explicit constructor id or, for legacy data, by team-name match.
type Constructor struct {
	ID           string
	Name         string
	Price        int64
	InitialPrice int64
}

func (c Constructor) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("constructor id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("constructor name is required")
	}
	if c.Price < 0 {
		return fmt.Errorf("constructor price cannot be negative")
	}

	return nil
}
