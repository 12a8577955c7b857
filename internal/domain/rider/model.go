package rider

import "fmt"

// Rider is a selectable competitor in the league pool.
type Rider struct {
	ID            string
	Name          string
	Team          string
	Bike          string
	Price         int64
	InitialPrice  int64
	Condition     string
	ConstructorID string
	IsOfficial    bool
}

// Unavailable reports whether the rider carries an active condition flag
// (injury or other unavailability). Unavailable riders are kept out of the
// market decrease pools.
func (r Rider) Unavailable() bool {
	return r.Condition != ""
}

func (r Rider) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("rider id is required")
	}
	if r.Name == "" {
		return fmt.Errorf("rider name is required")
	}
	if r.Price < 0 {
		return fmt.Errorf("rider price cannot be negative")
	}
	if r.InitialPrice < 0 {
		return fmt.Errorf("rider initial price cannot be negative")
	}

	return nil
}
