package roster

// Roster is the set of riders, plus an optional constructor, a participant
// has in force at a point in time.
type Roster struct {
	RiderIDs      []string
	ConstructorID string
}

// IsEmpty reports whether nothing is rostered. Empty rosters are a normal
// state (participant joined but never saved a team), never an error.
func (r Roster) IsEmpty() bool {
	return len(r.RiderIDs) == 0 && r.ConstructorID == ""
}

// Has reports whether the rider is part of the roster.
func (r Roster) Has(riderID string) bool {
	for _, id := range r.RiderIDs {
		if id == riderID {
			return true
		}
	}
	return false
}
