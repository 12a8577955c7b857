package results

// RoundPoints holds one rider's raw scored points for a single race,
// split between the main race and the sprint when the sport has one.
type RoundPoints struct {
	Total  int
	Main   int
	Sprint int
}

// Normalize fills Total from the main/sprint split when the ingestion source
// only provided the breakdown.
func (p RoundPoints) Normalize() RoundPoints {
	if p.Total == 0 && (p.Main != 0 || p.Sprint != 0) {
		p.Total = p.Main + p.Sprint
	}
	return p
}

// RacePoints maps rider id to that rider's points for one race. A missing
// rider scores zero, not an error.
type RacePoints map[string]RoundPoints

// TotalFor returns the rider's total points, zero when the rider is absent.
func (rp RacePoints) TotalFor(riderID string) int {
	return rp[riderID].Normalize().Total
}
