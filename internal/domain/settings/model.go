package settings

import "time"

// LeagueSettings is the league-wide singleton. MarketDeadline gates roster
// edits; scoring and pricing never consult it.
type LeagueSettings struct {
	MarketDeadline time.Time
}

// MarketOpen reports whether roster edits are currently allowed. A zero
// deadline means the market never closes.
func (s LeagueSettings) MarketOpen(now time.Time) bool {
	return s.MarketDeadline.IsZero() || now.Before(s.MarketDeadline)
}
