package race

import (
	"fmt"
	"sort"
	"time"
)

// Race represents one grand prix round of the season. RaceDate is the sole
// past-vs-future oracle; PricesAdjusted marks that the market engine already
// consumed this race's popularity data.
type Race struct {
	ID             string
	Round          int
	GPName         string
	Location       string
	RaceDate       time.Time
	PricesAdjusted bool
}

func (r Race) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("race id is required")
	}
	if r.GPName == "" {
		return fmt.Errorf("race gp name is required")
	}
	if r.RaceDate.IsZero() {
		return fmt.Errorf("race date is required")
	}

	return nil
}

// IsPast reports whether the race has already happened as of now.
func (r Race) IsPast(now time.Time) bool {
	return !r.RaceDate.IsZero() && r.RaceDate.Before(now)
}

// SortChronological orders races ascending by date, with round as the
// secondary key so same-day rounds stay deterministic.
func SortChronological(races []Race) {
	sort.SliceStable(races, func(i, j int) bool {
		if !races[i].RaceDate.Equal(races[j].RaceDate) {
			return races[i].RaceDate.Before(races[j].RaceDate)
		}
		return races[i].Round < races[j].Round
	})
}
