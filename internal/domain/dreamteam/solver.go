package dreamteam

import (
	"sort"

	"github.com/gridrivals/fantasy-motorsport/internal/domain/constructor"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/results"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/rider"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/roster"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/scoring"
)

// Team is the best achievable roster found for one race.
type Team struct {
	RiderIDs      []string
	ConstructorID string
	Score         float64
	Cost          int64
}

// Solve greedily searches for the highest-scoring legal roster for one race
// under the budget and size constraints.
//
// This is a deliberately approximate heuristic, not a true knapsack solver:
// constructor candidates are tried in best-two-average order and rider slots
// fill points-descending while affordable. The result is a local optimum and
// must stay that way; the product surfaces it as a simplified computation.
//
// Returns nil when no combination fills every roster slot within budget.
func Solve(
	racePoints results.RacePoints,
	riders []rider.Rider,
	constructors []constructor.Constructor,
	rules roster.Rules,
) *Team {
	ranked := make([]rider.Rider, len(riders))
	copy(ranked, riders)
	sort.SliceStable(ranked, func(i, j int) bool {
		pi, pj := racePoints.TotalFor(ranked[i].ID), racePoints.TotalFor(ranked[j].ID)
		if pi != pj {
			return pi > pj
		}
		return ranked[i].Price < ranked[j].Price
	})

	if !rules.HasConstructors {
		return fillRiders(ranked, racePoints, rules.BudgetCap, rules.RosterSize, constructor.Constructor{}, 0)
	}

	candidates := make([]constructor.Constructor, len(constructors))
	copy(candidates, constructors)
	sort.SliceStable(candidates, func(i, j int) bool {
		return scoring.BestTwoAverage(candidates[i], racePoints, riders) >
			scoring.BestTwoAverage(candidates[j], racePoints, riders)
	})

	var best *Team
	for _, c := range candidates {
		if c.Price > rules.BudgetCap {
			continue
		}
		team := fillRiders(ranked, racePoints, rules.BudgetCap-c.Price, rules.RosterSize, c,
			scoring.BestTwoAverage(c, racePoints, riders))
		if team == nil {
			continue
		}
		if best == nil || team.Score > best.Score {
			best = team
		}
	}

	return best
}

// fillRiders walks the points-ranked riders, taking each one that still fits
// the remaining budget until the roster is full. Unaffordable riders are
// skipped, not substituted for later.
func fillRiders(
	ranked []rider.Rider,
	racePoints results.RacePoints,
	budget int64,
	slots int,
	c constructor.Constructor,
	constructorScore float64,
) *Team {
	if slots <= 0 {
		return nil
	}

	team := &Team{
		RiderIDs:      make([]string, 0, slots),
		ConstructorID: c.ID,
		Score:         constructorScore,
		Cost:          c.Price,
	}
	remaining := budget
	for _, item := range ranked {
		if len(team.RiderIDs) == slots {
			break
		}
		if item.Price > remaining {
			continue
		}
		team.RiderIDs = append(team.RiderIDs, item.ID)
		team.Score += float64(racePoints.TotalFor(item.ID))
		team.Cost += item.Price
		remaining -= item.Price
	}

	if len(team.RiderIDs) != slots {
		return nil
	}

	return team
}
