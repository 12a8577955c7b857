package scoring

import (
	"sort"

	"github.com/gridrivals/fantasy-motorsport/internal/domain/constructor"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/results"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/rider"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/roster"
)

// RiderScore is one rostered rider's contribution for a race.
type RiderScore struct {
	RiderID      string
	Points       int
	MainPoints   int
	SprintPoints int
}

// ConstructorScore is the constructor contribution: the average of its two
// highest-scoring riders' points. Points stays fractional; display layers
// round.
type ConstructorScore struct {
	ConstructorID string
	Points        float64
	TopTwoRiderIDs []string
}

// Breakdown is the full scored roster for one race.
type Breakdown struct {
	RiderScores []RiderScore
	Constructor *ConstructorScore
	Total       float64
}

// BelongsTo resolves rider-to-constructor ownership with two strategies tried
// in order: the explicit ConstructorID link, then team-name equality for
// legacy rows that predate the link. The fallback is a compatibility rule,
// not a bug.
func BelongsTo(r rider.Rider, c constructor.Constructor) bool {
	if r.ConstructorID != "" {
		return r.ConstructorID == c.ID
	}
	return r.Team == c.Name
}

// ScoreRoster computes every rostered rider's contribution and, when the
// rules enable constructors and one is rostered, the constructor best-two
// average. Unknown rider ids and absent race points degrade to zero
// contributions; the function never fails.
func ScoreRoster(
	r roster.Roster,
	racePoints results.RacePoints,
	riders []rider.Rider,
	constructors []constructor.Constructor,
	rules roster.Rules,
) Breakdown {
	out := Breakdown{RiderScores: make([]RiderScore, 0, len(r.RiderIDs))}

	for _, riderID := range r.RiderIDs {
		pts := racePoints[riderID].Normalize()
		score := RiderScore{
			RiderID:      riderID,
			Points:       pts.Total,
			MainPoints:   pts.Main,
			SprintPoints: pts.Sprint,
		}
		if !rules.HasSprintPoints {
			score.MainPoints = pts.Total
			score.SprintPoints = 0
		}
		out.RiderScores = append(out.RiderScores, score)
		out.Total += float64(score.Points)
	}

	if rules.HasConstructors && r.ConstructorID != "" {
		for _, c := range constructors {
			if c.ID != r.ConstructorID {
				continue
			}
			score := scoreConstructor(c, racePoints, riders)
			out.Constructor = &score
			out.Total += score.Points
			break
		}
	}

	return out
}

// scoreConstructor applies the best-two rule: collect every owned rider's
// points, sort descending, average the top two. A missing second rider counts
// as zero; a constructor with no scoring riders scores zero.
func scoreConstructor(c constructor.Constructor, racePoints results.RacePoints, riders []rider.Rider) ConstructorScore {
	type ownedScore struct {
		riderID string
		points  int
	}

	owned := make([]ownedScore, 0, 4)
	for _, item := range riders {
		if !BelongsTo(item, c) {
			continue
		}
		owned = append(owned, ownedScore{riderID: item.ID, points: racePoints.TotalFor(item.ID)})
	}

	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].points > owned[j].points
	})

	score := ConstructorScore{ConstructorID: c.ID}
	if len(owned) == 0 {
		return score
	}

	top := owned[0].points
	second := 0
	score.TopTwoRiderIDs = []string{owned[0].riderID}
	if len(owned) > 1 {
		second = owned[1].points
		score.TopTwoRiderIDs = append(score.TopTwoRiderIDs, owned[1].riderID)
	}

	score.Points = float64(top+second) / 2
	return score
}

// BestTwoAverage is the constructor rule on its own, used by the dream-team
// solver when ranking constructor candidates.
func BestTwoAverage(c constructor.Constructor, racePoints results.RacePoints, riders []rider.Rider) float64 {
	return scoreConstructor(c, racePoints, riders).Points
}
