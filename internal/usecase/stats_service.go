package usecase

import (
	"context"
	"fmt"

	"github.com/gridrivals/fantasy-motorsport/internal/domain/constructor"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/participant"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/results"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/rider"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/roster"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/snapshot"
)

// Hidden-gem qualification: selected by fewer than a quarter of roster-having
// participants while still scoring double digits over the season.
const (
	hiddenGemMaxSelectionPercent = 25.0
	hiddenGemMinPoints           = 10
)

// StatsService derives league-wide statistics: selection popularity, season
// MVP, hidden gem and average roster cost. All read-only folds over the same
// inputs; no shared mutable state.
type StatsService struct {
	participantRepo participant.Repository
	snapshotRepo    snapshot.Repository
	riderRepo       rider.Repository
	constructorRepo constructor.Repository
	resultsRepo     results.Repository
}

type SelectionStat struct {
	ID      string
	Name    string
	Count   int
	Percent float64
}

type MVPStat struct {
	RiderID     string
	Name        string
	TotalPoints int
}

type HiddenGemStat struct {
	RiderID        string
	Name           string
	TotalPoints    int
	Price          int64
	PointsPerPrice float64
}

type LeagueStats struct {
	MostSelectedRider       *SelectionStat
	MostSelectedConstructor *SelectionStat
	MVP                     *MVPStat
	HiddenGem               *HiddenGemStat
	AverageRosterCost       float64
	RosterHavingCount       int
}

func NewStatsService(
	participantRepo participant.Repository,
	snapshotRepo snapshot.Repository,
	riderRepo rider.Repository,
	constructorRepo constructor.Repository,
	resultsRepo results.Repository,
) *StatsService {
	return &StatsService{
		participantRepo: participantRepo,
		snapshotRepo:    snapshotRepo,
		riderRepo:       riderRepo,
		constructorRepo: constructorRepo,
		resultsRepo:     resultsRepo,
	}
}

// ComputeLeagueStats folds the league data into the dashboard statistics.
// Zero participants or zero races yield empty, zero-valued results.
func (s *StatsService) ComputeLeagueStats(ctx context.Context) (LeagueStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.ComputeLeagueStats")
	defer span.End()

	participants, err := s.participantRepo.List(ctx)
	if err != nil {
		return LeagueStats{}, fmt.Errorf("list participants: %w", err)
	}
	snapshots, err := s.snapshotRepo.List(ctx)
	if err != nil {
		return LeagueStats{}, fmt.Errorf("list snapshots: %w", err)
	}
	riders, err := s.riderRepo.List(ctx)
	if err != nil {
		return LeagueStats{}, fmt.Errorf("list riders: %w", err)
	}
	constructors, err := s.constructorRepo.List(ctx)
	if err != nil {
		return LeagueStats{}, fmt.Errorf("list constructors: %w", err)
	}
	allPoints, err := s.resultsRepo.ListAll(ctx)
	if err != nil {
		return LeagueStats{}, fmt.Errorf("list race points: %w", err)
	}

	riderNameByID := make(map[string]string, len(riders))
	riderPriceByID := make(map[string]int64, len(riders))
	for _, item := range riders {
		riderNameByID[item.ID] = item.Name
		riderPriceByID[item.ID] = item.Price
	}
	constructorNameByID := make(map[string]string, len(constructors))
	for _, item := range constructors {
		constructorNameByID[item.ID] = item.Name
	}

	out := LeagueStats{}

	// Selection counts and roster costs over each participant's latest team.
	riderCounts := make(map[string]int)
	constructorCounts := make(map[string]int)
	var totalCost int64
	for _, p := range participants {
		resolved := roster.ResolveLatest(p.ID, snapshots)
		if resolved.IsEmpty() {
			continue
		}
		out.RosterHavingCount++
		for _, riderID := range resolved.RiderIDs {
			riderCounts[riderID]++
		}
		if resolved.ConstructorID != "" {
			constructorCounts[resolved.ConstructorID]++
		}
		totalCost += rosterCost(resolved, riderPriceByID, constructors)
	}

	if out.RosterHavingCount > 0 {
		out.AverageRosterCost = float64(totalCost) / float64(out.RosterHavingCount)
		out.MostSelectedRider = argmaxSelection(riderCounts, riderNameByID, out.RosterHavingCount, riders)
		out.MostSelectedConstructor = argmaxSelectionConstructors(constructorCounts, constructorNameByID, out.RosterHavingCount, constructors)
	}

	// Season MVP: highest summed points across all races.
	seasonPoints := make(map[string]int, len(riders))
	for _, racePoints := range allPoints {
		for riderID := range racePoints {
			seasonPoints[riderID] += racePoints.TotalFor(riderID)
		}
	}
	for _, item := range riders {
		pts := seasonPoints[item.ID]
		if out.MVP == nil || pts > out.MVP.TotalPoints {
			out.MVP = &MVPStat{RiderID: item.ID, Name: item.Name, TotalPoints: pts}
		}
	}

	// Hidden gem: under-selected, double-digit scorer, best value per price.
	if out.RosterHavingCount > 0 {
		for _, item := range riders {
			pts := seasonPoints[item.ID]
			if pts <= hiddenGemMinPoints || item.Price <= 0 {
				continue
			}
			percent := float64(riderCounts[item.ID]) / float64(out.RosterHavingCount) * 100
			if percent >= hiddenGemMaxSelectionPercent {
				continue
			}
			ratio := float64(pts) / float64(item.Price)
			if out.HiddenGem == nil || ratio > out.HiddenGem.PointsPerPrice {
				out.HiddenGem = &HiddenGemStat{
					RiderID:        item.ID,
					Name:           item.Name,
					TotalPoints:    pts,
					Price:          item.Price,
					PointsPerPrice: ratio,
				}
			}
		}
	}

	return out, nil
}

func rosterCost(r roster.Roster, riderPriceByID map[string]int64, constructors []constructor.Constructor) int64 {
	var total int64
	for _, riderID := range r.RiderIDs {
		total += riderPriceByID[riderID]
	}
	if r.ConstructorID != "" {
		for _, item := range constructors {
			if item.ID == r.ConstructorID {
				total += item.Price
				break
			}
		}
	}
	return total
}

// argmaxSelection walks riders in their listed order so equal counts resolve
// deterministically to the first listed entity.
func argmaxSelection(counts map[string]int, names map[string]string, qualifying int, riders []rider.Rider) *SelectionStat {
	var best *SelectionStat
	for _, item := range riders {
		count := counts[item.ID]
		if count == 0 {
			continue
		}
		if best == nil || count > best.Count {
			best = &SelectionStat{
				ID:      item.ID,
				Name:    names[item.ID],
				Count:   count,
				Percent: float64(count) / float64(qualifying) * 100,
			}
		}
	}
	return best
}

func argmaxSelectionConstructors(counts map[string]int, names map[string]string, qualifying int, constructors []constructor.Constructor) *SelectionStat {
	var best *SelectionStat
	for _, item := range constructors {
		count := counts[item.ID]
		if count == 0 {
			continue
		}
		if best == nil || count > best.Count {
			best = &SelectionStat{
				ID:      item.ID,
				Name:    names[item.ID],
				Count:   count,
				Percent: float64(count) / float64(qualifying) * 100,
			}
		}
	}
	return best
}
