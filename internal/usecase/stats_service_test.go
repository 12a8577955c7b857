package usecase

import (
	"testing"
	"time"

	"github.com/gridrivals/fantasy-motorsport/internal/domain/constructor"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/participant"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/results"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/rider"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/snapshot"
	"github.com/gridrivals/fantasy-motorsport/internal/infrastructure/repository/memory"
)

func TestStatsService_ComputeLeagueStats(t *testing.T) {
	savedAt := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	riders := []rider.Rider{
		{ID: "rd-star", Name: "Star Rider", Price: 300, InitialPrice: 300},
		{ID: "rd-bench", Name: "Bench Rider", Price: 100, InitialPrice: 100},
		{ID: "rd-gem", Name: "Gem Rider", Price: 50, InitialPrice: 50},
	}
	constructors := []constructor.Constructor{
		{ID: "ct-a", Name: "Team A", Price: 150, InitialPrice: 150},
		{ID: "ct-b", Name: "Team B", Price: 120, InitialPrice: 120},
	}
	participants := []participant.Participant{
		{ID: "p-1", Name: "One"}, {ID: "p-2", Name: "Two"},
		{ID: "p-3", Name: "Three"}, {ID: "p-4", Name: "Four"},
	}
	snapshots := []snapshot.TeamSnapshot{
		{ID: "sn-1", ParticipantID: "p-1", RiderIDs: []string{"rd-star"}, ConstructorID: "ct-a", CreatedAt: savedAt},
		{ID: "sn-2", ParticipantID: "p-2", RiderIDs: []string{"rd-star"}, ConstructorID: "ct-a", CreatedAt: savedAt},
		{ID: "sn-3", ParticipantID: "p-3", RiderIDs: []string{"rd-star"}, ConstructorID: "ct-b", CreatedAt: savedAt},
		{ID: "sn-4", ParticipantID: "p-4", RiderIDs: []string{"rd-bench"}, ConstructorID: "ct-a", CreatedAt: savedAt},
	}
	allPoints := map[string]results.RacePoints{
		"r-1": {
			"rd-star": {Main: 25, Total: 25},
			"rd-gem":  {Main: 10, Total: 10},
		},
		"r-2": {
			"rd-star":  {Main: 15, Total: 15},
			"rd-gem":   {Main: 5, Total: 5},
			"rd-bench": {Main: 12, Total: 12},
		},
	}

	service := NewStatsService(
		memory.NewParticipantRepository(participants),
		memory.NewSnapshotRepository(snapshots),
		memory.NewRiderRepository(riders),
		memory.NewConstructorRepository(constructors),
		memory.NewResultsRepository(allPoints),
	)

	stats, err := service.ComputeLeagueStats(t.Context())
	if err != nil {
		t.Fatalf("compute league stats failed: %v", err)
	}

	if stats.RosterHavingCount != 4 {
		t.Fatalf("roster-having count: got=%d want=4", stats.RosterHavingCount)
	}

	if stats.MostSelectedRider == nil {
		t.Fatalf("expected a most-selected rider")
	}
	if stats.MostSelectedRider.ID != "rd-star" || stats.MostSelectedRider.Count != 3 {
		t.Fatalf("most-selected rider: got=%+v", stats.MostSelectedRider)
	}
	if stats.MostSelectedRider.Percent != 75 {
		t.Fatalf("most-selected rider percent: got=%v want=75", stats.MostSelectedRider.Percent)
	}

	if stats.MostSelectedConstructor == nil || stats.MostSelectedConstructor.ID != "ct-a" {
		t.Fatalf("most-selected constructor: got=%+v", stats.MostSelectedConstructor)
	}

	// Star rider sums 25+15 across the two races.
	if stats.MVP == nil || stats.MVP.RiderID != "rd-star" || stats.MVP.TotalPoints != 40 {
		t.Fatalf("mvp: got=%+v", stats.MVP)
	}

	// Gem rider: never selected, 15 season points, best points per price.
	// Bench rider also scores double digits but sits at exactly 25% selection.
	if stats.HiddenGem == nil || stats.HiddenGem.RiderID != "rd-gem" {
		t.Fatalf("hidden gem: got=%+v", stats.HiddenGem)
	}
	if stats.HiddenGem.TotalPoints != 15 {
		t.Fatalf("hidden gem points: got=%d want=15", stats.HiddenGem.TotalPoints)
	}

	// Rosters cost 450, 450, 420 and 250.
	if stats.AverageRosterCost != 392.5 {
		t.Fatalf("average roster cost: got=%v want=392.5", stats.AverageRosterCost)
	}
}

func TestStatsService_ComputeLeagueStats_EmptyLeague(t *testing.T) {
	service := NewStatsService(
		memory.NewParticipantRepository(nil),
		memory.NewSnapshotRepository(nil),
		memory.NewRiderRepository(nil),
		memory.NewConstructorRepository(nil),
		memory.NewResultsRepository(nil),
	)

	stats, err := service.ComputeLeagueStats(t.Context())
	if err != nil {
		t.Fatalf("compute league stats failed: %v", err)
	}
	if stats.RosterHavingCount != 0 || stats.MostSelectedRider != nil || stats.MVP != nil || stats.HiddenGem != nil {
		t.Fatalf("expected zero-valued stats, got %+v", stats)
	}
	if stats.AverageRosterCost != 0 {
		t.Fatalf("average roster cost: got=%v want=0", stats.AverageRosterCost)
	}
}
