package scoring

import (
	"testing"

	"github.com/gridrivals/fantasy-motorsport/internal/domain/constructor"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/results"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/rider"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/roster"
)

func TestScoreRoster_RiderPoints(t *testing.T) {
	rules := roster.Rules{RosterSize: 2, BudgetCap: 1000, HasSprintPoints: true}
	racePoints := results.RacePoints{
		"r1": {Total: 25, Main: 20, Sprint: 5},
	}

	got := ScoreRoster(roster.Roster{RiderIDs: []string{"r1", "r2"}}, racePoints, nil, nil, rules)

	if len(got.RiderScores) != 2 {
		t.Fatalf("expected 2 rider scores, got %d", len(got.RiderScores))
	}
	if got.RiderScores[0].Points != 25 || got.RiderScores[0].MainPoints != 20 || got.RiderScores[0].SprintPoints != 5 {
		t.Fatalf("unexpected scored rider: %+v", got.RiderScores[0])
	}
	// Absent rider scores zero, not an error.
	if got.RiderScores[1].Points != 0 {
		t.Fatalf("expected zero for absent rider, got %+v", got.RiderScores[1])
	}
	if got.Total != 25 {
		t.Fatalf("expected total 25, got %v", got.Total)
	}
}

func TestScoreRoster_NoSprintVariantCollapsesBreakdown(t *testing.T) {
	rules := roster.Rules{RosterSize: 1, HasSprintPoints: false}
	racePoints := results.RacePoints{"r1": {Total: 18}}

	got := ScoreRoster(roster.Roster{RiderIDs: []string{"r1"}}, racePoints, nil, nil, rules)
	if got.RiderScores[0].MainPoints != 18 || got.RiderScores[0].SprintPoints != 0 {
		t.Fatalf("expected collapsed breakdown, got %+v", got.RiderScores[0])
	}
}

func TestScoreRoster_ConstructorBestTwoAverage(t *testing.T) {
	riders := []rider.Rider{
		{ID: "r1", ConstructorID: "c1"},
		{ID: "r2", ConstructorID: "c1"},
		{ID: "r3", ConstructorID: "c1"},
		{ID: "r4", ConstructorID: "c2"},
	}
	constructors := []constructor.Constructor{{ID: "c1", Name: "Alpha"}, {ID: "c2", Name: "Beta"}}
	racePoints := results.RacePoints{
		"r1": {Total: 20},
		"r2": {Total: 15},
		"r3": {Total: 5},
		"r4": {Total: 25},
	}
	rules := roster.Rules{RosterSize: 1, HasConstructors: true}

	got := ScoreRoster(roster.Roster{RiderIDs: []string{"r4"}, ConstructorID: "c1"}, racePoints, riders, constructors, rules)

	if got.Constructor == nil {
		t.Fatal("expected constructor score")
	}
	if got.Constructor.Points != 17.5 {
		t.Fatalf("expected (20+15)/2 = 17.5, got %v", got.Constructor.Points)
	}
	if len(got.Constructor.TopTwoRiderIDs) != 2 || got.Constructor.TopTwoRiderIDs[0] != "r1" || got.Constructor.TopTwoRiderIDs[1] != "r2" {
		t.Fatalf("unexpected top two: %v", got.Constructor.TopTwoRiderIDs)
	}
	if got.Total != 25+17.5 {
		t.Fatalf("expected total 42.5, got %v", got.Total)
	}
}

func TestScoreRoster_ConstructorEdgeCases(t *testing.T) {
	constructors := []constructor.Constructor{{ID: "c1", Name: "Alpha"}}
	rules := roster.Rules{RosterSize: 0, HasConstructors: true}

	t.Run("single scoring rider averages against zero", func(t *testing.T) {
		riders := []rider.Rider{{ID: "r1", ConstructorID: "c1"}}
		got := ScoreRoster(roster.Roster{ConstructorID: "c1"}, results.RacePoints{"r1": {Total: 20}}, riders, constructors, rules)
		if got.Constructor.Points != 10 {
			t.Fatalf("expected 20/2 = 10, got %v", got.Constructor.Points)
		}
	})

	t.Run("constructor with no riders scores zero", func(t *testing.T) {
		got := ScoreRoster(roster.Roster{ConstructorID: "c1"}, results.RacePoints{}, nil, constructors, rules)
		if got.Constructor.Points != 0 {
			t.Fatalf("expected 0, got %v", got.Constructor.Points)
		}
	})

	t.Run("unknown constructor contributes nothing", func(t *testing.T) {
		got := ScoreRoster(roster.Roster{ConstructorID: "ghost"}, results.RacePoints{}, nil, constructors, rules)
		if got.Constructor != nil || got.Total != 0 {
			t.Fatalf("expected neutral result, got %+v", got)
		}
	})
}

func TestBelongsTo_DualMatching(t *testing.T) {
	c := constructor.Constructor{ID: "c1", Name: "Alpha Racing"}

	tests := []struct {
		name string
		r    rider.Rider
		want bool
	}{
		{name: "explicit constructor id", r: rider.Rider{ConstructorID: "c1", Team: "Other"}, want: true},
		{name: "explicit id mismatch ignores team name", r: rider.Rider{ConstructorID: "c2", Team: "Alpha Racing"}, want: false},
		{name: "team-name fallback for legacy rows", r: rider.Rider{Team: "Alpha Racing"}, want: true},
		{name: "no link at all", r: rider.Rider{Team: "Beta Racing"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BelongsTo(tt.r, c); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestScoreRoster_Pure(t *testing.T) {
	riders := []rider.Rider{{ID: "r1", ConstructorID: "c1"}, {ID: "r2", ConstructorID: "c1"}}
	constructors := []constructor.Constructor{{ID: "c1", Name: "Alpha"}}
	racePoints := results.RacePoints{"r1": {Total: 12}, "r2": {Total: 8}}
	rules := roster.Rules{RosterSize: 2, HasConstructors: true}
	r := roster.Roster{RiderIDs: []string{"r1", "r2"}, ConstructorID: "c1"}

	first := ScoreRoster(r, racePoints, riders, constructors, rules)
	second := ScoreRoster(r, racePoints, riders, constructors, rules)

	if first.Total != second.Total || first.Constructor.Points != second.Constructor.Points {
		t.Fatalf("expected identical output on repeated calls: %v vs %v", first, second)
	}
}
