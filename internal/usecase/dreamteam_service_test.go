package usecase

import (
	"errors"
	"testing"

	"github.com/gridrivals/fantasy-motorsport/internal/domain/results"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/roster"
	"github.com/gridrivals/fantasy-motorsport/internal/infrastructure/repository/memory"
)

func newDreamTeamService(allPoints map[string]results.RacePoints) *DreamTeamService {
	return NewDreamTeamService(
		memory.NewRaceRepository(memory.SeedRaces()),
		memory.NewRiderRepository(memory.SeedRiders()),
		memory.NewConstructorRepository(memory.SeedConstructors()),
		memory.NewResultsRepository(allPoints),
		roster.DefaultRules(),
	)
}

func TestDreamTeamService_Compute_ReturnsLegalTeam(t *testing.T) {
	service := newDreamTeamService(map[string]results.RacePoints{
		"rc-01": {
			"rdr-09": {Main: 25, Total: 25},
			"rdr-10": {Main: 20, Total: 20},
			"rdr-19": {Main: 16, Total: 16},
			"rdr-20": {Main: 13, Total: 13},
			"rdr-01": {Main: 11, Total: 11},
		},
	})

	team, err := service.Compute(t.Context(), "rc-01")
	if err != nil {
		t.Fatalf("compute dream team failed: %v", err)
	}
	if team == nil {
		t.Fatalf("expected a dream team for scored race")
	}

	rules := roster.DefaultRules()
	if len(team.RiderIDs) != rules.RosterSize {
		t.Fatalf("rider slots: got=%d want=%d", len(team.RiderIDs), rules.RosterSize)
	}
	if team.ConstructorID == "" {
		t.Fatalf("expected a constructor on the dream team")
	}
	if team.Cost > rules.BudgetCap {
		t.Fatalf("dream team over budget: cost=%d cap=%d", team.Cost, rules.BudgetCap)
	}
	if team.Score <= 0 {
		t.Fatalf("expected a positive score, got %v", team.Score)
	}
}

func TestDreamTeamService_Compute_UnknownRace(t *testing.T) {
	service := newDreamTeamService(nil)

	_, err := service.Compute(t.Context(), "rc-99")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDreamTeamService_Compute_UnscoredRaceStillSolves(t *testing.T) {
	service := newDreamTeamService(nil)

	team, err := service.Compute(t.Context(), "rc-02")
	if err != nil {
		t.Fatalf("compute dream team failed: %v", err)
	}
	// With no results every rider scores zero; the solver still fills a legal
	// roster, it just carries a zero total.
	if team == nil {
		t.Fatalf("expected a team even without results")
	}
	if team.Score != 0 {
		t.Fatalf("expected zero score without results, got %v", team.Score)
	}
}
