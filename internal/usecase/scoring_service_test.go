package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/gridrivals/fantasy-motorsport/internal/domain/constructor"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/participant"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/race"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/results"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/rider"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/roster"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/snapshot"
	"github.com/gridrivals/fantasy-motorsport/internal/infrastructure/repository/memory"
)

// scoringFixture is a minimal three-rider league with one finished race.
type scoringFixture struct {
	participants []participant.Participant
	races        []race.Race
	riders       []rider.Rider
	constructors []constructor.Constructor
	snapshots    []snapshot.TeamSnapshot
	results      map[string]results.RacePoints
}

func newScoringFixture() scoringFixture {
	raceDate := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
	return scoringFixture{
		participants: []participant.Participant{
			{ID: "p-1", Name: "Alpha", JoinedAt: raceDate.Add(-30 * 24 * time.Hour)},
			{ID: "p-2", Name: "Bravo", JoinedAt: raceDate.Add(-29 * 24 * time.Hour)},
			{ID: "p-3", Name: "Charlie", JoinedAt: raceDate.Add(-28 * 24 * time.Hour)},
		},
		races: []race.Race{
			{ID: "r-1", Round: 1, GPName: "Opening GP", RaceDate: raceDate},
		},
		riders: []rider.Rider{
			{ID: "rd-1", Name: "Rider One", Price: 100, InitialPrice: 100, ConstructorID: "ct-1"},
			{ID: "rd-2", Name: "Rider Two", Price: 90, InitialPrice: 90, ConstructorID: "ct-1"},
			{ID: "rd-3", Name: "Rider Three", Price: 80, InitialPrice: 80, ConstructorID: "ct-1"},
			{ID: "rd-4", Name: "Rider Four", Price: 70, InitialPrice: 70, ConstructorID: "ct-2"},
		},
		constructors: []constructor.Constructor{
			{ID: "ct-1", Name: "Team One", Price: 120, InitialPrice: 120},
			{ID: "ct-2", Name: "Team Two", Price: 100, InitialPrice: 100},
		},
		snapshots: []snapshot.TeamSnapshot{
			{
				ID:            "sn-1",
				ParticipantID: "p-1",
				RiderIDs:      []string{"rd-1", "rd-2", "rd-3", "rd-4"},
				ConstructorID: "ct-1",
				CreatedAt:     raceDate.Add(-time.Hour),
			},
			{
				ID:            "sn-2",
				ParticipantID: "p-2",
				RiderIDs:      []string{"rd-4", "rd-3", "rd-2", "rd-1"},
				ConstructorID: "ct-1",
				CreatedAt:     raceDate.Add(-time.Hour),
			},
		},
		results: map[string]results.RacePoints{
			"r-1": {
				"rd-1": {Main: 20, Total: 20},
				"rd-2": {Main: 15, Total: 15},
				"rd-3": {Main: 5, Total: 5},
			},
		},
	}
}

func newScoringService(fx scoringFixture) *ScoringService {
	return NewScoringService(
		memory.NewParticipantRepository(fx.participants),
		memory.NewRaceRepository(fx.races),
		memory.NewSnapshotRepository(fx.snapshots),
		memory.NewRiderRepository(fx.riders),
		memory.NewConstructorRepository(fx.constructors),
		memory.NewResultsRepository(fx.results),
		roster.DefaultRules(),
		nil,
	)
}

func TestScoringService_ScoreParticipantRace_ConstructorBestTwoAverage(t *testing.T) {
	service := newScoringService(newScoringFixture())

	breakdown, err := service.ScoreParticipantRace(t.Context(), "p-1", "r-1")
	if err != nil {
		t.Fatalf("score participant race failed: %v", err)
	}

	if breakdown.Breakdown.Constructor == nil {
		t.Fatalf("expected constructor score for rostered constructor")
	}
	// Constructor riders scored {20, 15, 5}; best-two average is 17.5.
	if got := breakdown.Breakdown.Constructor.Points; got != 17.5 {
		t.Fatalf("constructor points mismatch: got=%v want=17.5", got)
	}
	// Riders contribute 20+15+5+0; the constructor adds its average on top.
	if got := breakdown.Breakdown.Total; got != 57.5 {
		t.Fatalf("total mismatch: got=%v want=57.5", got)
	}
}

func TestScoringService_ScoreParticipantRace_UnknownRace(t *testing.T) {
	service := newScoringService(newScoringFixture())

	_, err := service.ScoreParticipantRace(t.Context(), "p-1", "r-404")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestScoringService_ComputeStandings_SharedRanks(t *testing.T) {
	service := newScoringService(newScoringFixture())

	standings, err := service.ComputeStandings(t.Context(), "")
	if err != nil {
		t.Fatalf("compute standings failed: %v", err)
	}
	if len(standings) != 3 {
		t.Fatalf("expected 3 standings rows, got %d", len(standings))
	}

	// p-1 and p-2 rostered the same riders and constructor, so they tie on
	// 57.5 and share rank 1; p-3 never saved a team and scores zero at rank 3.
	if standings[0].Rank != 1 || standings[1].Rank != 1 {
		t.Fatalf("expected shared rank 1, got %d and %d", standings[0].Rank, standings[1].Rank)
	}
	if standings[0].Score != standings[1].Score {
		t.Fatalf("expected tied scores, got %v and %v", standings[0].Score, standings[1].Score)
	}
	if standings[2].Rank != 3 || standings[2].ParticipantID != "p-3" {
		t.Fatalf("expected p-3 at rank 3, got %+v", standings[2])
	}
	// Ties keep input order.
	if standings[0].ParticipantID != "p-1" || standings[1].ParticipantID != "p-2" {
		t.Fatalf("tie should preserve participant order, got %s then %s",
			standings[0].ParticipantID, standings[1].ParticipantID)
	}
}

func TestScoringService_ComputeStandings_SingleRaceView(t *testing.T) {
	service := newScoringService(newScoringFixture())

	standings, err := service.ComputeStandings(t.Context(), "r-1")
	if err != nil {
		t.Fatalf("compute standings for race failed: %v", err)
	}
	if len(standings) != 3 {
		t.Fatalf("expected 3 standings rows, got %d", len(standings))
	}

	_, err = service.ComputeStandings(t.Context(), "r-404")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown race view, got %v", err)
	}
}

func TestScoringService_ComputeStandings_EmptyLeague(t *testing.T) {
	service := NewScoringService(
		memory.NewParticipantRepository(nil),
		memory.NewRaceRepository(nil),
		memory.NewSnapshotRepository(nil),
		memory.NewRiderRepository(nil),
		memory.NewConstructorRepository(nil),
		memory.NewResultsRepository(nil),
		roster.DefaultRules(),
		nil,
	)

	standings, err := service.ComputeStandings(t.Context(), "")
	if err != nil {
		t.Fatalf("compute standings failed: %v", err)
	}
	if len(standings) != 0 {
		t.Fatalf("expected empty standings, got %d rows", len(standings))
	}
}
