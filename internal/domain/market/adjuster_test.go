package market

import (
	"testing"
	"time"

	"github.com/gridrivals/fantasy-motorsport/internal/domain/constructor"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/participant"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/race"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/rider"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/roster"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/snapshot"
)

var testNow = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func pastRace(id string, round int) race.Race {
	return race.Race{
		ID:       id,
		Round:    round,
		GPName:   "GP " + id,
		RaceDate: testNow.AddDate(0, 0, -30+round),
	}
}

// Ten participants, eight of whom rostered rider A before round one.
func tenParticipantFixture() ([]participant.Participant, []snapshot.TeamSnapshot) {
	participants := make([]participant.Participant, 0, 10)
	snapshots := make([]snapshot.TeamSnapshot, 0, 10)
	saved := testNow.AddDate(0, 0, -60)

	for i := 0; i < 10; i++ {
		id := string(rune('a' + i))
		participants = append(participants, participant.Participant{ID: "p-" + id, Name: "P " + id})

		riderIDs := []string{"filler-" + id}
		if i < 8 {
			riderIDs = append(riderIDs, "rider-a")
		}
		snapshots = append(snapshots, snapshot.TeamSnapshot{
			ID:            "s-" + id,
			ParticipantID: "p-" + id,
			RiderIDs:      riderIDs,
			CreatedAt:     saved,
		})
	}

	return participants, snapshots
}

func TestRun_NothingUnprocessedReturnsNil(t *testing.T) {
	participants, snapshots := tenParticipantFixture()

	processed := pastRace("r1", 1)
	processed.PricesAdjusted = true
	future := race.Race{ID: "r2", Round: 2, GPName: "GP r2", RaceDate: testNow.AddDate(0, 0, 7)}

	got := Run(Input{
		Races:        []race.Race{processed, future},
		Riders:       []rider.Rider{{ID: "rider-a", Price: 100}},
		Participants: participants,
		Snapshots:    snapshots,
		Rules:        roster.Rules{},
		Now:          testNow,
	})
	if got != nil {
		t.Fatalf("expected nil adjustment, got %+v", got)
	}
}

func TestRun_TieredIncreaseAndConservation(t *testing.T) {
	participants, snapshots := tenParticipantFixture()

	riders := []rider.Rider{
		{ID: "rider-a", Price: 100},
		{ID: "rider-b", Price: 50},
	}
	// Filler riders keep each roster non-empty; each is selected by exactly
	// one of ten participants (10%, differential tier).
	for i := 0; i < 10; i++ {
		riders = append(riders, rider.Rider{ID: "filler-" + string(rune('a'+i)), Price: 10})
	}

	got := Run(Input{
		Races:        []race.Race{pastRace("r1", 1)},
		Riders:       riders,
		Participants: participants,
		Snapshots:    snapshots,
		Rules:        roster.Rules{},
		Now:          testNow,
	})
	if got == nil {
		t.Fatal("expected an adjustment")
	}
	if len(got.ProcessedRaceIDs) != 1 || got.ProcessedRaceIDs[0] != "r1" {
		t.Fatalf("unexpected processed races: %v", got.ProcessedRaceIDs)
	}

	changes := make(map[string]PriceChange, len(got.RiderPrices))
	for _, change := range got.RiderPrices {
		changes[change.ID] = change
	}

	// 80% selection is dominant: +30.
	if change := changes["rider-a"]; change.NewPrice != 130 {
		t.Fatalf("expected rider-a at 130, got %+v", change)
	}
	// rider-b is the sole unpopular candidate and absorbs the full -30.
	if change := changes["rider-b"]; change.NewPrice != 20 {
		t.Fatalf("expected rider-b at 20, got %+v", change)
	}

	// Conservation: positive and negative deltas cancel to within the
	// 10-unit rounding remainder.
	var net int64
	for _, change := range got.RiderPrices {
		net += change.NewPrice - change.OldPrice
	}
	if net < 0 || net >= 10 {
		t.Fatalf("conservation violated: net delta %d", net)
	}
}

func TestRun_ConditionFlagKeepsRiderOutOfDecreasePool(t *testing.T) {
	participants, snapshots := tenParticipantFixture()

	riders := []rider.Rider{
		{ID: "rider-a", Price: 100},
		{ID: "rider-b", Price: 80, Condition: "injured"},
		{ID: "rider-c", Price: 50},
	}
	for i := 0; i < 10; i++ {
		riders = append(riders, rider.Rider{ID: "filler-" + string(rune('a'+i)), Price: 10})
	}

	got := Run(Input{
		Races:        []race.Race{pastRace("r1", 1)},
		Riders:       riders,
		Participants: participants,
		Snapshots:    snapshots,
		Rules:        roster.Rules{},
		Now:          testNow,
	})
	if got == nil {
		t.Fatal("expected an adjustment")
	}

	for _, change := range got.RiderPrices {
		if change.ID == "rider-b" {
			t.Fatalf("injured unselected rider must not be decreased: %+v", change)
		}
	}
}

func TestRun_PriceFloorsAtZero(t *testing.T) {
	participants, snapshots := tenParticipantFixture()

	riders := []rider.Rider{
		{ID: "rider-a", Price: 100},
		{ID: "rider-b", Price: 5},
	}
	for i := 0; i < 10; i++ {
		riders = append(riders, rider.Rider{ID: "filler-" + string(rune('a'+i)), Price: 10, Condition: "wildcard"})
	}

	got := Run(Input{
		Races:        []race.Race{pastRace("r1", 1)},
		Riders:       riders,
		Participants: participants,
		Snapshots:    snapshots,
		Rules:        roster.Rules{},
		Now:          testNow,
	})
	if got == nil {
		t.Fatal("expected an adjustment")
	}

	for _, change := range got.RiderPrices {
		if change.NewPrice < 0 {
			t.Fatalf("price dropped below zero: %+v", change)
		}
	}
}

func TestRun_SequentialRacesCarryWorkingPrices(t *testing.T) {
	participants, snapshots := tenParticipantFixture()

	riders := []rider.Rider{
		{ID: "rider-a", Price: 100},
		{ID: "rider-b", Price: 50},
	}
	for i := 0; i < 10; i++ {
		riders = append(riders, rider.Rider{ID: "filler-" + string(rune('a'+i)), Price: 10, Condition: "wildcard"})
	}

	got := Run(Input{
		Races:        []race.Race{pastRace("r2", 2), pastRace("r1", 1)},
		Riders:       riders,
		Participants: participants,
		Snapshots:    snapshots,
		Rules:        roster.Rules{},
		Now:          testNow,
	})
	if got == nil {
		t.Fatal("expected an adjustment")
	}
	if len(got.ProcessedRaceIDs) != 2 || got.ProcessedRaceIDs[0] != "r1" || got.ProcessedRaceIDs[1] != "r2" {
		t.Fatalf("races must process in chronological order: %v", got.ProcessedRaceIDs)
	}

	changes := make(map[string]PriceChange, len(got.RiderPrices))
	for _, change := range got.RiderPrices {
		changes[change.ID] = change
	}
	// Two races compound: +30 then +30 on the same working ledger.
	if change := changes["rider-a"]; change.NewPrice != 160 {
		t.Fatalf("expected rider-a at 160 after two races, got %+v", change)
	}
	if change := changes["rider-b"]; change.NewPrice != 0 {
		t.Fatalf("expected rider-b floored at 0 after absorbing -60, got %+v", change)
	}
}

func TestRun_NoQualifyingParticipantsStillMarksRace(t *testing.T) {
	got := Run(Input{
		Races:        []race.Race{pastRace("r1", 1)},
		Riders:       []rider.Rider{{ID: "rider-a", Price: 100}},
		Participants: []participant.Participant{{ID: "p-a", Name: "P A"}},
		Snapshots:    nil,
		Rules:        roster.Rules{},
		Now:          testNow,
	})
	if got == nil {
		t.Fatal("expected an adjustment")
	}
	if len(got.ProcessedRaceIDs) != 1 {
		t.Fatalf("race without pickers must still be marked processed: %v", got.ProcessedRaceIDs)
	}
	if len(got.RiderPrices) != 0 {
		t.Fatalf("expected no price changes, got %v", got.RiderPrices)
	}
}

func TestRun_ConstructorPricesAdjustSeparately(t *testing.T) {
	participants, snapshots := tenParticipantFixture()
	for i := range snapshots {
		// Eight of ten roster constructor k1, the rest none.
		if i < 8 {
			snapshots[i].ConstructorID = "k1"
		}
	}

	riders := []rider.Rider{}
	for i := 0; i < 10; i++ {
		riders = append(riders, rider.Rider{ID: "filler-" + string(rune('a'+i)), Price: 10, Condition: "wildcard"})
	}
	constructors := []constructor.Constructor{
		{ID: "k1", Name: "Alpha", Price: 200},
		{ID: "k2", Name: "Beta", Price: 120},
	}

	got := Run(Input{
		Races:        []race.Race{pastRace("r1", 1)},
		Riders:       riders,
		Constructors: constructors,
		Participants: participants,
		Snapshots:    snapshots,
		Rules:        roster.Rules{HasConstructors: true},
		Now:          testNow,
	})
	if got == nil {
		t.Fatal("expected an adjustment")
	}

	changes := make(map[string]PriceChange, len(got.ConstructorPrices))
	for _, change := range got.ConstructorPrices {
		changes[change.ID] = change
	}
	// k1 at 80% selection is dominant: +30. k2 at 0% absorbs the decrease.
	if change := changes["k1"]; change.NewPrice != 230 {
		t.Fatalf("expected k1 at 230, got %+v", change)
	}
	if change := changes["k2"]; change.NewPrice != 90 {
		t.Fatalf("expected k2 at 90, got %+v", change)
	}
}
