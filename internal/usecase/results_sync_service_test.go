package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gridrivals/fantasy-motorsport/internal/domain/race"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/results"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/rider"
	"github.com/gridrivals/fantasy-motorsport/internal/infrastructure/repository/memory"
)

type stubResultsFeed struct {
	mu         sync.Mutex
	pointsByGP map[string]map[string]results.RoundPoints
	err        error
	seasons    []int
}

func (f *stubResultsFeed) FetchRacePoints(_ context.Context, gpName string, season int, _ []string) (map[string]results.RoundPoints, error) {
	f.mu.Lock()
	f.seasons = append(f.seasons, season)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	return f.pointsByGP[gpName], nil
}

func newSyncFixture() ([]race.Race, []rider.Rider) {
	races := []race.Race{
		{ID: "r-1", Round: 1, GPName: "Opening GP", RaceDate: time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)},
		{ID: "r-2", Round: 2, GPName: "Future GP", RaceDate: time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)},
	}
	riders := []rider.Rider{
		{ID: "rd-1", Name: "Alpha Rider", Price: 100, InitialPrice: 100},
		{ID: "rd-2", Name: "Beta Rider", Price: 90, InitialPrice: 90},
	}
	return races, riders
}

func TestResultsSyncService_Sync_WritesMatchedRiders(t *testing.T) {
	races, riders := newSyncFixture()
	resultsRepo := memory.NewResultsRepository(nil)
	feed := &stubResultsFeed{
		pointsByGP: map[string]map[string]results.RoundPoints{
			"Opening GP": {
				"alpha rider":  {Main: 25, Sprint: 9},
				"Ghost Entry":  {Main: 20},
				" Beta Rider ": {Main: 16},
			},
		},
	}

	service := NewResultsSyncService(
		memory.NewRaceRepository(races),
		memory.NewRiderRepository(riders),
		resultsRepo,
		feed,
	)
	// Only r-1 is in the past relative to this clock.
	service.now = func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }

	out, err := service.Sync(t.Context(), SyncResultsInput{})
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	if out.RaceCount != 1 || out.SuccessCount != 1 || out.FailedCount != 0 {
		t.Fatalf("unexpected counts: %+v", out)
	}
	if len(out.Races) != 1 || out.Races[0].Status != "success" {
		t.Fatalf("unexpected race rows: %+v", out.Races)
	}
	// Name matching is case-insensitive and trims whitespace; the unknown
	// feed row is dropped.
	if out.Races[0].Riders != 2 {
		t.Fatalf("matched riders: got=%d want=2", out.Races[0].Riders)
	}

	stored, err := resultsRepo.GetByRace(t.Context(), "r-1")
	if err != nil {
		t.Fatalf("get stored results failed: %v", err)
	}
	if pts, ok := stored["rd-1"]; !ok || pts.Main != 25 || pts.Sprint != 9 || pts.Total != 34 {
		t.Fatalf("rd-1 points: got=%+v", stored["rd-1"])
	}
	if _, ok := stored["rd-2"]; !ok {
		t.Fatalf("expected rd-2 points, got %v", stored)
	}

	// Season defaults to the race year when the input leaves it zero.
	feed.mu.Lock()
	defer feed.mu.Unlock()
	if len(feed.seasons) != 1 || feed.seasons[0] != 2026 {
		t.Fatalf("expected season 2026, got %v", feed.seasons)
	}
}

func TestResultsSyncService_Sync_DryRunSkipsWrite(t *testing.T) {
	races, riders := newSyncFixture()
	resultsRepo := memory.NewResultsRepository(nil)
	feed := &stubResultsFeed{
		pointsByGP: map[string]map[string]results.RoundPoints{
			"Opening GP": {"Alpha Rider": {Main: 25}},
		},
	}

	service := NewResultsSyncService(
		memory.NewRaceRepository(races),
		memory.NewRiderRepository(riders),
		resultsRepo,
		feed,
	)
	service.now = func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }

	out, err := service.Sync(t.Context(), SyncResultsInput{DryRun: true})
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if out.SuccessCount != 1 {
		t.Fatalf("expected 1 success, got %+v", out)
	}

	stored, err := resultsRepo.GetByRace(t.Context(), "r-1")
	if err != nil {
		t.Fatalf("get stored results failed: %v", err)
	}
	if len(stored) != 0 {
		t.Fatalf("dry run must not persist, got %v", stored)
	}
}

func TestResultsSyncService_Sync_NoFeedConfigured(t *testing.T) {
	races, riders := newSyncFixture()
	service := NewResultsSyncService(
		memory.NewRaceRepository(races),
		memory.NewRiderRepository(riders),
		memory.NewResultsRepository(nil),
		nil,
	)

	_, err := service.Sync(t.Context(), SyncResultsInput{})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestResultsSyncService_Sync_UnmatchedRowsAreSkipped(t *testing.T) {
	races, riders := newSyncFixture()
	feed := &stubResultsFeed{
		pointsByGP: map[string]map[string]results.RoundPoints{
			"Opening GP": {"Ghost Entry": {Main: 20}},
		},
	}

	service := NewResultsSyncService(
		memory.NewRaceRepository(races),
		memory.NewRiderRepository(riders),
		memory.NewResultsRepository(nil),
		feed,
	)
	service.now = func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }

	out, err := service.Sync(t.Context(), SyncResultsInput{})
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if out.SkippedCount != 1 || out.SuccessCount != 0 {
		t.Fatalf("expected 1 skipped race, got %+v", out)
	}
}

func TestResultsSyncService_Sync_ExplicitRaceIDsIncludeFutureRaces(t *testing.T) {
	races, riders := newSyncFixture()
	feed := &stubResultsFeed{err: errors.New("provider down")}

	service := NewResultsSyncService(
		memory.NewRaceRepository(races),
		memory.NewRiderRepository(riders),
		memory.NewResultsRepository(nil),
		feed,
	)
	service.now = func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }

	out, err := service.Sync(t.Context(), SyncResultsInput{RaceIDs: []string{"r-2"}, MaxWorkers: 2})
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if out.RaceCount != 1 || out.FailedCount != 1 {
		t.Fatalf("expected the explicit race to fail, got %+v", out)
	}
	if out.Races[0].RaceID != "r-2" || out.Races[0].Message == "" {
		t.Fatalf("expected failure row for r-2, got %+v", out.Races)
	}
}
