package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/gridrivals/fantasy-motorsport/internal/domain/race"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/results"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/rider"
)

// ResultsFeed is the out-of-core results provider: given a grand prix and the
// candidate rider names, it returns already-validated points per rider name.
// Its parsing and matching behavior is opaque to this service.
type ResultsFeed interface {
	FetchRacePoints(ctx context.Context, gpName string, season int, riderNames []string) (map[string]results.RoundPoints, error)
}

const (
	syncStatusSuccess = "success"
	syncStatusFailed  = "failed"
	syncStatusSkipped = "skipped"

	defaultSyncWorkers = 4
	maxSyncWorkers     = 16
)

type SyncResultsInput struct {
	// RaceIDs narrows the sync; empty means every past race.
	RaceIDs    []string
	Season     int
	MaxWorkers int
	// DryRun computes and reports counts without writing the results repo.
	DryRun bool
}

type SyncRaceResult struct {
	RaceID     string `json:"race_id"`
	GPName     string `json:"gp_name"`
	Status     string `json:"status"`
	Riders     int    `json:"riders"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

type SyncResultsResult struct {
	RaceCount    int              `json:"race_count"`
	SuccessCount int              `json:"success_count"`
	FailedCount  int              `json:"failed_count"`
	SkippedCount int              `json:"skipped_count"`
	WorkerCount  int              `json:"worker_count"`
	Races        []SyncRaceResult `json:"races"`
}

// ResultsSyncService pulls race results from the external feed into the
// results repository, fanning the per-race fetches over a worker pool.
type ResultsSyncService struct {
	raceRepo    race.Repository
	riderRepo   rider.Repository
	resultsRepo results.Repository
	feed        ResultsFeed
	now         func() time.Time
}

func NewResultsSyncService(
	raceRepo race.Repository,
	riderRepo rider.Repository,
	resultsRepo results.Repository,
	feed ResultsFeed,
) *ResultsSyncService {
	return &ResultsSyncService{
		raceRepo:    raceRepo,
		riderRepo:   riderRepo,
		resultsRepo: resultsRepo,
		feed:        feed,
		now:         time.Now,
	}
}

func (s *ResultsSyncService) Sync(ctx context.Context, input SyncResultsInput) (SyncResultsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultsSyncService.Sync")
	defer span.End()

	if s.feed == nil {
		return SyncResultsResult{}, fmt.Errorf("%w: results feed is not configured", ErrDependencyUnavailable)
	}

	races, err := s.raceRepo.List(ctx)
	if err != nil {
		return SyncResultsResult{}, fmt.Errorf("list races: %w", err)
	}
	riders, err := s.riderRepo.List(ctx)
	if err != nil {
		return SyncResultsResult{}, fmt.Errorf("list riders: %w", err)
	}

	targets := s.selectTargets(races, input.RaceIDs)
	out := SyncResultsResult{RaceCount: len(targets)}
	if len(targets) == 0 {
		return out, nil
	}

	riderNames := make([]string, 0, len(riders))
	idByName := make(map[string]string, len(riders))
	for _, item := range riders {
		riderNames = append(riderNames, item.Name)
		idByName[strings.ToLower(item.Name)] = item.ID
	}

	workerCount := input.MaxWorkers
	if workerCount <= 0 {
		workerCount = defaultSyncWorkers
	}
	if workerCount > maxSyncWorkers {
		workerCount = maxSyncWorkers
	}
	if workerCount > len(targets) {
		workerCount = len(targets)
	}
	out.WorkerCount = workerCount

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return SyncResultsResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	rows := make(chan SyncRaceResult, len(targets))
	var successCount atomic.Int32
	var failedCount atomic.Int32
	var skippedCount atomic.Int32

	var workers sync.WaitGroup
	for _, target := range targets {
		target := target
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := SyncRaceResult{RaceID: target.ID, GPName: target.GPName}
			row.Riders, row.Status, row.Message = s.syncRace(ctx, target, input, riderNames, idByName)
			row.DurationMs = time.Since(start).Milliseconds()

			switch row.Status {
			case syncStatusSuccess:
				successCount.Add(1)
			case syncStatusSkipped:
				skippedCount.Add(1)
			default:
				failedCount.Add(1)
			}
			rows <- row
		}); err != nil {
			workers.Done()
			return SyncResultsResult{}, fmt.Errorf("submit race sync to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(rows)

	for row := range rows {
		out.Races = append(out.Races, row)
	}
	sort.SliceStable(out.Races, func(i, j int) bool {
		return out.Races[i].RaceID < out.Races[j].RaceID
	})

	out.SuccessCount = int(successCount.Load())
	out.FailedCount = int(failedCount.Load())
	out.SkippedCount = int(skippedCount.Load())
	return out, nil
}

func (s *ResultsSyncService) selectTargets(races []race.Race, raceIDs []string) []race.Race {
	now := s.now().UTC()

	if len(raceIDs) == 0 {
		past := make([]race.Race, 0, len(races))
		for _, item := range races {
			if item.IsPast(now) {
				past = append(past, item)
			}
		}
		race.SortChronological(past)
		return past
	}

	wanted := make(map[string]struct{}, len(raceIDs))
	for _, id := range raceIDs {
		wanted[strings.TrimSpace(id)] = struct{}{}
	}
	targets := make([]race.Race, 0, len(wanted))
	for _, item := range races {
		if _, ok := wanted[item.ID]; ok {
			targets = append(targets, item)
		}
	}
	race.SortChronological(targets)
	return targets
}

func (s *ResultsSyncService) syncRace(
	ctx context.Context,
	target race.Race,
	input SyncResultsInput,
	riderNames []string,
	idByName map[string]string,
) (int, string, string) {
	season := input.Season
	if season == 0 {
		season = target.RaceDate.Year()
	}

	fetched, err := s.feed.FetchRacePoints(ctx, target.GPName, season, riderNames)
	if err != nil {
		return 0, syncStatusFailed, err.Error()
	}
	if len(fetched) == 0 {
		return 0, syncStatusSkipped, "feed returned no rider points"
	}

	racePoints := make(results.RacePoints, len(fetched))
	for name, pts := range fetched {
		riderID, ok := idByName[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			continue
		}
		racePoints[riderID] = pts.Normalize()
	}
	if len(racePoints) == 0 {
		return 0, syncStatusSkipped, "no feed rows matched known riders"
	}

	if input.DryRun {
		return len(racePoints), syncStatusSuccess, "dry run"
	}
	if err := s.resultsRepo.UpsertByRace(ctx, target.ID, racePoints); err != nil {
		return 0, syncStatusFailed, err.Error()
	}

	return len(racePoints), syncStatusSuccess, ""
}
