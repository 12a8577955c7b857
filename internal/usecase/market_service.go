package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gridrivals/fantasy-motorsport/internal/domain/constructor"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/market"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/participant"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/race"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/rider"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/roster"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/snapshot"
	"github.com/gridrivals/fantasy-motorsport/internal/platform/logging"
)

// MarketService runs the price-adjustment fold and persists its diff.
//
// The engine itself is pure; this service owns the read-compute-write cycle.
// Persisting the price updates and marking the races processed must happen
// together: a crash between the two double-applies deltas on the next run.
// The in-process mutex serializes concurrent triggers from this instance;
// multi-instance deployments need storage-level exclusion around the cycle.
type MarketService struct {
	raceRepo        race.Repository
	riderRepo       rider.Repository
	constructorRepo constructor.Repository
	participantRepo participant.Repository
	snapshotRepo    snapshot.Repository
	rules           roster.Rules
	logger          *logging.Logger
	now             func() time.Time
	runMu           sync.Mutex
}

func NewMarketService(
	raceRepo race.Repository,
	riderRepo rider.Repository,
	constructorRepo constructor.Repository,
	participantRepo participant.Repository,
	snapshotRepo snapshot.Repository,
	rules roster.Rules,
	logger *logging.Logger,
) *MarketService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MarketService{
		raceRepo:        raceRepo,
		riderRepo:       riderRepo,
		constructorRepo: constructorRepo,
		participantRepo: participantRepo,
		snapshotRepo:    snapshotRepo,
		rules:           rules,
		logger:          logger,
		now:             time.Now,
	}
}

// AdjustPrices computes and persists price adjustments for every unprocessed
// past race. Returns nil when there is nothing to process — the normal state
// once the season is caught up.
func (s *MarketService) AdjustPrices(ctx context.Context) (*market.Adjustment, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MarketService.AdjustPrices")
	defer span.End()

	s.runMu.Lock()
	defer s.runMu.Unlock()

	races, err := s.raceRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list races: %w", err)
	}
	riders, err := s.riderRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list riders: %w", err)
	}
	constructors, err := s.constructorRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list constructors: %w", err)
	}
	participants, err := s.participantRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	snapshots, err := s.snapshotRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	adjustment := market.Run(market.Input{
		Races:        races,
		Riders:       riders,
		Constructors: constructors,
		Participants: participants,
		Snapshots:    snapshots,
		Rules:        s.rules,
		Now:          s.now().UTC(),
	})
	if adjustment == nil {
		return nil, nil
	}

	if len(adjustment.RiderPrices) > 0 {
		priceByID := make(map[string]int64, len(adjustment.RiderPrices))
		for _, change := range adjustment.RiderPrices {
			priceByID[change.ID] = change.NewPrice
		}
		if err := s.riderRepo.UpdatePrices(ctx, priceByID); err != nil {
			return nil, fmt.Errorf("update rider prices: %w", err)
		}
	}
	if len(adjustment.ConstructorPrices) > 0 {
		priceByID := make(map[string]int64, len(adjustment.ConstructorPrices))
		for _, change := range adjustment.ConstructorPrices {
			priceByID[change.ID] = change.NewPrice
		}
		if err := s.constructorRepo.UpdatePrices(ctx, priceByID); err != nil {
			return nil, fmt.Errorf("update constructor prices: %w", err)
		}
	}
	if err := s.raceRepo.MarkPricesAdjusted(ctx, adjustment.ProcessedRaceIDs); err != nil {
		return nil, fmt.Errorf("mark races prices_adjusted: %w", err)
	}

	s.logger.InfoContext(ctx, "market prices adjusted",
		"processed_races", len(adjustment.ProcessedRaceIDs),
		"rider_changes", len(adjustment.RiderPrices),
		"constructor_changes", len(adjustment.ConstructorPrices),
	)

	return adjustment, nil
}
