package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/gridrivals/fantasy-motorsport/internal/domain/constructor"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/participant"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/race"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/rider"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/settings"
)

// CatalogService serves the read-only reference data the UI browses: the
// rider pool, constructors, the race calendar and the participant list.
type CatalogService struct {
	riderRepo       rider.Repository
	constructorRepo constructor.Repository
	raceRepo        race.Repository
	participantRepo participant.Repository
	settingsRepo    settings.Repository
	now             func() time.Time
}

func NewCatalogService(
	riderRepo rider.Repository,
	constructorRepo constructor.Repository,
	raceRepo race.Repository,
	participantRepo participant.Repository,
	settingsRepo settings.Repository,
) *CatalogService {
	return &CatalogService{
		riderRepo:       riderRepo,
		constructorRepo: constructorRepo,
		raceRepo:        raceRepo,
		participantRepo: participantRepo,
		settingsRepo:    settingsRepo,
		now:             time.Now,
	}
}

func (s *CatalogService) ListRiders(ctx context.Context) ([]rider.Rider, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListRiders")
	defer span.End()

	items, err := s.riderRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list riders: %w", err)
	}
	return items, nil
}

func (s *CatalogService) ListConstructors(ctx context.Context) ([]constructor.Constructor, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListConstructors")
	defer span.End()

	items, err := s.constructorRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list constructors: %w", err)
	}
	return items, nil
}

func (s *CatalogService) ListRaces(ctx context.Context) ([]race.Race, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListRaces")
	defer span.End()

	items, err := s.raceRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list races: %w", err)
	}
	race.SortChronological(items)
	return items, nil
}

func (s *CatalogService) ListParticipants(ctx context.Context) ([]participant.Participant, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListParticipants")
	defer span.End()

	items, err := s.participantRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return items, nil
}

type MarketStatus struct {
	Open     bool
	Deadline time.Time
}

// GetMarketStatus reports whether roster edits are currently allowed.
func (s *CatalogService) GetMarketStatus(ctx context.Context) (MarketStatus, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.GetMarketStatus")
	defer span.End()

	current, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return MarketStatus{}, fmt.Errorf("get league settings: %w", err)
	}
	return MarketStatus{
		Open:     current.MarketOpen(s.now().UTC()),
		Deadline: current.MarketDeadline,
	}, nil
}

// UpdateMarketDeadline moves the market close. A zero deadline keeps the
// market open forever; moving it into the past closes the market immediately.
func (s *CatalogService) UpdateMarketDeadline(ctx context.Context, deadline time.Time) (settings.LeagueSettings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.UpdateMarketDeadline")
	defer span.End()

	updated := settings.LeagueSettings{MarketDeadline: deadline.UTC()}
	if deadline.IsZero() {
		updated.MarketDeadline = time.Time{}
	}
	if err := s.settingsRepo.Update(ctx, updated); err != nil {
		return settings.LeagueSettings{}, fmt.Errorf("update league settings: %w", err)
	}
	return updated, nil
}
