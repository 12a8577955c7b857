package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/gridrivals/fantasy-motorsport/internal/domain/constructor"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/dreamteam"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/race"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/results"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/rider"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/roster"
)

// DreamTeamService finds the best achievable roster for one race's results.
type DreamTeamService struct {
	raceRepo        race.Repository
	riderRepo       rider.Repository
	constructorRepo constructor.Repository
	resultsRepo     results.Repository
	rules           roster.Rules
}

func NewDreamTeamService(
	raceRepo race.Repository,
	riderRepo rider.Repository,
	constructorRepo constructor.Repository,
	resultsRepo results.Repository,
	rules roster.Rules,
) *DreamTeamService {
	return &DreamTeamService{
		raceRepo:        raceRepo,
		riderRepo:       riderRepo,
		constructorRepo: constructorRepo,
		resultsRepo:     resultsRepo,
		rules:           rules,
	}
}

// Compute returns the greedy best team for the race, or nil when no legal
// full roster fits the budget. The result is a simplified computation, not a
// global optimum; the UI labels it accordingly.
func (s *DreamTeamService) Compute(ctx context.Context, raceID string) (*dreamteam.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DreamTeamService.Compute")
	defer span.End()

	target, exists, err := s.raceRepo.GetByID(ctx, strings.TrimSpace(raceID))
	if err != nil {
		return nil, fmt.Errorf("get race: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: race=%s", ErrNotFound, raceID)
	}

	racePoints, err := s.resultsRepo.GetByRace(ctx, target.ID)
	if err != nil {
		return nil, fmt.Errorf("get race points: %w", err)
	}
	riders, err := s.riderRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list riders: %w", err)
	}
	constructors, err := s.constructorRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list constructors: %w", err)
	}

	return dreamteam.Solve(racePoints, riders, constructors, s.rules), nil
}
