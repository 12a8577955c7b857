package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/gridrivals/fantasy-motorsport/internal/domain/constructor"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/participant"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/race"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/results"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/rider"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/roster"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/scoring"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/snapshot"
	"github.com/gridrivals/fantasy-motorsport/internal/platform/cache"
)

// StandingsViewGeneral accumulates every race; any other view value is a
// race id and scores that single race only.
const StandingsViewGeneral = "general"

// ScoringService computes roster breakdowns and league standings.
type ScoringService struct {
	participantRepo participant.Repository
	raceRepo        race.Repository
	snapshotRepo    snapshot.Repository
	riderRepo       rider.Repository
	constructorRepo constructor.Repository
	resultsRepo     results.Repository
	rules           roster.Rules
	standingsCache  *cache.Store
}

type Standing struct {
	ParticipantID string
	Name          string
	Score         float64
	Rank          int
}

type RosterBreakdown struct {
	ParticipantID string
	RaceID        string
	Breakdown     scoring.Breakdown
}

func NewScoringService(
	participantRepo participant.Repository,
	raceRepo race.Repository,
	snapshotRepo snapshot.Repository,
	riderRepo rider.Repository,
	constructorRepo constructor.Repository,
	resultsRepo results.Repository,
	rules roster.Rules,
	standingsCache *cache.Store,
) *ScoringService {
	return &ScoringService{
		participantRepo: participantRepo,
		raceRepo:        raceRepo,
		snapshotRepo:    snapshotRepo,
		riderRepo:       riderRepo,
		constructorRepo: constructorRepo,
		resultsRepo:     resultsRepo,
		rules:           rules,
		standingsCache:  standingsCache,
	}
}

// ScoreParticipantRace resolves the participant's roster as of the race and
// returns the full per-rider and constructor breakdown.
func (s *ScoringService) ScoreParticipantRace(ctx context.Context, participantID, raceID string) (RosterBreakdown, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ScoreParticipantRace")
	defer span.End()

	participantID = strings.TrimSpace(participantID)
	if participantID == "" {
		return RosterBreakdown{}, fmt.Errorf("%w: participant id is required", ErrInvalidInput)
	}

	target, exists, err := s.raceRepo.GetByID(ctx, strings.TrimSpace(raceID))
	if err != nil {
		return RosterBreakdown{}, fmt.Errorf("get race: %w", err)
	}
	if !exists {
		return RosterBreakdown{}, fmt.Errorf("%w: race=%s", ErrNotFound, raceID)
	}

	snapshots, err := s.snapshotRepo.ListByParticipant(ctx, participantID)
	if err != nil {
		return RosterBreakdown{}, fmt.Errorf("list snapshots by participant: %w", err)
	}
	racePoints, err := s.resultsRepo.GetByRace(ctx, target.ID)
	if err != nil {
		return RosterBreakdown{}, fmt.Errorf("get race points: %w", err)
	}
	riders, err := s.riderRepo.List(ctx)
	if err != nil {
		return RosterBreakdown{}, fmt.Errorf("list riders: %w", err)
	}
	constructors, err := s.constructorRepo.List(ctx)
	if err != nil {
		return RosterBreakdown{}, fmt.Errorf("list constructors: %w", err)
	}

	resolved := roster.ResolveAt(participantID, target.RaceDate, snapshots)
	return RosterBreakdown{
		ParticipantID: participantID,
		RaceID:        target.ID,
		Breakdown:     scoring.ScoreRoster(resolved, racePoints, riders, constructors, s.rules),
	}, nil
}

// ComputeStandings folds the score breakdown over all races (general view)
// or one race, for every participant, ranked by score descending. Tied
// participants keep their input order; equal scores share a rank.
func (s *ScoringService) ComputeStandings(ctx context.Context, view string) ([]Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ComputeStandings")
	defer span.End()

	view = strings.TrimSpace(view)
	if view == "" {
		view = StandingsViewGeneral
	}

	if s.standingsCache == nil {
		return s.computeStandings(ctx, view)
	}

	value, err := s.standingsCache.GetOrLoad(ctx, "standings:"+view, func(ctx context.Context) (any, error) {
		return s.computeStandings(ctx, view)
	})
	if err != nil {
		return nil, err
	}

	standings, ok := value.([]Standing)
	if !ok {
		return s.computeStandings(ctx, view)
	}
	return standings, nil
}

func (s *ScoringService) computeStandings(ctx context.Context, view string) ([]Standing, error) {
	participants, err := s.participantRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	if len(participants) == 0 {
		return []Standing{}, nil
	}

	races, err := s.raceRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list races: %w", err)
	}
	if view != StandingsViewGeneral {
		scoped := races[:0:0]
		for _, item := range races {
			if item.ID == view {
				scoped = append(scoped, item)
				break
			}
		}
		if len(scoped) == 0 {
			return nil, fmt.Errorf("%w: race=%s", ErrNotFound, view)
		}
		races = scoped
	}

	snapshots, err := s.snapshotRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	allPoints, err := s.resultsRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list race points: %w", err)
	}
	riders, err := s.riderRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list riders: %w", err)
	}
	constructors, err := s.constructorRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list constructors: %w", err)
	}

	standings := make([]Standing, 0, len(participants))
	for _, p := range participants {
		total := 0.0
		for _, item := range races {
			resolved := roster.ResolveAt(p.ID, item.RaceDate, snapshots)
			if resolved.IsEmpty() {
				continue
			}
			total += scoring.ScoreRoster(resolved, allPoints[item.ID], riders, constructors, s.rules).Total
		}
		standings = append(standings, Standing{ParticipantID: p.ID, Name: p.Name, Score: total})
	}

	// Stable sort keeps tied participants in their original order; the
	// secondary tie-break is deliberately absent.
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Score > standings[j].Score
	})

	rank := 0
	lastScore := 0.0
	for idx := range standings {
		if idx == 0 || standings[idx].Score != lastScore {
			rank = idx + 1
			lastScore = standings[idx].Score
		}
		standings[idx].Rank = rank
	}

	return standings, nil
}
