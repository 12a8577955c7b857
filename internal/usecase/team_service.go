package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gridrivals/fantasy-motorsport/internal/domain/constructor"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/participant"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/race"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/rider"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/roster"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/settings"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/snapshot"
	idgen "github.com/gridrivals/fantasy-motorsport/internal/platform/id"
)

// TeamService resolves rosters from snapshot history and appends new
// snapshots while the market is open.
type TeamService struct {
	participantRepo participant.Repository
	raceRepo        race.Repository
	snapshotRepo    snapshot.Repository
	riderRepo       rider.Repository
	constructorRepo constructor.Repository
	settingsRepo    settings.Repository
	rules           roster.Rules
	idGen           idgen.Generator
	now             func() time.Time
}

func NewTeamService(
	participantRepo participant.Repository,
	raceRepo race.Repository,
	snapshotRepo snapshot.Repository,
	riderRepo rider.Repository,
	constructorRepo constructor.Repository,
	settingsRepo settings.Repository,
	rules roster.Rules,
	idGen idgen.Generator,
) *TeamService {
	return &TeamService{
		participantRepo: participantRepo,
		raceRepo:        raceRepo,
		snapshotRepo:    snapshotRepo,
		riderRepo:       riderRepo,
		constructorRepo: constructorRepo,
		settingsRepo:    settingsRepo,
		rules:           rules,
		idGen:           idGen,
		now:             time.Now,
	}
}

// ResolveForRace returns the roster the participant had in force at the race.
// Absent data resolves to an empty roster, never an error.
func (s *TeamService) ResolveForRace(ctx context.Context, participantID, raceID string) (roster.Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ResolveForRace")
	defer span.End()

	participantID = strings.TrimSpace(participantID)
	if participantID == "" {
		return roster.Roster{}, fmt.Errorf("%w: participant id is required", ErrInvalidInput)
	}

	target, exists, err := s.raceRepo.GetByID(ctx, strings.TrimSpace(raceID))
	if err != nil {
		return roster.Roster{}, fmt.Errorf("get race: %w", err)
	}
	if !exists {
		return roster.Roster{}, fmt.Errorf("%w: race=%s", ErrNotFound, raceID)
	}

	snapshots, err := s.snapshotRepo.ListByParticipant(ctx, participantID)
	if err != nil {
		return roster.Roster{}, fmt.Errorf("list snapshots by participant: %w", err)
	}

	return roster.ResolveAt(participantID, target.RaceDate, snapshots), nil
}

// ResolveCurrent returns the participant's latest saved roster, unconstrained
// by any race cutoff.
func (s *TeamService) ResolveCurrent(ctx context.Context, participantID string) (roster.Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ResolveCurrent")
	defer span.End()

	participantID = strings.TrimSpace(participantID)
	if participantID == "" {
		return roster.Roster{}, fmt.Errorf("%w: participant id is required", ErrInvalidInput)
	}

	snapshots, err := s.snapshotRepo.ListByParticipant(ctx, participantID)
	if err != nil {
		return roster.Roster{}, fmt.Errorf("list snapshots by participant: %w", err)
	}

	return roster.ResolveLatest(participantID, snapshots), nil
}

type SaveTeamInput struct {
	ParticipantID string
	RiderIDs      []string
	ConstructorID string
	RaceID        string
}

// SaveTeam validates the candidate roster and appends a snapshot. Snapshots
// are append-only; an edit is a new snapshot, never a mutation.
func (s *TeamService) SaveTeam(ctx context.Context, input SaveTeamInput) (snapshot.TeamSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.SaveTeam")
	defer span.End()

	participantID := strings.TrimSpace(input.ParticipantID)
	if participantID == "" {
		return snapshot.TeamSnapshot{}, fmt.Errorf("%w: participant id is required", ErrInvalidInput)
	}

	_, exists, err := s.participantRepo.GetByID(ctx, participantID)
	if err != nil {
		return snapshot.TeamSnapshot{}, fmt.Errorf("get participant: %w", err)
	}
	if !exists {
		return snapshot.TeamSnapshot{}, fmt.Errorf("%w: participant=%s", ErrNotFound, participantID)
	}

	now := s.now().UTC()
	current, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return snapshot.TeamSnapshot{}, fmt.Errorf("get league settings: %w", err)
	}
	if !current.MarketOpen(now) {
		return snapshot.TeamSnapshot{}, fmt.Errorf("%w: deadline=%s", ErrMarketClosed, current.MarketDeadline.Format(time.RFC3339))
	}

	riders, err := s.riderRepo.List(ctx)
	if err != nil {
		return snapshot.TeamSnapshot{}, fmt.Errorf("list riders: %w", err)
	}
	constructors, err := s.constructorRepo.List(ctx)
	if err != nil {
		return snapshot.TeamSnapshot{}, fmt.Errorf("list constructors: %w", err)
	}

	candidate := roster.Roster{
		RiderIDs:      input.RiderIDs,
		ConstructorID: strings.TrimSpace(input.ConstructorID),
	}
	if err := roster.Validate(candidate, riders, constructors, s.rules); err != nil {
		return snapshot.TeamSnapshot{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	snapshotID, err := s.idGen.NewID()
	if err != nil {
		return snapshot.TeamSnapshot{}, fmt.Errorf("generate snapshot id: %w", err)
	}

	item := snapshot.TeamSnapshot{
		ID:            snapshotID,
		ParticipantID: participantID,
		RiderIDs:      append([]string(nil), input.RiderIDs...),
		ConstructorID: candidate.ConstructorID,
		RaceID:        strings.TrimSpace(input.RaceID),
		CreatedAt:     now,
	}
	if err := s.snapshotRepo.Append(ctx, item); err != nil {
		return snapshot.TeamSnapshot{}, fmt.Errorf("append team snapshot: %w", err)
	}

	return item, nil
}

// ListSnapshots returns the participant's full snapshot history, oldest
// first.
func (s *TeamService) ListSnapshots(ctx context.Context, participantID string) ([]snapshot.TeamSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListSnapshots")
	defer span.End()

	participantID = strings.TrimSpace(participantID)
	if participantID == "" {
		return nil, fmt.Errorf("%w: participant id is required", ErrInvalidInput)
	}

	snapshots, err := s.snapshotRepo.ListByParticipant(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("list snapshots by participant: %w", err)
	}

	return snapshots, nil
}

// RemoveParticipant deletes a participant's snapshot history. The cascade is
// an explicit admin action; normal season flow never deletes snapshots.
func (s *TeamService) RemoveParticipant(ctx context.Context, participantID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.RemoveParticipant")
	defer span.End()

	participantID = strings.TrimSpace(participantID)
	if participantID == "" {
		return fmt.Errorf("%w: participant id is required", ErrInvalidInput)
	}
	if err := s.snapshotRepo.DeleteByParticipant(ctx, participantID); err != nil {
		return fmt.Errorf("delete snapshots by participant: %w", err)
	}

	return nil
}
