package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/gridrivals/fantasy-motorsport/internal/domain/constructor"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/participant"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/race"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/rider"
	"github.com/gridrivals/fantasy-motorsport/internal/platform/logging"
	"github.com/gridrivals/fantasy-motorsport/internal/usecase"
)

type Handler struct {
	catalogService     *usecase.CatalogService
	teamService        *usecase.TeamService
	scoringService     *usecase.ScoringService
	statsService       *usecase.StatsService
	dreamTeamService   *usecase.DreamTeamService
	marketService      *usecase.MarketService
	resultsSyncService *usecase.ResultsSyncService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	catalogService *usecase.CatalogService,
	teamService *usecase.TeamService,
	scoringService *usecase.ScoringService,
	statsService *usecase.StatsService,
	dreamTeamService *usecase.DreamTeamService,
	marketService *usecase.MarketService,
	resultsSyncService *usecase.ResultsSyncService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		catalogService:     catalogService,
		teamService:        teamService,
		scoringService:     scoringService,
		statsService:       statsService,
		dreamTeamService:   dreamTeamService,
		marketService:      marketService,
		resultsSyncService: resultsSyncService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type riderDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Team          string `json:"team"`
	Bike          string `json:"bike"`
	Price         int64  `json:"price"`
	InitialPrice  int64  `json:"initialPrice"`
	Condition     string `json:"condition,omitempty"`
	ConstructorID string `json:"constructorId,omitempty"`
	IsOfficial    bool   `json:"isOfficial"`
}

type constructorDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Price        int64  `json:"price"`
	InitialPrice int64  `json:"initialPrice"`
}

type raceDTO struct {
	ID             string `json:"id"`
	Round          int    `json:"round"`
	GPName         string `json:"gpName"`
	Location       string `json:"location"`
	RaceDate       string `json:"raceDate"`
	PricesAdjusted bool   `json:"pricesAdjusted"`
}

type participantDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	JoinedAt string `json:"joinedAt"`
}

func riderToDTO(v rider.Rider) riderDTO {
	return riderDTO{
		ID:            v.ID,
		Name:          v.Name,
		Team:          v.Team,
		Bike:          v.Bike,
		Price:         v.Price,
		InitialPrice:  v.InitialPrice,
		Condition:     v.Condition,
		ConstructorID: v.ConstructorID,
		IsOfficial:    v.IsOfficial,
	}
}

func constructorToDTO(v constructor.Constructor) constructorDTO {
	return constructorDTO{
		ID:           v.ID,
		Name:         v.Name,
		Price:        v.Price,
		InitialPrice: v.InitialPrice,
	}
}

func raceToDTO(v race.Race) raceDTO {
	return raceDTO{
		ID:             v.ID,
		Round:          v.Round,
		GPName:         v.GPName,
		Location:       v.Location,
		RaceDate:       v.RaceDate.UTC().Format(time.RFC3339),
		PricesAdjusted: v.PricesAdjusted,
	}
}

func participantToDTO(v participant.Participant) participantDTO {
	return participantDTO{
		ID:       v.ID,
		Name:     v.Name,
		JoinedAt: v.JoinedAt.UTC().Format(time.RFC3339),
	}
}
