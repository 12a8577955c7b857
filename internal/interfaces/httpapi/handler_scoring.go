package httpapi

import (
	"net/http"
	"strings"

	"github.com/gridrivals/fantasy-motorsport/internal/domain/scoring"
	"github.com/gridrivals/fantasy-motorsport/internal/usecase"
)

type standingDTO struct {
	ParticipantID string  `json:"participantId"`
	Name          string  `json:"name"`
	Score         float64 `json:"score"`
	Rank          int     `json:"rank"`
}

type riderScoreDTO struct {
	RiderID      string `json:"riderId"`
	Points       int    `json:"points"`
	MainPoints   int    `json:"mainPoints"`
	SprintPoints int    `json:"sprintPoints"`
}

type constructorScoreDTO struct {
	ConstructorID  string   `json:"constructorId"`
	Points         float64  `json:"points"`
	TopTwoRiderIDs []string `json:"topTwoRiderIds"`
}

type breakdownDTO struct {
	ParticipantID string               `json:"participantId"`
	RaceID        string               `json:"raceId"`
	RiderScores   []riderScoreDTO      `json:"riderScores"`
	Constructor   *constructorScoreDTO `json:"constructor,omitempty"`
	Total         float64              `json:"total"`
}

// ListStandings serves both views behind one route: the default general view
// accumulates every race, while view=<raceID> scores that race alone.
func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStandings")
	defer span.End()

	view := strings.TrimSpace(r.URL.Query().Get("view"))
	standings, err := h.scoringService.ComputeStandings(ctx, view)
	if err != nil {
		h.logger.WarnContext(ctx, "compute standings failed", "view", view, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]standingDTO, 0, len(standings))
	for _, item := range standings {
		items = append(items, standingDTO{
			ParticipantID: item.ParticipantID,
			Name:          item.Name,
			Score:         item.Score,
			Rank:          item.Rank,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetRaceBreakdown(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRaceBreakdown")
	defer span.End()

	participantID := strings.TrimSpace(r.PathValue("participantID"))
	raceID := strings.TrimSpace(r.PathValue("raceID"))
	breakdown, err := h.scoringService.ScoreParticipantRace(ctx, participantID, raceID)
	if err != nil {
		h.logger.WarnContext(ctx, "score participant race failed",
			"participant_id", participantID, "race_id", raceID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, breakdownToDTO(breakdown))
}

func breakdownToDTO(v usecase.RosterBreakdown) breakdownDTO {
	dto := breakdownDTO{
		ParticipantID: v.ParticipantID,
		RaceID:        v.RaceID,
		RiderScores:   make([]riderScoreDTO, 0, len(v.Breakdown.RiderScores)),
		Total:         v.Breakdown.Total,
	}
	for _, score := range v.Breakdown.RiderScores {
		dto.RiderScores = append(dto.RiderScores, riderScoreDTO{
			RiderID:      score.RiderID,
			Points:       score.Points,
			MainPoints:   score.MainPoints,
			SprintPoints: score.SprintPoints,
		})
	}
	dto.Constructor = constructorScoreToDTO(v.Breakdown.Constructor)
	return dto
}

func constructorScoreToDTO(v *scoring.ConstructorScore) *constructorScoreDTO {
	if v == nil {
		return nil
	}
	return &constructorScoreDTO{
		ConstructorID:  v.ConstructorID,
		Points:         v.Points,
		TopTwoRiderIDs: append([]string(nil), v.TopTwoRiderIDs...),
	}
}
