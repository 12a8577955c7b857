package httpapi

import (
	"net/http"
	"strings"
)

type dreamTeamDTO struct {
	RaceID        string   `json:"raceId"`
	RiderIDs      []string `json:"riderIds"`
	ConstructorID string   `json:"constructorId,omitempty"`
	Score         float64  `json:"score"`
	Cost          int64    `json:"cost"`
	// Approximate marks the greedy heuristic; the UI must not present the
	// team as the provable optimum.
	Approximate bool `json:"approximate"`
}

func (h *Handler) GetDreamTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDreamTeam")
	defer span.End()

	raceID := strings.TrimSpace(r.PathValue("raceID"))
	team, err := h.dreamTeamService.Compute(ctx, raceID)
	if err != nil {
		h.logger.WarnContext(ctx, "compute dream team failed", "race_id", raceID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if team == nil {
		writeSuccess(ctx, w, http.StatusOK, nil)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dreamTeamDTO{
		RaceID:        raceID,
		RiderIDs:      append([]string(nil), team.RiderIDs...),
		ConstructorID: team.ConstructorID,
		Score:         team.Score,
		Cost:          team.Cost,
		Approximate:   true,
	})
}
