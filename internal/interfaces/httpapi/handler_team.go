package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/gridrivals/fantasy-motorsport/internal/domain/roster"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/snapshot"
	"github.com/gridrivals/fantasy-motorsport/internal/usecase"
)

type saveTeamRequest struct {
	RiderIDs      []string `json:"riderIds" validate:"required,min=1,dive,required"`
	ConstructorID string   `json:"constructorId"`
	RaceID        string   `json:"raceId"`
}

type rosterDTO struct {
	ParticipantID string   `json:"participantId"`
	RiderIDs      []string `json:"riderIds"`
	ConstructorID string   `json:"constructorId,omitempty"`
	Cost          int64    `json:"cost"`
	Empty         bool     `json:"empty"`
}

type snapshotDTO struct {
	ID            string   `json:"id"`
	ParticipantID string   `json:"participantId"`
	RiderIDs      []string `json:"riderIds"`
	ConstructorID string   `json:"constructorId,omitempty"`
	RaceID        string   `json:"raceId,omitempty"`
	CreatedAt     string   `json:"createdAt"`
}

func (h *Handler) GetCurrentTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentTeam")
	defer span.End()

	participantID := strings.TrimSpace(r.PathValue("participantID"))
	resolved, err := h.teamService.ResolveCurrent(ctx, participantID)
	if err != nil {
		h.logger.WarnContext(ctx, "resolve current team failed", "participant_id", participantID, "error", err)
		writeError(ctx, w, err)
		return
	}

	dto, err := h.rosterToDTO(r, participantID, resolved)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dto)
}

func (h *Handler) GetTeamForRace(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamForRace")
	defer span.End()

	participantID := strings.TrimSpace(r.PathValue("participantID"))
	raceID := strings.TrimSpace(r.PathValue("raceID"))
	resolved, err := h.teamService.ResolveForRace(ctx, participantID, raceID)
	if err != nil {
		h.logger.WarnContext(ctx, "resolve team for race failed",
			"participant_id", participantID, "race_id", raceID, "error", err)
		writeError(ctx, w, err)
		return
	}

	dto, err := h.rosterToDTO(r, participantID, resolved)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dto)
}

func (h *Handler) SaveTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveTeam")
	defer span.End()

	participantID := strings.TrimSpace(r.PathValue("participantID"))

	var req saveTeamRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	saved, err := h.teamService.SaveTeam(ctx, usecase.SaveTeamInput{
		ParticipantID: participantID,
		RiderIDs:      req.RiderIDs,
		ConstructorID: req.ConstructorID,
		RaceID:        req.RaceID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save team failed", "participant_id", participantID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshotToDTO(saved))
}

func (h *Handler) ListTeamHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamHistory")
	defer span.End()

	participantID := strings.TrimSpace(r.PathValue("participantID"))
	snapshots, err := h.teamService.ListSnapshots(ctx, participantID)
	if err != nil {
		h.logger.WarnContext(ctx, "list team history failed", "participant_id", participantID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]snapshotDTO, 0, len(snapshots))
	for _, item := range snapshots {
		items = append(items, snapshotToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveParticipant")
	defer span.End()

	participantID := strings.TrimSpace(r.PathValue("participantID"))
	if err := h.teamService.RemoveParticipant(ctx, participantID); err != nil {
		h.logger.WarnContext(ctx, "remove participant failed", "participant_id", participantID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"participantId": participantID, "status": "removed"})
}

// rosterToDTO prices the resolved roster against the current market.
func (h *Handler) rosterToDTO(r *http.Request, participantID string, resolved roster.Roster) (rosterDTO, error) {
	ctx := r.Context()

	dto := rosterDTO{
		ParticipantID: participantID,
		RiderIDs:      append([]string(nil), resolved.RiderIDs...),
		ConstructorID: resolved.ConstructorID,
		Empty:         resolved.IsEmpty(),
	}
	if dto.RiderIDs == nil {
		dto.RiderIDs = []string{}
	}
	if resolved.IsEmpty() {
		return dto, nil
	}

	riders, err := h.catalogService.ListRiders(ctx)
	if err != nil {
		return rosterDTO{}, err
	}
	constructors, err := h.catalogService.ListConstructors(ctx)
	if err != nil {
		return rosterDTO{}, err
	}
	dto.Cost = roster.Cost(resolved, riders, constructors)

	return dto, nil
}

func snapshotToDTO(item snapshot.TeamSnapshot) snapshotDTO {
	return snapshotDTO{
		ID:            item.ID,
		ParticipantID: item.ParticipantID,
		RiderIDs:      append([]string(nil), item.RiderIDs...),
		ConstructorID: item.ConstructorID,
		RaceID:        item.RaceID,
		CreatedAt:     item.CreatedAt.UTC().Format(time.RFC3339),
	}
}
