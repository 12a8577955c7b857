package httpapi

import (
	"net/http"
	"time"
)

func (h *Handler) ListRiders(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRiders")
	defer span.End()

	riders, err := h.catalogService.ListRiders(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list riders failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]riderDTO, 0, len(riders))
	for _, item := range riders {
		items = append(items, riderToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListConstructors(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListConstructors")
	defer span.End()

	constructors, err := h.catalogService.ListConstructors(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list constructors failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]constructorDTO, 0, len(constructors))
	for _, item := range constructors {
		items = append(items, constructorToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListRaces(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRaces")
	defer span.End()

	races, err := h.catalogService.ListRaces(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list races failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]raceDTO, 0, len(races))
	for _, item := range races {
		items = append(items, raceToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListParticipants")
	defer span.End()

	participants, err := h.catalogService.ListParticipants(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list participants failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]participantDTO, 0, len(participants))
	for _, item := range participants {
		items = append(items, participantToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type marketStatusDTO struct {
	Open     bool   `json:"open"`
	Deadline string `json:"deadline,omitempty"`
}

func (h *Handler) GetMarketStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMarketStatus")
	defer span.End()

	status, err := h.catalogService.GetMarketStatus(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get market status failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	dto := marketStatusDTO{Open: status.Open}
	if !status.Deadline.IsZero() {
		dto.Deadline = status.Deadline.UTC().Format(time.RFC3339)
	}

	writeSuccess(ctx, w, http.StatusOK, dto)
}
