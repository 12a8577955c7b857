package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/gridrivals/fantasy-motorsport/internal/domain/market"
	"github.com/gridrivals/fantasy-motorsport/internal/usecase"
)

type priceChangeDTO struct {
	ID       string `json:"id"`
	OldPrice int64  `json:"oldPrice"`
	NewPrice int64  `json:"newPrice"`
}

type marketAdjustmentDTO struct {
	RiderPrices       []priceChangeDTO `json:"riderPrices"`
	ConstructorPrices []priceChangeDTO `json:"constructorPrices"`
	ProcessedRaceIDs  []string         `json:"processedRaceIds"`
}

// RunMarketAdjustJob triggers the price-adjustment fold. A null body in the
// response means the season was already caught up.
func (h *Handler) RunMarketAdjustJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunMarketAdjustJob")
	defer span.End()

	adjustment, err := h.marketService.AdjustPrices(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "market adjust job failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	if adjustment == nil {
		writeSuccess(ctx, w, http.StatusOK, nil)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, marketAdjustmentToDTO(adjustment))
}

type resultsSyncRequest struct {
	RaceIDs    []string `json:"raceIds"`
	Season     int      `json:"season" validate:"omitempty,gte=1949"`
	MaxWorkers int      `json:"maxWorkers" validate:"omitempty,gte=1,lte=16"`
	DryRun     bool     `json:"dryRun"`
}

func (h *Handler) RunResultsSyncJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunResultsSyncJob")
	defer span.End()

	var req resultsSyncRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.resultsSyncService.Sync(ctx, usecase.SyncResultsInput{
		RaceIDs:    req.RaceIDs,
		Season:     req.Season,
		MaxWorkers: req.MaxWorkers,
		DryRun:     req.DryRun,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "results sync job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

type updateMarketDeadlineRequest struct {
	// Deadline in RFC3339; empty clears the deadline and keeps the market
	// open indefinitely.
	Deadline string `json:"deadline"`
}

func (h *Handler) UpdateMarketDeadline(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMarketDeadline")
	defer span.End()

	var req updateMarketDeadlineRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	var deadline time.Time
	if trimmed := strings.TrimSpace(req.Deadline); trimmed != "" {
		parsed, err := time.Parse(time.RFC3339, trimmed)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: deadline must be RFC3339: %v", usecase.ErrInvalidInput, err))
			return
		}
		deadline = parsed
	}

	updated, err := h.catalogService.UpdateMarketDeadline(ctx, deadline)
	if err != nil {
		h.logger.ErrorContext(ctx, "update market deadline failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	dto := marketStatusDTO{Open: updated.MarketOpen(time.Now().UTC())}
	if !updated.MarketDeadline.IsZero() {
		dto.Deadline = updated.MarketDeadline.UTC().Format(time.RFC3339)
	}
	writeSuccess(ctx, w, http.StatusOK, dto)
}

func marketAdjustmentToDTO(v *market.Adjustment) marketAdjustmentDTO {
	dto := marketAdjustmentDTO{
		RiderPrices:       make([]priceChangeDTO, 0, len(v.RiderPrices)),
		ConstructorPrices: make([]priceChangeDTO, 0, len(v.ConstructorPrices)),
		ProcessedRaceIDs:  append([]string(nil), v.ProcessedRaceIDs...),
	}
	for _, change := range v.RiderPrices {
		dto.RiderPrices = append(dto.RiderPrices, priceChangeDTO(change))
	}
	for _, change := range v.ConstructorPrices {
		dto.ConstructorPrices = append(dto.ConstructorPrices, priceChangeDTO(change))
	}
	return dto
}
