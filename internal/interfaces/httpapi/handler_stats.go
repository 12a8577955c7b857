package httpapi

import (
	"net/http"

	"github.com/gridrivals/fantasy-motorsport/internal/usecase"
)

type selectionStatDTO struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

type mvpStatDTO struct {
	RiderID     string `json:"riderId"`
	Name        string `json:"name"`
	TotalPoints int    `json:"totalPoints"`
}

type hiddenGemStatDTO struct {
	RiderID        string  `json:"riderId"`
	Name           string  `json:"name"`
	TotalPoints    int     `json:"totalPoints"`
	Price          int64   `json:"price"`
	PointsPerPrice float64 `json:"pointsPerPrice"`
}

type leagueStatsDTO struct {
	MostSelectedRider       *selectionStatDTO `json:"mostSelectedRider,omitempty"`
	MostSelectedConstructor *selectionStatDTO `json:"mostSelectedConstructor,omitempty"`
	MVP                     *mvpStatDTO       `json:"mvp,omitempty"`
	HiddenGem               *hiddenGemStatDTO `json:"hiddenGem,omitempty"`
	AverageRosterCost       float64           `json:"averageRosterCost"`
	RosterHavingCount       int               `json:"rosterHavingCount"`
}

func (h *Handler) GetLeagueStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueStats")
	defer span.End()

	stats, err := h.statsService.ComputeLeagueStats(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "compute league stats failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueStatsToDTO(stats))
}

func leagueStatsToDTO(v usecase.LeagueStats) leagueStatsDTO {
	dto := leagueStatsDTO{
		AverageRosterCost: v.AverageRosterCost,
		RosterHavingCount: v.RosterHavingCount,
	}
	dto.MostSelectedRider = selectionStatToDTO(v.MostSelectedRider)
	dto.MostSelectedConstructor = selectionStatToDTO(v.MostSelectedConstructor)
	if v.MVP != nil {
		dto.MVP = &mvpStatDTO{RiderID: v.MVP.RiderID, Name: v.MVP.Name, TotalPoints: v.MVP.TotalPoints}
	}
	if v.HiddenGem != nil {
		dto.HiddenGem = &hiddenGemStatDTO{
			RiderID:        v.HiddenGem.RiderID,
			Name:           v.HiddenGem.Name,
			TotalPoints:    v.HiddenGem.TotalPoints,
			Price:          v.HiddenGem.Price,
			PointsPerPrice: v.HiddenGem.PointsPerPrice,
		}
	}
	return dto
}

func selectionStatToDTO(v *usecase.SelectionStat) *selectionStatDTO {
	if v == nil {
		return nil
	}
	return &selectionStatDTO{ID: v.ID, Name: v.Name, Count: v.Count, Percent: v.Percent}
}
