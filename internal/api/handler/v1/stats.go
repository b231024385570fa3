package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/eloquence-api/internal/domain"
)

type StatsService interface {
	Dashboard(ctx context.Context) (domain.Dashboard, error)
	Recap(ctx context.Context) (domain.Recap, error)
}

type StatsHandler struct {
	svc StatsService
}

func NewStatsHandler(svc StatsService) *StatsHandler {
	return &StatsHandler{
		svc: svc,
	}
}

// HandleDashboard godoc
// @Summary      Dashboard counters
// @Tags         admin
// @Produce      json
// @Success      200  {object}  domain.Dashboard
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/dashboard [get]
// @Security BearerAuth
func (h *StatsHandler) HandleDashboard(ctx *gin.Context) {
	dashboard, err := h.svc.Dashboard(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "HandleDashboard -> h.svc.Dashboard", err)
		return
	}

	ctx.JSON(http.StatusOK, dashboard)
}

// HandleRecap godoc
// @Summary      Event recap
// @Description  Dashboard counters plus candidate breakdowns and food orders.
// @Tags         admin
// @Produce      json
// @Success      200  {object}  domain.Recap
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/recap [get]
// @Security BearerAuth
func (h *StatsHandler) HandleRecap(ctx *gin.Context) {
	recap, err := h.svc.Recap(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "HandleRecap -> h.svc.Recap", err)
		return
	}

	ctx.JSON(http.StatusOK, recap)
}
