package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/eloquence-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/eloquence-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/eloquence-api/internal/domain"
)

type SettingsService interface {
	Current(ctx context.Context) (domain.EventSettings, error)
	Update(ctx context.Context, req request.UpdateSettingsRequest) (domain.EventSettings, error)
}

type SettingsHandler struct {
	svc SettingsService
}

func NewSettingsHandler(svc SettingsService) *SettingsHandler {
	return &SettingsHandler{
		svc: svc,
	}
}

// HandleGetSettings godoc
// @Summary      Get event settings
// @Tags         admin
// @Produce      json
// @Success      200  {object}  domain.EventSettings
// @Failure      500  {object}  response.Err
// @Router       /admin/settings [get]
// @Security BearerAuth
func (h *SettingsHandler) HandleGetSettings(ctx *gin.Context) {
	settings, err := h.svc.Current(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "HandleGetSettings -> h.svc.Current", err)
		return
	}

	ctx.JSON(http.StatusOK, settings)
}

// HandleUpdateSettings godoc
// @Summary      Update event settings
// @Description  Replaces texts, capacities, deadlines and external form links.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body      request.UpdateSettingsRequest  true  "settings"
// @Success      200      {object}  domain.EventSettings
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/settings [patch]
// @Security BearerAuth
func (h *SettingsHandler) HandleUpdateSettings(ctx *gin.Context) {
	var req request.UpdateSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	settings, err := h.svc.Update(ctx.Request.Context(), req)
	if err != nil {
		renderServiceErr(ctx, "HandleUpdateSettings -> h.svc.Update", err)
		return
	}

	ctx.JSON(http.StatusOK, settings)
}
