package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/eloquence-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/eloquence-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/eloquence-api/internal/domain"
	"github.com/vietanh2810/eloquence-api/internal/service"
)

type FoodService interface {
	List(ctx context.Context) ([]domain.FoodOption, error)
	ListActive(ctx context.Context) ([]domain.FoodOption, error)
	Create(ctx context.Context, req request.FoodOptionRequest) (domain.FoodOption, error)
	Update(ctx context.Context, id uint, req request.FoodOptionRequest) (domain.FoodOption, error)
	Delete(ctx context.Context, id uint) error
}

type FoodHandler struct {
	svc FoodService
}

func NewFoodHandler(svc FoodService) *FoodHandler {
	return &FoodHandler{
		svc: svc,
	}
}

// HandleListActiveFoodOptions godoc
// @Summary      List food options
// @Description  Active options in display order.
// @Tags         food
// @Produce      json
// @Success      200  {array}   domain.FoodOption
// @Failure      500  {object}  response.Err
// @Router       /food-options [get]
func (h *FoodHandler) HandleListActiveFoodOptions(ctx *gin.Context) {
	options, err := h.svc.ListActive(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "HandleListActiveFoodOptions -> h.svc.ListActive", err)
		return
	}

	ctx.JSON(http.StatusOK, options)
}

// HandleListFoodOptions godoc
// @Summary      List all food options
// @Description  Every option including inactive ones, with the quantity ordered so far.
// @Tags         admin
// @Produce      json
// @Success      200  {array}   domain.FoodOption
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/food-options [get]
// @Security BearerAuth
func (h *FoodHandler) HandleListFoodOptions(ctx *gin.Context) {
	options, err := h.svc.List(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "HandleListFoodOptions -> h.svc.List", err)
		return
	}

	ctx.JSON(http.StatusOK, options)
}

// HandleCreateFoodOption godoc
// @Summary      Create a food option
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body      request.FoodOptionRequest  true  "food option"
// @Success      201      {object}  domain.FoodOption
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/food-options [post]
// @Security BearerAuth
func (h *FoodHandler) HandleCreateFoodOption(ctx *gin.Context) {
	var req request.FoodOptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	option, err := h.svc.Create(ctx.Request.Context(), req)
	if err != nil {
		renderServiceErr(ctx, "HandleCreateFoodOption -> h.svc.Create", err)
		return
	}

	ctx.JSON(http.StatusCreated, option)
}

// HandleUpdateFoodOption godoc
// @Summary      Update a food option
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path      int                        true  "food option ID"
// @Param        request  body      request.FoodOptionRequest  true  "food option"
// @Success      200      {object}  domain.FoodOption
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/food-options/{id} [patch]
// @Security BearerAuth
func (h *FoodHandler) HandleUpdateFoodOption(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req request.FoodOptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	option, err := h.svc.Update(ctx.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrFoodOptionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("food option", "id", id))
			return
		}

		renderServiceErr(ctx, "HandleUpdateFoodOption -> h.svc.Update", err)
		return
	}

	ctx.JSON(http.StatusOK, option)
}

// HandleDeleteFoodOption godoc
// @Summary      Delete a food option
// @Description  Existing registrations keep the label they were admitted with.
// @Tags         admin
// @Param        id   path      int  true  "food option ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/food-options/{id} [delete]
// @Security BearerAuth
func (h *FoodHandler) HandleDeleteFoodOption(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrFoodOptionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("food option", "id", id))
			return
		}

		renderServiceErr(ctx, "HandleDeleteFoodOption -> h.svc.Delete", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
