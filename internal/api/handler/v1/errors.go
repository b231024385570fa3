package v1

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/eloquence-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/eloquence-api/internal/service"
)

// renderServiceErr maps the errors shared by every service to a response.
// Resource specific not found errors are handled by the callers first.
func renderServiceErr(ctx *gin.Context, op string, err error) {
	var (
		validationErr   *service.ValidationError
		externalFormErr *service.ExternalFormError
		rejectionErr    *service.RejectionError
	)

	field := ""
	if errors.As(err, &rejectionErr) {
		field = rejectionErr.Field
	}

	switch {
	case errors.As(err, &validationErr):
		response.RenderErr(ctx, response.ErrBadRequest(validationErr.Fields))
	case errors.As(err, &externalFormErr):
		respErr := response.ErrConflict("registration_closed", "", service.ErrRegistrationClosed)
		respErr.URL = externalFormErr.URL
		response.RenderErr(ctx, respErr)
	case errors.Is(err, service.ErrRegistrationClosed):
		response.RenderErr(ctx, response.ErrConflict("registration_closed", field, service.ErrRegistrationClosed))
	case errors.Is(err, service.ErrCapacityExceeded):
		response.RenderErr(ctx, response.ErrConflict("capacity_exceeded", field, service.ErrCapacityExceeded))
	case errors.Is(err, service.ErrDuplicateEmail):
		response.RenderErr(ctx, response.ErrConflict("duplicate_email", field, service.ErrDuplicateEmail))
	case errors.Is(err, service.ErrInvalidFoodSelection):
		response.RenderErr(ctx, response.ErrUnprocessable("invalid_food_selection", field, service.ErrInvalidFoodSelection))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%s -> %w", op, err)))
	}
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid %s %q", name, ctx.Param(name))))
		return 0, false
	}

	return uint(id), true
}
