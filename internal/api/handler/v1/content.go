package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/eloquence-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/eloquence-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/eloquence-api/internal/domain"
	"github.com/vietanh2810/eloquence-api/internal/service"
)

type ContentService interface {
	Home(ctx context.Context) (domain.HomeContent, error)

	ListPartners(ctx context.Context) ([]domain.Partner, error)
	CreatePartner(ctx context.Context, req request.PartnerRequest) (domain.Partner, error)
	UpdatePartner(ctx context.Context, id uint, req request.PartnerRequest) (domain.Partner, error)
	DeletePartner(ctx context.Context, id uint) error

	ListJuryMembers(ctx context.Context) ([]domain.JuryMember, error)
	CreateJuryMember(ctx context.Context, req request.JuryMemberRequest) (domain.JuryMember, error)
	UpdateJuryMember(ctx context.Context, id uint, req request.JuryMemberRequest) (domain.JuryMember, error)
	DeleteJuryMember(ctx context.Context, id uint) error

	ListAfterMovies(ctx context.Context) ([]domain.AfterMovie, error)
	CreateAfterMovie(ctx context.Context, req request.AfterMovieRequest) (domain.AfterMovie, error)
	UpdateAfterMovie(ctx context.Context, id uint, req request.AfterMovieRequest) (domain.AfterMovie, error)
	DeleteAfterMovie(ctx context.Context, id uint) error

	ListPracticalModalities(ctx context.Context) ([]domain.PracticalModality, error)
	CreatePracticalModality(ctx context.Context, req request.PracticalModalityRequest) (domain.PracticalModality, error)
	UpdatePracticalModality(ctx context.Context, id uint, req request.PracticalModalityRequest) (domain.PracticalModality, error)
	DeletePracticalModality(ctx context.Context, id uint) error
}

type ContentHandler struct {
	svc ContentService
}

func NewContentHandler(svc ContentService) *ContentHandler {
	return &ContentHandler{
		svc: svc,
	}
}

// HandleGetHome godoc
// @Summary      Landing page content
// @Description  Latest editions, partners, active jury members and practical information.
// @Tags         content
// @Produce      json
// @Success      200  {object}  domain.HomeContent
// @Failure      500  {object}  response.Err
// @Router       /content [get]
func (h *ContentHandler) HandleGetHome(ctx *gin.Context) {
	home, err := h.svc.Home(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "HandleGetHome -> h.svc.Home", err)
		return
	}

	ctx.JSON(http.StatusOK, home)
}

// HandleListPartners godoc
// @Summary      List partners
// @Tags         content
// @Produce      json
// @Success      200  {array}   domain.Partner
// @Failure      500  {object}  response.Err
// @Router       /partners [get]
func (h *ContentHandler) HandleListPartners(ctx *gin.Context) {
	listContent(ctx, "HandleListPartners", h.svc.ListPartners)
}

// HandleCreatePartner godoc
// @Summary      Create a partner
// @Description  Without sort_order the partner goes after the last one.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body      request.PartnerRequest  true  "partner"
// @Success      201      {object}  domain.Partner
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/partners [post]
// @Security BearerAuth
func (h *ContentHandler) HandleCreatePartner(ctx *gin.Context) {
	createContent(ctx, "HandleCreatePartner", h.svc.CreatePartner)
}

// HandleUpdatePartner godoc
// @Summary      Update a partner
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path      int                     true  "partner ID"
// @Param        request  body      request.PartnerRequest  true  "partner"
// @Success      200      {object}  domain.Partner
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/partners/{id} [patch]
// @Security BearerAuth
func (h *ContentHandler) HandleUpdatePartner(ctx *gin.Context) {
	updateContent(ctx, "HandleUpdatePartner", "partner", h.svc.UpdatePartner)
}

// HandleDeletePartner godoc
// @Summary      Delete a partner
// @Tags         admin
// @Param        id   path      int  true  "partner ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/partners/{id} [delete]
// @Security BearerAuth
func (h *ContentHandler) HandleDeletePartner(ctx *gin.Context) {
	deleteContent(ctx, "HandleDeletePartner", "partner", h.svc.DeletePartner)
}

// HandleListJuryMembers godoc
// @Summary      List jury members
// @Description  Active and inactive members in display order.
// @Tags         admin
// @Produce      json
// @Success      200  {array}   domain.JuryMember
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/jury-members [get]
// @Security BearerAuth
func (h *ContentHandler) HandleListJuryMembers(ctx *gin.Context) {
	listContent(ctx, "HandleListJuryMembers", h.svc.ListJuryMembers)
}

// HandleCreateJuryMember godoc
// @Summary      Create a jury member
// @Description  Members are active unless is_active is false.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body      request.JuryMemberRequest  true  "jury member"
// @Success      201      {object}  domain.JuryMember
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/jury-members [post]
// @Security BearerAuth
func (h *ContentHandler) HandleCreateJuryMember(ctx *gin.Context) {
	createContent(ctx, "HandleCreateJuryMember", h.svc.CreateJuryMember)
}

// HandleUpdateJuryMember godoc
// @Summary      Update a jury member
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path      int                        true  "jury member ID"
// @Param        request  body      request.JuryMemberRequest  true  "jury member"
// @Success      200      {object}  domain.JuryMember
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/jury-members/{id} [patch]
// @Security BearerAuth
func (h *ContentHandler) HandleUpdateJuryMember(ctx *gin.Context) {
	updateContent(ctx, "HandleUpdateJuryMember", "jury member", h.svc.UpdateJuryMember)
}

// HandleDeleteJuryMember godoc
// @Summary      Delete a jury member
// @Tags         admin
// @Param        id   path      int  true  "jury member ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/jury-members/{id} [delete]
// @Security BearerAuth
func (h *ContentHandler) HandleDeleteJuryMember(ctx *gin.Context) {
	deleteContent(ctx, "HandleDeleteJuryMember", "jury member", h.svc.DeleteJuryMember)
}

// HandleListAfterMovies godoc
// @Summary      List past editions
// @Description  Most recent edition first.
// @Tags         admin
// @Produce      json
// @Success      200  {array}   domain.AfterMovie
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/after-movies [get]
// @Security BearerAuth
func (h *ContentHandler) HandleListAfterMovies(ctx *gin.Context) {
	listContent(ctx, "HandleListAfterMovies", h.svc.ListAfterMovies)
}

// HandleCreateAfterMovie godoc
// @Summary      Create a past edition
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body      request.AfterMovieRequest  true  "past edition"
// @Success      201      {object}  domain.AfterMovie
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/after-movies [post]
// @Security BearerAuth
func (h *ContentHandler) HandleCreateAfterMovie(ctx *gin.Context) {
	createContent(ctx, "HandleCreateAfterMovie", h.svc.CreateAfterMovie)
}

// HandleUpdateAfterMovie godoc
// @Summary      Update a past edition
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path      int                        true  "past edition ID"
// @Param        request  body      request.AfterMovieRequest  true  "past edition"
// @Success      200      {object}  domain.AfterMovie
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/after-movies/{id} [patch]
// @Security BearerAuth
func (h *ContentHandler) HandleUpdateAfterMovie(ctx *gin.Context) {
	updateContent(ctx, "HandleUpdateAfterMovie", "after movie", h.svc.UpdateAfterMovie)
}

// HandleDeleteAfterMovie godoc
// @Summary      Delete a past edition
// @Tags         admin
// @Param        id   path      int  true  "past edition ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/after-movies/{id} [delete]
// @Security BearerAuth
func (h *ContentHandler) HandleDeleteAfterMovie(ctx *gin.Context) {
	deleteContent(ctx, "HandleDeleteAfterMovie", "after movie", h.svc.DeleteAfterMovie)
}

// HandleListPracticalModalities godoc
// @Summary      List practical information
// @Tags         admin
// @Produce      json
// @Success      200  {array}   domain.PracticalModality
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/practical-modalities [get]
// @Security BearerAuth
func (h *ContentHandler) HandleListPracticalModalities(ctx *gin.Context) {
	listContent(ctx, "HandleListPracticalModalities", h.svc.ListPracticalModalities)
}

// HandleCreatePracticalModality godoc
// @Summary      Create a practical information entry
// @Description  Without order the entry goes after the last one.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body      request.PracticalModalityRequest  true  "practical information"
// @Success      201      {object}  domain.PracticalModality
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/practical-modalities [post]
// @Security BearerAuth
func (h *ContentHandler) HandleCreatePracticalModality(ctx *gin.Context) {
	createContent(ctx, "HandleCreatePracticalModality", h.svc.CreatePracticalModality)
}

// HandleUpdatePracticalModality godoc
// @Summary      Update a practical information entry
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path      int                               true  "entry ID"
// @Param        request  body      request.PracticalModalityRequest  true  "practical information"
// @Success      200      {object}  domain.PracticalModality
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/practical-modalities/{id} [patch]
// @Security BearerAuth
func (h *ContentHandler) HandleUpdatePracticalModality(ctx *gin.Context) {
	updateContent(ctx, "HandleUpdatePracticalModality", "practical modality", h.svc.UpdatePracticalModality)
}

// HandleDeletePracticalModality godoc
// @Summary      Delete a practical information entry
// @Tags         admin
// @Param        id   path      int  true  "entry ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/practical-modalities/{id} [delete]
// @Security BearerAuth
func (h *ContentHandler) HandleDeletePracticalModality(ctx *gin.Context) {
	deleteContent(ctx, "HandleDeletePracticalModality", "practical modality", h.svc.DeletePracticalModality)
}

func listContent[T any](ctx *gin.Context, op string, list func(context.Context) ([]T, error)) {
	items, err := list(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, op+" -> list", err)
		return
	}

	ctx.JSON(http.StatusOK, items)
}

func createContent[R, T any](ctx *gin.Context, op string, create func(context.Context, R) (T, error)) {
	var req R
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	item, err := create(ctx.Request.Context(), req)
	if err != nil {
		renderServiceErr(ctx, op+" -> create", err)
		return
	}

	ctx.JSON(http.StatusCreated, item)
}

func updateContent[R, T any](ctx *gin.Context, op, resource string, update func(context.Context, uint, R) (T, error)) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req R
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	item, err := update(ctx.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrContentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(resource, "id", id))
			return
		}

		renderServiceErr(ctx, fmt.Sprintf("%s -> update(%d)", op, id), err)
		return
	}

	ctx.JSON(http.StatusOK, item)
}

func deleteContent(ctx *gin.Context, op, resource string, remove func(context.Context, uint) error) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := remove(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrContentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(resource, "id", id))
			return
		}

		renderServiceErr(ctx, fmt.Sprintf("%s -> remove(%d)", op, id), err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
