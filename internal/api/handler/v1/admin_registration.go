package v1

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/eloquence-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/eloquence-api/internal/domain"
	"github.com/vietanh2810/eloquence-api/internal/service"
)

type RegistrationService interface {
	ListSpectators(ctx context.Context) (service.SpectatorList, error)
	ListCandidates(ctx context.Context) ([]domain.CandidateRegistration, error)
	DeleteSpectator(ctx context.Context, id uint) error
	DeleteCandidate(ctx context.Context, id uint) error
	OpenCandidateDocument(ctx context.Context, id uint, kind domain.DocumentKind) (io.ReadCloser, string, error)
}

type AdminRegistrationHandler struct {
	svc RegistrationService
}

func NewAdminRegistrationHandler(svc RegistrationService) *AdminRegistrationHandler {
	return &AdminRegistrationHandler{
		svc: svc,
	}
}

// HandleListSpectators godoc
// @Summary      List spectator registrations
// @Description  Newest first, with the number of seats taken.
// @Tags         admin
// @Produce      json
// @Success      200  {object}  service.SpectatorList
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/registrations/spectators [get]
// @Security BearerAuth
func (h *AdminRegistrationHandler) HandleListSpectators(ctx *gin.Context) {
	list, err := h.svc.ListSpectators(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "HandleListSpectators -> h.svc.ListSpectators", err)
		return
	}

	ctx.JSON(http.StatusOK, list)
}

// HandleListCandidates godoc
// @Summary      List candidate registrations
// @Tags         admin
// @Produce      json
// @Success      200  {array}   domain.CandidateRegistration
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/registrations/candidates [get]
// @Security BearerAuth
func (h *AdminRegistrationHandler) HandleListCandidates(ctx *gin.Context) {
	candidates, err := h.svc.ListCandidates(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "HandleListCandidates -> h.svc.ListCandidates", err)
		return
	}

	ctx.JSON(http.StatusOK, candidates)
}

// HandleDeleteSpectator godoc
// @Summary      Delete a spectator registration
// @Description  Frees the registrant's seat and those of their accompanying people.
// @Tags         admin
// @Param        id   path      int  true  "registration ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/registrations/spectators/{id} [delete]
// @Security BearerAuth
func (h *AdminRegistrationHandler) HandleDeleteSpectator(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteSpectator(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("spectator registration", "id", id))
			return
		}

		renderServiceErr(ctx, "HandleDeleteSpectator -> h.svc.DeleteSpectator", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleDeleteCandidate godoc
// @Summary      Delete a candidate registration
// @Description  Removes the registration and its stored documents.
// @Tags         admin
// @Param        id   path      int  true  "registration ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/registrations/candidates/{id} [delete]
// @Security BearerAuth
func (h *AdminRegistrationHandler) HandleDeleteCandidate(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteCandidate(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("candidate registration", "id", id))
			return
		}

		renderServiceErr(ctx, "HandleDeleteCandidate -> h.svc.DeleteCandidate", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleDownloadCandidateDocument godoc
// @Summary      Download a candidate document
// @Tags         admin
// @Produce      application/pdf,image/jpeg,image/png,image/webp
// @Param        id    path      int     true  "registration ID"
// @Param        kind  path      string  true  "document kind"  Enums(text, proof)
// @Success      200   {file}    file
// @Failure      400   {object}  response.Err
// @Failure      401   {object}  response.Err
// @Failure      403   {object}  response.Err
// @Failure      404   {object}  response.Err
// @Failure      500   {object}  response.Err
// @Router       /admin/registrations/candidates/{id}/documents/{kind} [get]
// @Security BearerAuth
func (h *AdminRegistrationHandler) HandleDownloadCandidateDocument(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	kind := domain.DocumentKind(ctx.Param("kind"))
	if kind != domain.DocumentText && kind != domain.DocumentProof {
		response.RenderErr(ctx, response.ErrNotFound("document", "kind", kind))
		return
	}

	rc, storedPath, err := h.svc.OpenCandidateDocument(ctx.Request.Context(), id, kind)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("candidate registration", "id", id))
		case errors.Is(err, service.ErrDocumentNotFound):
			response.RenderErr(ctx, response.ErrNotFound("document", "kind", kind))
		default:
			renderServiceErr(ctx, "HandleDownloadCandidateDocument -> h.svc.OpenCandidateDocument", err)
		}
		return
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		err = fmt.Errorf("HandleDownloadCandidateDocument -> io.ReadAll -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	filename := fmt.Sprintf("candidate-%d-%s%s", id, kind, path.Ext(storedPath))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, mimetype.Detect(data).String(), data)
}
