package v1

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/eloquence-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/eloquence-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/eloquence-api/internal/domain"
	"github.com/vietanh2810/eloquence-api/internal/storage"
)

const multipartOverhead = 1 << 20

type AdmissionService interface {
	RegisterSpectator(ctx context.Context, req request.SpectatorRegistrationRequest) (domain.SpectatorRegistration, domain.Availability, error)
	RegisterCandidate(ctx context.Context, req request.CandidateRegistrationRequest) (domain.CandidateRegistration, domain.Availability, error)
}

type RegistrationHandler struct {
	svc            AdmissionService
	maxUploadBytes int64
}

func NewRegistrationHandler(svc AdmissionService, maxUploadBytes int64) *RegistrationHandler {
	return &RegistrationHandler{
		svc:            svc,
		maxUploadBytes: maxUploadBytes,
	}
}

// HandleRegisterSpectator godoc
// @Summary      Register a spectator
// @Description  Admits the registrant and their accompanying people if enough seats remain.
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Param        request  body      request.SpectatorRegistrationRequest  true  "registration"
// @Success      201      {object}  response.SpectatorRegistrationResponse
// @Failure      400      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /registrations/spectators [post]
func (h *RegistrationHandler) HandleRegisterSpectator(ctx *gin.Context) {
	var req request.SpectatorRegistrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	registration, availability, err := h.svc.RegisterSpectator(ctx.Request.Context(), req)
	if err != nil {
		renderServiceErr(ctx, "HandleRegisterSpectator -> h.svc.RegisterSpectator", err)
		return
	}

	ctx.JSON(http.StatusCreated, response.SpectatorRegistrationResponse{
		Registration: registration,
		Availability: availability,
	})
}

// HandleRegisterCandidate godoc
// @Summary      Register a candidate
// @Description  Admits a candidate with their statement (PDF) and proof (PDF or image) if a slot remains.
// @Tags         registrations
// @Accept       multipart/form-data
// @Produce      json
// @Param        first_name      formData  string  true   "first name"
// @Param        last_name       formData  string  true   "last name"
// @Param        email           formData  string  true   "email"
// @Param        phone           formData  string  true   "phone"
// @Param        faculty         formData  string  true   "faculty"
// @Param        study_year      formData  string  false  "study year"
// @Param        accepted_rgpd   formData  bool    true   "privacy policy accepted"
// @Param        accepted_rules  formData  bool    true   "rules accepted"
// @Param        text_pdf        formData  file    true   "statement"
// @Param        proof_pdf       formData  file    true   "proof of enrolment"
// @Success      201             {object}  response.CandidateRegistrationResponse
// @Failure      400             {object}  response.Err
// @Failure      409             {object}  response.Err
// @Failure      500             {object}  response.Err
// @Router       /registrations/candidates [post]
func (h *RegistrationHandler) HandleRegisterCandidate(ctx *gin.Context) {
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, 2*(h.maxUploadBytes+1)+multipartOverhead)

	var req request.CandidateRegistrationRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var err error
	if req.Text, err = h.readDocument(ctx, "text_pdf"); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if req.Proof, err = h.readDocument(ctx, "proof_pdf"); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	registration, availability, err := h.svc.RegisterCandidate(ctx.Request.Context(), req)
	if err != nil {
		renderServiceErr(ctx, "HandleRegisterCandidate -> h.svc.RegisterCandidate", err)
		return
	}

	ctx.JSON(http.StatusCreated, response.CandidateRegistrationResponse{
		Registration: registration,
		Availability: availability,
	})
}

// readDocument reads at most one byte more than the upload limit so that the
// service can tell an oversized file apart. A missing file yields an empty
// document, reported by validation.
func (h *RegistrationHandler) readDocument(ctx *gin.Context, field string) (domain.Document, error) {
	fh, err := ctx.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return domain.Document{}, nil
		}

		return domain.Document{}, fmt.Errorf("%s: %w", field, err)
	}

	f, err := fh.Open()
	if err != nil {
		return domain.Document{}, fmt.Errorf("%s: %w", field, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxUploadBytes+1))
	if err != nil {
		return domain.Document{}, fmt.Errorf("%s: %w", field, err)
	}

	return storage.Sniff(fh.Filename, data), nil
}
