package v1

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/eloquence-api/internal/domain"
	"github.com/vietanh2810/eloquence-api/internal/service"
)

type fakeRegistrations struct {
	deleteErr error
	openErr   error

	deleted []uint
}

func (f *fakeRegistrations) ListSpectators(context.Context) (service.SpectatorList, error) {
	return service.SpectatorList{
		Registrations: []domain.SpectatorRegistration{{ID: 1, FullName: "Marie Curie", AccompanyingCount: 2}},
		SeatsUsed:     3,
	}, nil
}

func (f *fakeRegistrations) ListCandidates(context.Context) ([]domain.CandidateRegistration, error) {
	return []domain.CandidateRegistration{{ID: 4, FullName: "Ada Lovelace"}}, nil
}

func (f *fakeRegistrations) DeleteSpectator(_ context.Context, id uint) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func (f *fakeRegistrations) DeleteCandidate(_ context.Context, id uint) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func (f *fakeRegistrations) OpenCandidateDocument(_ context.Context, id uint, kind domain.DocumentKind) (io.ReadCloser, string, error) {
	if f.openErr != nil {
		return nil, "", f.openErr
	}

	return io.NopCloser(bytes.NewReader(pdfBytes)), "candidates/texts/0b6d.pdf", nil
}

func newAdminRegistrationRouter(svc RegistrationService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewAdminRegistrationHandler(svc)
	router := gin.New()
	router.GET("/registrations/spectators", h.HandleListSpectators)
	router.GET("/registrations/candidates", h.HandleListCandidates)
	router.DELETE("/registrations/spectators/:id", h.HandleDeleteSpectator)
	router.DELETE("/registrations/candidates/:id", h.HandleDeleteCandidate)
	router.GET("/registrations/candidates/:id/documents/:kind", h.HandleDownloadCandidateDocument)

	return router
}

func serve(router *gin.Engine, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, nil))

	return rec
}

func TestAdminRegistrationHandler_List(t *testing.T) {
	router := newAdminRegistrationRouter(&fakeRegistrations{})

	rec := serve(router, http.MethodGet, "/registrations/spectators")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"seats_used":3`)

	rec = serve(router, http.MethodGet, "/registrations/candidates")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ada Lovelace")
}

func TestAdminRegistrationHandler_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		svc := &fakeRegistrations{}
		rec := serve(newAdminRegistrationRouter(svc), http.MethodDelete, "/registrations/spectators/12")

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, []uint{12}, svc.deleted)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeRegistrations{deleteErr: service.ErrRegistrationNotFound}
		rec := serve(newAdminRegistrationRouter(svc), http.MethodDelete, "/registrations/candidates/12")

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "not_found", decodeErr(t, rec).Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		svc := &fakeRegistrations{}
		router := newAdminRegistrationRouter(svc)

		assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodDelete, "/registrations/spectators/abc").Code)
		assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodDelete, "/registrations/spectators/0").Code)
		assert.Empty(t, svc.deleted)
	})
}

func TestAdminRegistrationHandler_HandleDownloadCandidateDocument(t *testing.T) {
	t.Run("attachment", func(t *testing.T) {
		rec := serve(newAdminRegistrationRouter(&fakeRegistrations{}), http.MethodGet, "/registrations/candidates/4/documents/text")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="candidate-4-text.pdf"`, rec.Header().Get("Content-Disposition"))
		assert.Equal(t, pdfBytes, rec.Body.Bytes())
	})

	t.Run("unknown kind", func(t *testing.T) {
		rec := serve(newAdminRegistrationRouter(&fakeRegistrations{}), http.MethodGet, "/registrations/candidates/4/documents/cv")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing document", func(t *testing.T) {
		svc := &fakeRegistrations{openErr: service.ErrDocumentNotFound}
		rec := serve(newAdminRegistrationRouter(svc), http.MethodGet, "/registrations/candidates/4/documents/proof")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
