package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/eloquence-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/eloquence-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/eloquence-api/internal/domain"
	"github.com/vietanh2810/eloquence-api/internal/service"
)

var (
	pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n%%EOF\n")
	pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
)

type fakeAdmission struct {
	err error

	spectator request.SpectatorRegistrationRequest
	candidate request.CandidateRegistrationRequest
}

func (f *fakeAdmission) RegisterSpectator(_ context.Context, req request.SpectatorRegistrationRequest) (domain.SpectatorRegistration, domain.Availability, error) {
	f.spectator = req
	if f.err != nil {
		return domain.SpectatorRegistration{}, domain.Availability{}, f.err
	}

	return domain.SpectatorRegistration{ID: 7, FullName: req.FullName, AccompanyingCount: req.AccompanyingCount},
		domain.Availability{Pool: domain.PoolSpectators, Capacity: 10, Used: 1 + req.AccompanyingCount, Remaining: 9 - req.AccompanyingCount, Open: true},
		nil
}

func (f *fakeAdmission) RegisterCandidate(_ context.Context, req request.CandidateRegistrationRequest) (domain.CandidateRegistration, domain.Availability, error) {
	f.candidate = req
	if f.err != nil {
		return domain.CandidateRegistration{}, domain.Availability{}, f.err
	}

	return domain.CandidateRegistration{ID: 3, FullName: req.FullName(), Email: req.NormalizedEmail()},
		domain.Availability{Pool: domain.PoolCandidates, Capacity: 5, Used: 1, Remaining: 4, Open: true},
		nil
}

func newRegistrationRouter(svc AdmissionService, maxUploadBytes int64) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewRegistrationHandler(svc, maxUploadBytes)
	router := gin.New()
	router.POST("/registrations/spectators", h.HandleRegisterSpectator)
	router.POST("/registrations/candidates", h.HandleRegisterCandidate)

	return router
}

func decodeErr(t *testing.T, rec *httptest.ResponseRecorder) response.Err {
	t.Helper()

	var body response.Err
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestRegistrationHandler_HandleRegisterSpectator(t *testing.T) {
	svc := &fakeAdmission{}
	router := newRegistrationRouter(svc, 1024)

	body := `{
		"full_name": "Marie Curie",
		"email": "marie@example.com",
		"phone": "+32 470 12 34 56",
		"accompanying_count": 1,
		"accompanying_people": [{"first_name": "Pierre", "last_name": "Curie"}],
		"food_wanted": true,
		"food_quantities": {"2": 1},
		"accepted_rgpd": true,
		"accepted_rules": true
	}`
	req := httptest.NewRequest(http.MethodPost, "/registrations/spectators", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, map[string]int{"2": 1}, svc.spectator.FoodQuantities)
	assert.Equal(t, "Pierre", svc.spectator.AccompanyingPeople[0].FirstName)

	var resp response.SpectatorRegistrationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint(7), resp.Registration.ID)
	assert.Equal(t, 8, resp.Availability.Remaining)
}

func TestRegistrationHandler_HandleRegisterSpectator_MalformedJSON(t *testing.T) {
	router := newRegistrationRouter(&fakeAdmission{}, 1024)

	req := httptest.NewRequest(http.MethodPost, "/registrations/spectators", strings.NewReader(`{"full_name":`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegistrationHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantField  string
		wantURL    string
	}{
		{
			name:       "validation",
			err:        &service.ValidationError{Fields: validation.Errors{"email": errors.New("must be a valid email address")}},
			wantStatus: http.StatusBadRequest,
			wantCode:   "validation_failed",
		},
		{
			name:       "capacity",
			err:        fmt.Errorf("s.repo.WithinAdmission -> %w", &service.RejectionError{Field: "full_name", Err: service.ErrCapacityExceeded}),
			wantStatus: http.StatusConflict,
			wantCode:   "capacity_exceeded",
			wantField:  "full_name",
		},
		{
			name:       "closed",
			err:        &service.RejectionError{Field: "full_name", Err: service.ErrRegistrationClosed},
			wantStatus: http.StatusConflict,
			wantCode:   "registration_closed",
			wantField:  "full_name",
		},
		{
			name:       "external form",
			err:        &service.ExternalFormError{URL: "https://forms.example.com"},
			wantStatus: http.StatusConflict,
			wantCode:   "registration_closed",
			wantURL:    "https://forms.example.com",
		},
		{
			name:       "invalid food",
			err:        &service.RejectionError{Field: "food_quantities", Err: service.ErrInvalidFoodSelection},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "invalid_food_selection",
			wantField:  "food_quantities",
		},
		{
			name:       "internal",
			err:        errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRegistrationRouter(&fakeAdmission{err: tt.err}, 1024)

			req := httptest.NewRequest(http.MethodPost, "/registrations/spectators", strings.NewReader(`{}`))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			body := decodeErr(t, rec)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantField, body.Field)
			assert.Equal(t, tt.wantURL, body.URL)
			assert.NotContains(t, rec.Body.String(), "connection refused")
		})
	}
}

func candidateForm(t *testing.T, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()

	return candidateFormWith(t, nil, files)
}

func candidateFormWith(t *testing.T, overrides map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	fields := map[string]string{
		"first_name":     "Ada",
		"last_name":      "Lovelace",
		"email":          "Ada@Example.com",
		"phone":          "+32 470 65 43 21",
		"faculty":        request.Faculties[0].(string),
		"study_year":     "BAC 1",
		"accepted_rgpd":  "on",
		"accepted_rules": "on",
	}
	for k, v := range overrides {
		fields[k] = v
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for name, data := range files {
		part, err := w.CreateFormFile(name, name+".bin")
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return body, w.FormDataContentType()
}

func TestRegistrationHandler_HandleRegisterCandidate(t *testing.T) {
	svc := &fakeAdmission{}
	router := newRegistrationRouter(svc, 1024)

	body, contentType := candidateForm(t, map[string][]byte{"text_pdf": pdfBytes, "proof_pdf": pngBytes})
	req := httptest.NewRequest(http.MethodPost, "/registrations/candidates", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Ada", svc.candidate.FirstName)
	assert.True(t, svc.candidate.AcceptedPrivacy.Accepted())
	assert.True(t, svc.candidate.AcceptedRules.Accepted())
	assert.Equal(t, "application/pdf", svc.candidate.Text.ContentType)
	assert.Equal(t, ".pdf", svc.candidate.Text.Extension)
	assert.Equal(t, pdfBytes, svc.candidate.Text.Data)
	assert.Equal(t, "image/png", svc.candidate.Proof.ContentType)

	var resp response.CandidateRegistrationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ada@example.com", resp.Registration.Email)
}

func TestRegistrationHandler_HandleRegisterCandidate_ConsentValues(t *testing.T) {
	tests := []struct {
		value    string
		accepted bool
	}{
		{value: "on", accepted: true},
		{value: "1", accepted: true},
		{value: "yes", accepted: true},
		{value: "true", accepted: true},
		{value: "off", accepted: false},
		{value: "", accepted: false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			svc := &fakeAdmission{}
			router := newRegistrationRouter(svc, 1024)

			body, contentType := candidateFormWith(t,
				map[string]string{"accepted_rgpd": tt.value},
				map[string][]byte{"text_pdf": pdfBytes, "proof_pdf": pngBytes})
			req := httptest.NewRequest(http.MethodPost, "/registrations/candidates", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			// Binding never rejects a consent value; refusing is a field error
			// raised by validation.
			require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
			assert.Equal(t, tt.accepted, svc.candidate.AcceptedPrivacy.Accepted())
			if !tt.accepted {
				var errs validation.Errors
				require.ErrorAs(t, svc.candidate.Validate(), &errs)
				assert.Contains(t, errs, "accepted_rgpd")
			}
		})
	}
}

func TestRegistrationHandler_HandleRegisterCandidate_Files(t *testing.T) {
	t.Run("missing file is passed on empty", func(t *testing.T) {
		svc := &fakeAdmission{}
		router := newRegistrationRouter(svc, 1024)

		body, contentType := candidateForm(t, map[string][]byte{"text_pdf": pdfBytes})
		req := httptest.NewRequest(http.MethodPost, "/registrations/candidates", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Empty(t, svc.candidate.Proof.Data)
	})

	t.Run("oversized file is truncated one byte past the limit", func(t *testing.T) {
		svc := &fakeAdmission{}
		router := newRegistrationRouter(svc, 16)

		body, contentType := candidateForm(t, map[string][]byte{"text_pdf": pdfBytes, "proof_pdf": pdfBytes[:10]})
		req := httptest.NewRequest(http.MethodPost, "/registrations/candidates", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Len(t, svc.candidate.Text.Data, 17)
		assert.Len(t, svc.candidate.Proof.Data, 10)
	})
}
