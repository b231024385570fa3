package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/eloquence-api/internal/pkg/jwthelper"
)

const testSigningKey = "0123456789abcdef0123456789abcdef"

func newAdminRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/admin", NewAuthenticator(testSigningKey).RequireAdmin(), func(ctx *gin.Context) {
		ctx.String(http.StatusOK, ctx.GetString(ContextKeySubject))
	})

	return router
}

func TestRequireAdmin(t *testing.T) {
	admin, err := jwthelper.GenerateToken([]byte(testSigningKey), "alice", jwthelper.RoleAdmin, time.Hour)
	require.NoError(t, err)

	viewer, err := jwthelper.GenerateToken([]byte(testSigningKey), "bob", "viewer", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "admin", header: "Bearer " + admin, wantStatus: http.StatusOK, wantBody: "alice"},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "wrong role", header: "Bearer " + viewer, wantStatus: http.StatusForbidden},
	}

	router := newAdminRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
