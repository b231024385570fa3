package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/eloquence-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/eloquence-api/internal/pkg/jwthelper"
)

const ContextKeySubject = "subject"

var (
	errMissingToken = errors.New("missing bearer token")
	errNotAdmin     = errors.New("admin role required")
)

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// RequireAdmin lets the request through only with a valid bearer token
// carrying the admin role. The token subject is stored under
// ContextKeySubject.
func (a *Authenticator) RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(tokenString) == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, strings.TrimSpace(tokenString))
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		if claims.Role != jwthelper.RoleAdmin {
			response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("%w, got %q", errNotAdmin, claims.Role)))
			return
		}

		ctx.Set(ContextKeySubject, claims.Subject)
		ctx.Next()
	}
}
