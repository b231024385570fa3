package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"
	"go.uber.org/zap"
)

// Err is the body of every error response.
type Err struct {
	Err            error `json:"-"`
	HTTPStatusCode int   `json:"-"`

	StatusText string            `json:"status"`
	Code       string            `json:"code,omitempty"`
	ErrorText  string            `json:"error,omitempty"`
	Field      string            `json:"field,omitempty"`
	Fields     map[string]string `json:"fields,omitempty"`
	URL        string            `json:"url,omitempty"`
}

// RenderErr writes err and aborts the chain. Server errors are logged with the
// request id; their cause is never sent to the client.
func RenderErr(ctx *gin.Context, err *Err) {
	if err.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("request_id", requestid.Get(ctx)),
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.FullPath()),
			zap.Error(err.Err),
		)
	}

	ctx.AbortWithStatusJSON(err.HTTPStatusCode, err)
}

func ErrBadRequest(err error) *Err {
	e := &Err{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     http.StatusText(http.StatusBadRequest),
		Code:           "validation_failed",
		ErrorText:      err.Error(),
	}

	var fields validation.Errors
	if errors.As(err, &fields) {
		e.Fields = make(map[string]string, len(fields))
		for k, v := range fields {
			e.Fields[k] = v.Error()
		}
		e.ErrorText = "the request contains invalid fields"
	}

	return e
}

// ErrConflict is a business rejection the client can recover from, like a
// full pool or an already used email.
func ErrConflict(code, field string, err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusConflict,
		StatusText:     http.StatusText(http.StatusConflict),
		Code:           code,
		ErrorText:      err.Error(),
		Field:          field,
	}
}

func ErrUnprocessable(code, field string, err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusUnprocessableEntity,
		StatusText:     http.StatusText(http.StatusUnprocessableEntity),
		Code:           code,
		ErrorText:      err.Error(),
		Field:          field,
	}
}

func ErrNotFound(resource, field string, value interface{}) *Err {
	return &Err{
		Err:            fmt.Errorf("%s with %s %v not found", resource, field, value),
		HTTPStatusCode: http.StatusNotFound,
		StatusText:     http.StatusText(http.StatusNotFound),
		Code:           "not_found",
		ErrorText:      fmt.Sprintf("%s with %s %v not found", resource, field, value),
	}
}

func ErrUnauthorized(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusUnauthorized,
		StatusText:     http.StatusText(http.StatusUnauthorized),
		Code:           "unauthorized",
		ErrorText:      err.Error(),
	}
}

func ErrPermissionDenied(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusForbidden,
		StatusText:     http.StatusText(http.StatusForbidden),
		Code:           "permission_denied",
		ErrorText:      err.Error(),
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		StatusText:     http.StatusText(http.StatusInternalServerError),
		Code:           "internal",
		ErrorText:      "something went wrong",
	}
}
