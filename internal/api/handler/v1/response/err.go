package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vietanh2810/squares-pool/internal/domain"
)

// Err is the JSON body of every failed request.
type Err struct {
	Err            error  `json:"-"`
	HTTPStatusCode int    `json:"-"`
	StatusText     string `json:"status"`
	Code           string `json:"code,omitempty"`
	ErrorMsg       string `json:"error,omitempty"`
	Retryable      bool   `json:"retryable,omitempty"`
}

func (e *Err) Error() string {
	return e.ErrorMsg
}

func RenderErr(ctx *gin.Context, e *Err) {
	if e.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("path", ctx.FullPath()),
			zap.Int("status", e.HTTPStatusCode),
			zap.String("code", e.Code),
			zap.Error(e.Err),
		)
	}

	ctx.AbortWithStatusJSON(e.HTTPStatusCode, e)
}

func newErr(status int, code string, err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: status,
		StatusText:     http.StatusText(status),
		Code:           code,
		ErrorMsg:       err.Error(),
	}
}

func ErrBadRequest(err error) *Err {
	return newErr(http.StatusBadRequest, "BAD_REQUEST", err)
}

func ErrUnauthorized(err error) *Err {
	return newErr(http.StatusUnauthorized, "UNAUTHORIZED", err)
}

func ErrPermissionDenied(err error) *Err {
	return newErr(http.StatusForbidden, "PERMISSION_DENIED", err)
}

func ErrNotFound(obj, key string, value any) *Err {
	return newErr(http.StatusNotFound, "NOT_FOUND", fmt.Errorf("%s with %s %v not found", obj, key, value))
}

// ErrInternalServerError hides the cause from the client; it is only logged.
func ErrInternalServerError(err error) *Err {
	e := newErr(http.StatusInternalServerError, string(domain.CodeInternal), err)
	e.ErrorMsg = "internal server error"

	return e
}

// FromDomain maps a pool error to its HTTP rendering by kind.
func FromDomain(err error) *Err {
	var de *domain.Error
	if !errors.As(err, &de) {
		return ErrInternalServerError(err)
	}

	code := string(de.Code)
	switch {
	case errors.Is(de.Kind, domain.ErrValidation):
		return newErr(http.StatusBadRequest, code, de)
	case errors.Is(de.Kind, domain.ErrNotFound):
		return newErr(http.StatusNotFound, code, de)
	case errors.Is(de.Kind, domain.ErrState):
		return newErr(http.StatusConflict, code, de)
	case errors.Is(de.Kind, domain.ErrCapacity):
		return newErr(http.StatusUnprocessableEntity, code, de)
	case errors.Is(de.Kind, domain.ErrConflict):
		e := newErr(http.StatusConflict, code, de)
		e.Retryable = domain.IsRetryable(de)
		return e
	default:
		e := ErrInternalServerError(err)
		e.Code = code
		return e
	}
}
