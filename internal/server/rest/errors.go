package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/recetario/internal/common"
	"github.com/dmitrijs2005/recetario/internal/server/services"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// FieldError is one entry of a request validation failure.
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ValidationResponse is returned with 422 when the request itself cannot be
// decoded: malformed JSON, missing form fields, non-numeric ids.
type ValidationResponse struct {
	Detail []FieldError `json:"detail"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrorValidation), errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorForbidden):
		return http.StatusForbidden
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps err onto a status and a {"detail": ...} body and aborts
// the request. Unexpected errors are logged and hidden from the client.
func (s *Server) writeError(c *gin.Context, err error) {
	status := statusFor(err)

	detail := http.StatusText(status)
	var se *services.Error
	if errors.As(err, &se) {
		detail = se.Detail
	}

	if status == http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "request failed", "path", c.Request.URL.Path, "error", err)
		detail = http.StatusText(status)
	}
	if status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", "Bearer")
	}

	c.AbortWithStatusJSON(status, ErrorResponse{Detail: detail})
}

func writeInvalid(c *gin.Context, msg string, loc ...string) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ValidationResponse{
		Detail: []FieldError{{Loc: loc, Msg: msg, Type: "value_error"}},
	})
}
