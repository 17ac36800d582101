package handlers

import (
	"errors"
	"net/http"

	"imperialvip/internal/domain"
	"imperialvip/internal/http/middleware"
	"imperialvip/internal/services"
	"imperialvip/internal/utils"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Details:   details,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. Validation errors
// carry their field messages in "details".
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrInvalidToken):
		respondError(c, http.StatusUnauthorized, "unauthorized", err.Error(), nil)
	case domain.IsValidation(err):
		details := domain.ValidationDetails(err)
		if len(details) == 0 {
			respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), details)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	default:
		utils.LogError(middleware.GetRequestID(c), "http", "respond", c.Request.Method+" "+c.FullPath(), err)
		respondError(c, http.StatusInternalServerError, "internal_error", "beklenmeyen bir hata oluştu", nil)
	}
}
