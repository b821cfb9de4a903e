package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/clinicsync/records-api/pkg/errors"
)

// errorResponse mirrors the envelope the handlers use for success responses.
type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// RespondWithError sends an error response. AppError codes map to HTTP
// statuses; anything else becomes a generic 500 so internals stay
// server-side.
func RespondWithError(c *gin.Context, err error) {
	statusCode := http.StatusInternalServerError
	message := "internal server error"

	if appErr, ok := errors.AsAppError(err); ok {
		statusCode = statusFor(appErr.Code)
		message = appErr.Message
	}

	if statusCode >= http.StatusInternalServerError {
		log.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
	}

	c.JSON(statusCode, errorResponse{
		Status:  "error",
		Message: message,
	})
}

func statusFor(code errors.ErrorCode) int {
	switch code {
	case errors.ErrNotFound:
		return http.StatusNotFound
	case errors.ErrBadRequest:
		return http.StatusBadRequest
	case errors.ErrUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
