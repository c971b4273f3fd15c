package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/pageza/mealbook/backend/internal/model"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusForError maps an error kind to its HTTP status code
func StatusForError(err error) int {
	switch {
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandler turns errors that handlers attach with c.Error into a JSON
// error response, and recovers from panics with a 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().
					Str("component", "http").
					Interface("panic", rec).
					Str("path", c.Request.URL.Path).
					Msg("Recovered from panic")
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error"})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := StatusForError(err)
		message := err.Error()
		if status == http.StatusInternalServerError {
			log.Error().Err(err).Str("component", "http").Str("path", c.Request.URL.Path).Msg("Request failed")
			message = "Internal Server Error"
		} else if status == http.StatusServiceUnavailable {
			log.Warn().Err(err).Str("component", "http").Str("path", c.Request.URL.Path).Msg("Store unavailable")
			message = "storage is temporarily unavailable"
		}
		c.JSON(status, ErrorResponse{Error: message})
	}
}
