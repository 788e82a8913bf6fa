package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/tradedesk/internal/domain/dto"
	"github.com/guttosm/tradedesk/internal/logger"
	"github.com/guttosm/tradedesk/internal/schema"
)

// ErrorHandler turns errors attached with c.Error into a JSON answer when
// the handler did not write one itself.
//
// Behavior:
//   - *schema.ShapeError: logged with entity, path and kind, answered with a
//     generic 500 that never echoes the offending payload.
//   - dto.ErrorResponse: written as is, with the status already set (or 500).
//   - anything else: generic 500.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}
	err := c.Errors.Last().Err
	rid, _ := c.Get(RequestIDKey)

	var shape *schema.ShapeError
	if errors.As(err, &shape) {
		logger.L().Error().
			Str("request_id", toString(rid)).
			Str("entity", shape.Entity).
			Str("path", shape.Path).
			Str("kind", string(shape.Kind)).
			Str("detail", shape.Detail).
			Msg("response_shape_violation")
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse("internal server error", nil))
		return
	}

	var resp dto.ErrorResponse
	if errors.As(err, &resp) {
		status := c.Writer.Status()
		if status < http.StatusBadRequest {
			status = http.StatusInternalServerError
		}
		c.AbortWithStatusJSON(status, resp)
		return
	}

	logger.L().Error().Str("request_id", toString(rid)).Err(err).Msg("unhandled_error")
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse("internal server error", nil))
}

// AbortWithError writes a dto.ErrorResponse with status and stops the chain.
// err is recorded on the context for the request log.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
