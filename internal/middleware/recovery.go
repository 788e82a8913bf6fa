package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/tradedesk/internal/domain/dto"
	"github.com/guttosm/tradedesk/internal/logger"
)

// ErrPanic marks a request whose handler panicked.
var ErrPanic = errors.New("handler panicked")

// RecoveryMiddleware recovers from panics raised further down the chain and
// answers with a generic 500.
//
// Behavior:
//   - Logs a "panic_recovered" event with request_id, method, route, the
//     panic value and the stack trace.
//   - Records ErrPanic on the context so RequestLogger counts it.
//   - The panic value stays in the logs: the client body is always the
//     generic "internal server error" dto.ErrorResponse.
//   - If the handler already wrote a response, only the chain is aborted.
//
// Example:
//
//	router := gin.New()
//	router.Use(middleware.RequestID(), middleware.RequestLogger(), middleware.RecoveryMiddleware())
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			rid, _ := c.Get(RequestIDKey)
			logger.L().Error().
				Str("request_id", toString(rid)).
				Str("method", c.Request.Method).
				Str("route", c.FullPath()).
				Str("panic", fmt.Sprintf("%v", r)).
				Bytes("stack", debug.Stack()).
				Msg("panic_recovered")

			_ = c.Error(ErrPanic)
			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse("internal server error", nil))
		}()

		c.Next()
	}
}
