package daemon

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ledger/internal/api"
	"ledger/internal/logging"
	"ledger/internal/services"
)

const (
	headerRequestID = "X-Request-ID"
	ctxKeyRequestID = "request_id"
)

// requestID tags every request with an ID, reusing the caller's when given.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(headerRequestID, id)
		c.Set(ctxKeyRequestID, id)
		c.Request = c.Request.WithContext(services.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

func getRequestID(c *gin.Context) string {
	return c.GetString(ctxKeyRequestID)
}

func recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if recovered := recover(); recovered != nil {
				logging.ErrorWithContext(logging.WithContext(c.Request.Context(), logger), "panic recovered", "http_panic",
					logging.Any("panic", recovered),
					logging.String("method", c.Request.Method),
					logging.String("path", c.Request.URL.Path),
					logging.String("stack", string(debug.Stack())),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, api.ErrorResponse{
					Error: "internal server error",
					Kind:  "internal",
				})
			}
		}()
		c.Next()
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()
		attrs := []logging.Attr{
			logging.Int("status", status),
			logging.String("method", c.Request.Method),
			logging.String("path", path),
			logging.Int64("latency_ms", time.Since(start).Milliseconds()),
			logging.String("client_ip", c.ClientIP()),
		}
		if query != "" {
			attrs = append(attrs, logging.String("query", query))
		}

		log := logging.WithContext(c.Request.Context(), logger)
		switch {
		case status >= 500:
			log.Error("request completed", logging.Args(attrs...)...)
		case status >= 400:
			log.Warn("request completed", logging.Args(attrs...)...)
		default:
			log.Debug("request completed", logging.Args(attrs...)...)
		}
	}
}
