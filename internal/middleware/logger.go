package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rfpflow/internal/service"
)

// HeaderRequestID carries the request id in both directions.
const HeaderRequestID = "X-Request-ID"

// ContextKeyRequestID is the gin context key holding the request id.
const ContextKeyRequestID = "request_id"

// RequestID reuses an incoming X-Request-ID or mints one, echoes it on the
// response and stores it on the request context so pipeline run logs carry it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(ContextKeyRequestID, requestID)
		c.Header(HeaderRequestID, requestID)
		c.Request = c.Request.WithContext(service.WithRequestID(c.Request.Context(), requestID))
		c.Next()
	}
}

// Logger writes one access line per request. Failed requests also log the
// last gin error attached by a handler.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		requestID := c.GetString(ContextKeyRequestID)
		status := c.Writer.Status()
		if last := c.Errors.Last(); last != nil && status >= 400 {
			log.Printf("http: [%s] %s %s %d %s bytes=%d err=%v",
				requestID, c.Request.Method, c.Request.URL.Path, status, time.Since(start), c.Writer.Size(), last.Err)
			return
		}
		log.Printf("http: [%s] %s %s %d %s bytes=%d",
			requestID, c.Request.Method, c.Request.URL.Path, status, time.Since(start), c.Writer.Size())
	}
}

// Recovery recovers from panics and returns a 500 error.
func Recovery() gin.HandlerFunc {
	return gin.Recovery()
}
