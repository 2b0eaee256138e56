package middleware_test

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"rfpflow/internal/middleware"
	"rfpflow/internal/service"
)

func TestRequestID_GeneratedWhenMissing(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/test", func(c *gin.Context) {
		id, _ := c.Get("request_id")
		c.String(http.StatusOK, id.(string))
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	r.ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, w.Header().Get("X-Request-ID"), w.Body.String())
}

func TestRequestID_PropagatesIncoming(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("X-Request-ID", "req-42")
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
}

func TestRequestID_StoredOnRequestContext(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, service.RequestIDFrom(c.Request.Context()))
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("X-Request-ID", "req-7")
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-7", w.Body.String())
}

func TestLogger_WritesRequestIDAndError(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger())
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "fine") })
	r.GET("/bad", func(c *gin.Context) {
		_ = c.Error(assert.AnError)
		c.Status(http.StatusBadGateway)
	})

	for _, path := range []string{"/ok", "/bad"} {
		req, _ := http.NewRequest(http.MethodGet, path, http.NoBody)
		req.Header.Set("X-Request-ID", "req-"+path[1:])
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	out := buf.String()
	assert.Contains(t, out, "http: [req-ok] GET /ok 200")
	assert.Contains(t, out, "bytes=4")
	assert.Contains(t, out, "http: [req-bad] GET /bad 502")
	assert.Contains(t, out, "err="+assert.AnError.Error())
}
