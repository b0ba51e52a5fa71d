package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestIDRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestRequestIDGenerated(t *testing.T) {
	r := requestIDRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	rid := w.Header().Get("X-Request-ID")
	_, err := uuid.Parse(rid)
	require.NoError(t, err)
}

func TestRequestIDKeepsCallerUUID(t *testing.T) {
	r := requestIDRouter()
	rid := uuid.NewString()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", rid)
	r.ServeHTTP(w, req)

	assert.Equal(t, rid, w.Header().Get("X-Request-ID"))
}

func TestRequestIDReplacesNonUUID(t *testing.T) {
	r := requestIDRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "not-a-uuid\nwith-newline")
	r.ServeHTTP(w, req)

	rid := w.Header().Get("X-Request-ID")
	_, err := uuid.Parse(rid)
	require.NoError(t, err)
	assert.NotContains(t, rid, "\n")
}
