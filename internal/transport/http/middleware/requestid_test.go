package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func ridEngine(capture *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	e := gin.New()
	e.Use(RequestID())
	e.GET("/", func(c *gin.Context) {
		*capture = GetRequestID(c)
		c.Status(204)
	})
	return e
}

func TestRequestID_Passthrough(t *testing.T) {
	var got string
	e := ridEngine(&got)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(KeyRequestID, "client-rid-1")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	require.Equal(t, "client-rid-1", got)
	require.Equal(t, "client-rid-1", w.Header().Get(KeyRequestID))
}

func TestRequestID_Generated(t *testing.T) {
	var got string
	e := ridEngine(&got)

	// 未带 ID：生成 uuid
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	_, err := uuid.Parse(got)
	require.NoError(t, err)

	// 超长 ID 不透传，换成新生成的
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(KeyRequestID, strings.Repeat("x", maxRequestIDLen+1))
	w = httptest.NewRecorder()
	e.ServeHTTP(w, req)
	_, err = uuid.Parse(got)
	require.NoError(t, err)
}
