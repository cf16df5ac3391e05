package requestid

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func serve(t *testing.T, inbound string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var captured string
	router := gin.New()
	router.Use(Middleware())
	router.GET("/", func(c *gin.Context) {
		captured = Value(c)
		c.Status(http.StatusNoContent)
	})

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if inbound != "" {
		req.Header.Set("X-Request-ID", inbound)
	}
	router.ServeHTTP(recorder, req)
	return recorder, captured
}

func TestRequestIDGenerated(t *testing.T) {
	recorder, captured := serve(t, "")
	id := recorder.Header().Get("X-Request-ID")
	assert.NotEmpty(t, id)
	assert.Equal(t, id, captured)
}

func TestRequestIDKeepsWellFormedHeader(t *testing.T) {
	recorder, captured := serve(t, "client-abc_123.v2")
	assert.Equal(t, "client-abc_123.v2", recorder.Header().Get("X-Request-ID"))
	assert.Equal(t, "client-abc_123.v2", captured)
}

func TestRequestIDReplacesMalformedHeader(t *testing.T) {
	recorder, _ := serve(t, "bad id\nwith junk")
	id := recorder.Header().Get("X-Request-ID")
	assert.NotEmpty(t, id)
	assert.NotContains(t, id, " ")

	long, _ := serve(t, strings.Repeat("a", 65))
	assert.NotEqual(t, strings.Repeat("a", 65), long.Header().Get("X-Request-ID"))
}

func TestValueOutsideRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Empty(t, Value(c))
}
