package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func serve(t *testing.T, origins []string, requestOrigin, method string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(New(origins))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(method, "/", nil)
	if requestOrigin != "" {
		req.Header.Set("Origin", requestOrigin)
	}
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestCORSAllowedOrigin(t *testing.T) {
	recorder := serve(t, []string{"https://feedback.campus.edu"}, "https://feedback.campus.edu", http.MethodGet)
	assert.Equal(t, "https://feedback.campus.edu", recorder.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, recorder.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
}

func TestCORSOriginMatchIgnoresCaseAndSlash(t *testing.T) {
	recorder := serve(t, []string{"https://Feedback.Campus.edu/"}, "https://feedback.campus.edu", http.MethodGet)
	assert.Equal(t, "https://feedback.campus.edu", recorder.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	recorder := serve(t, []string{"https://feedback.campus.edu"}, "https://evil.example", http.MethodGet)
	assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSWildcardEntry(t *testing.T) {
	recorder := serve(t, []string{"*"}, "https://anywhere.example", http.MethodGet)
	assert.Equal(t, "https://anywhere.example", recorder.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	recorder := serve(t, nil, "https://feedback.campus.edu", http.MethodOptions)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Contains(t, recorder.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}
