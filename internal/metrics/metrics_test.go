package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddlewareCountsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/games/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	for _, p := range []string{"/api/games/a", "/api/games/b", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	if got := testutil.ToFloat64(m.requests.WithLabelValues("/api/games/:id", "GET", "404")); got != 2 {
		t.Fatalf("expected 2 route hits, got %v", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("unmatched", "GET", "404")); got != 1 {
		t.Fatalf("expected 1 unmatched hit, got %v", got)
	}

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rr.Body.String(), "http_requests_total") {
		t.Fatalf("exposition missing counter: %s", rr.Body.String())
	}
}
