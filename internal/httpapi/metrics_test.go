package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestItoa(t *testing.T) {
	cases := map[int]string{0: "0", 200: "200", 204: "204", 404: "404", 503: "503"}
	for n, want := range cases {
		if got := itoa(n); got != want {
			t.Fatalf("itoa(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestStatusRecorder(t *testing.T) {
	rr := httptest.NewRecorder()
	sr := &statusRecorder{ResponseWriter: rr, status: 200}
	sr.WriteHeader(http.StatusTeapot)
	if sr.status != http.StatusTeapot || rr.Code != http.StatusTeapot {
		t.Fatalf("status not captured: %d/%d", sr.status, rr.Code)
	}
}

func TestRoutePatternOrPath_Fallback(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/adapters/123", nil)
	if got := routePatternOrPath(r); got != "/adapters/123" {
		t.Fatalf("fallback = %q", got)
	}
}

func TestMetricsMiddleware_CountsRequests(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	rr := httptest.NewRecorder()
	MetricsMiddleware(inner).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/x", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("middleware altered status: %d", rr.Code)
	}
}
