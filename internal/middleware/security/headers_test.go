package security

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func serve(t *testing.T, p Policy, r *http.Request) http.Header {
	t.Helper()
	rec := httptest.NewRecorder()
	Headers(p)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rec, r)
	return rec.Header()
}

func TestLedgerPolicy(t *testing.T) {
	h := serve(t, LedgerPolicy(), httptest.NewRequest(http.MethodGet, "/", nil))

	tests := []struct {
		header string
		want   string
	}{
		{"X-Content-Type-Options", "nosniff"},
		{"X-Frame-Options", "DENY"},
		{"Referrer-Policy", "same-origin"},
		{"Cross-Origin-Opener-Policy", "same-origin"},
	}
	for _, tt := range tests {
		if got := h.Get(tt.header); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.header, got, tt.want)
		}
	}

	csp := h.Get("Content-Security-Policy")
	for _, want := range []string{"script-src 'self' https://unpkg.com", "style-src 'self' 'unsafe-inline'", "form-action 'self'"} {
		if !strings.Contains(csp, want) {
			t.Errorf("CSP %q missing %q", csp, want)
		}
	}
	if h.Get("Strict-Transport-Security") != "" {
		t.Error("HSTS must not be sent over plain HTTP")
	}
}

func TestHSTSOnlyOverTLS(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.TLS = &tls.ConnectionState{}

	h := serve(t, LedgerPolicy(), r)
	if got := h.Get("Strict-Transport-Security"); got != "max-age=31536000" {
		t.Errorf("HSTS = %q", got)
	}
}

func TestEmptyValuesAreSkipped(t *testing.T) {
	h := serve(t, Policy{FrameOptions: "SAMEORIGIN"}, httptest.NewRequest(http.MethodGet, "/", nil))

	if _, ok := h["Content-Security-Policy"]; ok {
		t.Error("empty CSP should not be sent")
	}
	if h.Get("X-Frame-Options") != "SAMEORIGIN" {
		t.Errorf("X-Frame-Options = %q", h.Get("X-Frame-Options"))
	}
}

func TestCacheStatic(t *testing.T) {
	rec := httptest.NewRecorder()
	CacheStatic(time.Hour)(http.NotFoundHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/app.js", nil))
	if got := rec.Header().Get("Cache-Control"); got != "public, max-age=3600" {
		t.Errorf("Cache-Control = %q", got)
	}
}
