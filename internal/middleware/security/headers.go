// Package security sets the response headers the ledger page is served with.
package security

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// HTMXSource is where the page loads htmx from.
const HTMXSource = "https://unpkg.com"

// Policy lists the headers sent with every response. Empty fields are not sent.
type Policy struct {
	// CSP directives, joined with "; " in order.
	ContentSecurity []string

	FrameOptions       string
	ContentTypeOptions string
	Referrer           string
	Permissions        string
	OpenerPolicy       string
	ResourcePolicy     string

	// HSTS is only sent on TLS connections; zero disables it.
	HSTSMaxAge time.Duration
}

// LedgerPolicy allows scripts from self and HTMXSource, inline styles for
// the chart bar heights, and form posts back to the app only.
func LedgerPolicy() Policy {
	return Policy{
		ContentSecurity: []string{
			"default-src 'self'",
			"script-src 'self' " + HTMXSource,
			"style-src 'self' 'unsafe-inline'",
			"img-src 'self' data:",
			"connect-src 'self'",
			"object-src 'none'",
			"frame-ancestors 'none'",
			"base-uri 'self'",
			"form-action 'self'",
		},
		FrameOptions:       "DENY",
		ContentTypeOptions: "nosniff",
		Referrer:           "same-origin",
		Permissions:        "geolocation=(), microphone=(), camera=(), payment=()",
		OpenerPolicy:       "same-origin",
		ResourcePolicy:     "same-origin",
		HSTSMaxAge:         365 * 24 * time.Hour,
	}
}

// header renders the fixed part of the policy once.
func (p Policy) header() http.Header {
	h := make(http.Header)
	add := func(key, value string) {
		if value != "" {
			h.Set(key, value)
		}
	}
	add("Content-Security-Policy", strings.Join(p.ContentSecurity, "; "))
	add("X-Frame-Options", p.FrameOptions)
	add("X-Content-Type-Options", p.ContentTypeOptions)
	add("Referrer-Policy", p.Referrer)
	add("Permissions-Policy", p.Permissions)
	add("Cross-Origin-Opener-Policy", p.OpenerPolicy)
	add("Cross-Origin-Resource-Policy", p.ResourcePolicy)
	return h
}

// Headers applies p to every response passing through the returned middleware.
func Headers(p Policy) func(http.Handler) http.Handler {
	fixed := p.header()
	hsts := ""
	if p.HSTSMaxAge > 0 {
		hsts = fmt.Sprintf("max-age=%d", int64(p.HSTSMaxAge/time.Second))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for k, v := range fixed {
				h.Set(k, v[0])
			}
			if hsts != "" && r.TLS != nil {
				h.Set("Strict-Transport-Security", hsts)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CacheStatic marks embedded assets as publicly cacheable for maxAge.
func CacheStatic(maxAge time.Duration) func(http.Handler) http.Handler {
	value := fmt.Sprintf("public, max-age=%d", int64(maxAge/time.Second))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if maxAge > 0 {
				w.Header().Set("Cache-Control", value)
			}
			next.ServeHTTP(w, r)
		})
	}
}
