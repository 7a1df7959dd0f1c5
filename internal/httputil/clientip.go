// Package httputil holds small HTTP request helpers shared by the server.
package httputil

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP returns the client address of r for request logs. With trustProxy
// set, the leftmost X-Forwarded-For entry and then X-Real-IP win over
// RemoteAddr. Both headers are client-supplied, so trustProxy belongs only on
// deployments behind a reverse proxy that overwrites them.
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if ip := forwardedFor(r); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr without a port, e.g. in hand-built test requests.
		return r.RemoteAddr
	}
	return host
}

func forwardedFor(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	return strings.TrimSpace(r.Header.Get("X-Real-IP"))
}
