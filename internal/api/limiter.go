package api

import (
	"net/http"
	"sync"

	"github.com/akobaz/libcoocvt/internal/httputil"
)

// convertLimiter caps in-flight conversion requests per client IP and
// globally. Conversions are CPU-bound, so a single client hammering the
// endpoint must not be able to monopolize the worker pool.
type convertLimiter struct {
	mu       sync.Mutex
	inflight map[string]int
	total    int
	maxPerIP int
	maxTotal int
}

func newConvertLimiter(maxPerIP, maxTotal int) *convertLimiter {
	return &convertLimiter{
		inflight: make(map[string]int),
		maxPerIP: maxPerIP,
		maxTotal: maxTotal,
	}
}

// acquire registers an in-flight request for ip. It reports false when the
// per-IP or global cap is reached.
func (l *convertLimiter) acquire(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.total >= l.maxTotal {
		return false
	}
	if l.inflight[ip] >= l.maxPerIP {
		return false
	}

	l.inflight[ip]++
	l.total++
	return true
}

func (l *convertLimiter) release(ip string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.inflight[ip]--
	l.total--
	if l.inflight[ip] <= 0 {
		delete(l.inflight, ip)
	}
}

// limitConcurrency rejects requests over the in-flight caps with 429.
func limitConcurrency(l *convertLimiter, trustProxy bool, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := httputil.ClientIP(r, trustProxy)
		if !l.acquire(ip) {
			writeError(w, http.StatusTooManyRequests, map[string]any{
				"error": "too many concurrent conversions",
			})
			return
		}
		defer l.release(ip)

		next(w, r)
	}
}
