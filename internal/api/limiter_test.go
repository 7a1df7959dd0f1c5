package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestConvertLimiterPerIP(t *testing.T) {
	l := newConvertLimiter(2, 100)

	if !l.acquire("1.2.3.4") || !l.acquire("1.2.3.4") {
		t.Fatal("first two acquires for an IP must succeed")
	}
	if l.acquire("1.2.3.4") {
		t.Error("third acquire for the same IP must fail")
	}
	if !l.acquire("5.6.7.8") {
		t.Error("other IPs are not affected by a saturated one")
	}

	l.release("1.2.3.4")
	if !l.acquire("1.2.3.4") {
		t.Error("acquire must succeed again after release")
	}
}

func TestConvertLimiterGlobalCap(t *testing.T) {
	l := newConvertLimiter(10, 3)

	for i, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		if !l.acquire(ip) {
			t.Fatalf("acquire %d failed below the global cap", i)
		}
	}
	if l.acquire("10.0.0.4") {
		t.Error("acquire above the global cap must fail")
	}

	l.release("10.0.0.2")
	if !l.acquire("10.0.0.4") {
		t.Error("acquire must succeed after a slot frees up")
	}
}

func TestLimitConcurrencyRejectsWith429(t *testing.T) {
	l := newConvertLimiter(1, 1)
	handler := limitConcurrency(l, false, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Hold the only slot for this IP.
	if !l.acquire("192.0.2.1") {
		t.Fatal("setup acquire failed")
	}

	r := httptest.NewRequest("POST", "/api/v1/convert", nil)
	r.RemoteAddr = "192.0.2.1:1234"
	w := httptest.NewRecorder()
	handler(w, r)

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}

	l.release("192.0.2.1")
	w = httptest.NewRecorder()
	handler(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 after release", w.Code)
	}
}
