package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

// QuotaLimiter throttles catalog and search requests per client IP. Every
// throttled request can fan out to the upstream metadata API, so the limit
// protects the API quota rather than the server itself.
type QuotaLimiter struct {
	mu       sync.Mutex
	clients  map[string]*clientLimiter
	rate     rate.Limit
	burst    int
	stopOnce sync.Once
	stop     chan struct{}
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewQuotaLimiter allows perMinute requests per client with a burst of the
// same size.
func NewQuotaLimiter(perMinute int) *QuotaLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	ql := &QuotaLimiter{
		clients: make(map[string]*clientLimiter),
		rate:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   perMinute,
		stop:    make(chan struct{}),
	}
	go ql.evictIdle()
	return ql
}

// Middleware returns a mux middleware that answers 429 once a client
// exhausts its window.
func (ql *QuotaLimiter) Middleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !ql.allow(clientIP(r)) {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "60")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{"error": "too many requests"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Close stops the background eviction loop.
func (ql *QuotaLimiter) Close() {
	ql.stopOnce.Do(func() { close(ql.stop) })
}

func (ql *QuotaLimiter) allow(ip string) bool {
	ql.mu.Lock()
	entry, ok := ql.clients[ip]
	if !ok {
		entry = &clientLimiter{limiter: rate.NewLimiter(ql.rate, ql.burst)}
		ql.clients[ip] = entry
	}
	entry.lastSeen = time.Now()
	ql.mu.Unlock()

	return entry.limiter.Allow()
}

// evictIdle drops limiters for clients not seen in the last 10 minutes.
func (ql *QuotaLimiter) evictIdle() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ql.stop:
			return
		case <-ticker.C:
			ql.mu.Lock()
			for ip, entry := range ql.clients {
				if time.Since(entry.lastSeen) > 10*time.Minute {
					delete(ql.clients, ip)
				}
			}
			ql.mu.Unlock()
		}
	}
}

// clientIP resolves the originating IP, honoring reverse-proxy headers.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}
