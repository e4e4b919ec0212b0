package middleware

import (
	"context"
	"fmt"
	"log"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/kayceeDev/altschooltestingBE/utils"
)

// RateLimitMessage is the plain text body sent with 429 responses
const RateLimitMessage = "Too many requests, please try again later."

// RateLimitHit is the state of a client's window after counting one request
type RateLimitHit struct {
	Count   int
	ResetAt time.Time
}

// RateLimitStore counts requests per key inside fixed windows.
// Implementations must be safe for concurrent use.
type RateLimitStore interface {
	Increment(ctx context.Context, key string) (RateLimitHit, error)
}

// RateLimiter allows at most max requests per client within the store's window
type RateLimiter struct {
	store  RateLimitStore
	max    int
	errors *ErrorMiddleware
	now    func() time.Time
}

func NewRateLimiter(store RateLimitStore, max int, errorMiddleware *ErrorMiddleware) *RateLimiter {
	utils.AssertInvariant(store != nil, "rate limit store is nil")
	utils.AssertInvariant(max > 0, "rate limit max must be positive")

	return &RateLimiter{
		store:  store,
		max:    max,
		errors: errorMiddleware,
		now:    time.Now,
	}
}

func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientKey(r)

		hit, err := l.store.Increment(r.Context(), key)
		if err != nil {
			l.errors.HandleError(w, r, fmt.Errorf("rate limit store failed for %s: %w", key, err))
			return
		}

		remaining := l.max - hit.Count
		if remaining < 0 {
			remaining = 0
		}
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.max))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(int64(math.Ceil(float64(hit.ResetAt.UnixMilli())/1000)), 10))

		if hit.Count > l.max {
			retryAfter := int(math.Ceil(hit.ResetAt.Sub(l.now()).Seconds()))
			if retryAfter < 0 {
				retryAfter = 0
			}
			log.Printf("⚠️ Rate limit exceeded for %s (%d requests)", key, hit.Count)
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusTooManyRequests)
			if _, err := w.Write([]byte(RateLimitMessage)); err != nil {
				log.Printf("❌ Failed to write rate limit response: %v", err)
			}
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientKey identifies a client by the host part of its socket address
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type memoryWindow struct {
	count   int
	resetAt time.Time
}

// MemoryStore keeps per-client counters in process memory.
// A client's window starts at its first request and lasts for the configured duration.
type MemoryStore struct {
	window  time.Duration
	mutex   sync.Mutex
	clients map[string]*memoryWindow
	now     func() time.Time
}

func NewMemoryStore(window time.Duration) *MemoryStore {
	utils.AssertInvariant(window > 0, "rate limit window must be positive")
	return &MemoryStore{
		window:  window,
		clients: make(map[string]*memoryWindow),
		now:     time.Now,
	}
}

func (s *MemoryStore) Increment(ctx context.Context, key string) (RateLimitHit, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.now()
	current, exists := s.clients[key]
	if !exists || !now.Before(current.resetAt) {
		current = &memoryWindow{resetAt: now.Add(s.window)}
		s.clients[key] = current
	}
	current.count++

	return RateLimitHit{Count: current.count, ResetAt: current.resetAt}, nil
}

// Sweep drops windows that have already elapsed and returns how many were removed
func (s *MemoryStore) Sweep() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.now()
	removed := 0
	for key, current := range s.clients {
		if !now.Before(current.resetAt) {
			delete(s.clients, key)
			removed++
		}
	}
	return removed
}
