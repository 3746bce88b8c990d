package web

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter manages rate limiters for visitors based on their IP address.
// It uses a map to store a `Visitor` object for each unique identifier.
type RateLimiter struct {
	visitors map[string]*Visitor // Map of visitors, keyed by a unique identifier (IP hash).
	mu       sync.RWMutex        // Read-write mutex to protect concurrent access to the visitors map.
	rate     rate.Limit          // The number of requests allowed per second.
	burst    int                 // The maximum burst of requests allowed.
	ctx      context.Context     // Context for graceful shutdown of cleanup goroutine.
	cancel   context.CancelFunc  // Cancel function to stop cleanup goroutine.
}

// Visitor represents a single visitor (an IP address) and their associated rate limiter.
type Visitor struct {
	limiter  *rate.Limiter // The actual rate limiter for this visitor.
	lastSeen time.Time     // The last time this visitor made a request.
}

// NewRateLimiter creates and returns a new RateLimiter.
// It initializes the visitors map and starts a background goroutine to clean up
// inactive visitors periodically.
//
// Parameters:
//   - ctx: Context for graceful shutdown of the cleanup goroutine.
//   - rps: Requests per second allowed for each visitor.
//   - burst: The maximum burst of requests allowed.
func NewRateLimiter(ctx context.Context, rps float64, burst int) *RateLimiter {
	cleanupCtx, cancel := context.WithCancel(ctx)

	rl := &RateLimiter{
		visitors: make(map[string]*Visitor),
		rate:     rate.Limit(rps),
		burst:    burst,
		ctx:      cleanupCtx,
		cancel:   cancel,
	}

	go rl.cleanupVisitors()

	return rl
}

// Stop gracefully stops the rate limiter's cleanup goroutine.
// Should be called during application shutdown.
func (rl *RateLimiter) Stop() {
	rl.cancel()
}

// getVisitor retrieves or creates a rate limiter for a given identifier (IP hash).
// If a visitor does not exist in the map, a new one is created with a new rate limiter.
// The `lastSeen` time for the visitor is updated on each call.
func (rl *RateLimiter) getVisitor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(rl.rate, rl.burst)
		rl.visitors[ip] = &Visitor{
			limiter:  limiter,
			lastSeen: time.Now(),
		}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// cleanupVisitors is a background task that runs in a goroutine to periodically
// remove inactive visitors from the map. This prevents the map from growing
// indefinitely and consuming too much memory. A visitor is considered inactive
// if they haven't been seen for more than 3 minutes.
//
// The goroutine respects context cancellation for graceful shutdown.
func (rl *RateLimiter) cleanupVisitors() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			for ip, v := range rl.visitors {
				if time.Since(v.lastSeen) > 3*time.Minute {
					delete(rl.visitors, ip)
				}
			}
			rl.mu.Unlock()

		case <-rl.ctx.Done():
			return
		}
	}
}

// getIP extracts the immediate connection IP address from the request.
// Proxy headers are deliberately not trusted; at this layer the
// RemoteAddr cannot be spoofed.
func getIP(r *http.Request) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr may already be a bare IP
		return r.RemoteAddr
	}
	return remoteIP
}

// hashIP creates a SHA-256 hash of an IP address to avoid storing raw IP addresses.
// This is a privacy-enhancing measure.
func hashIP(ip string) string {
	h := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(h[:])
}

// RateLimit is a middleware that applies a global rate limit to all incoming requests.
// It uses the client's IP address as the identifier for rate limiting.
// If the rate limiter is disabled in the configuration, the middleware does nothing.
func (mw *Middleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !mw.conf.RateLimiter.Enabled {
			next.ServeHTTP(w, r)
			return
		}

		ipHash := hashIP(getIP(r))

		if !mw.globalLimiter.getVisitor(ipHash).Allow() {
			mw.metrics.RecordRateLimitHit("global")
			sendRateLimitError(w, "Too many requests. Please try again later.", 60)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RateLimitStrict is a middleware that applies a stricter rate limit, used
// for expensive endpoints such as launching imports or probing connections.
func (mw *Middleware) RateLimitStrict(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !mw.conf.RateLimiter.Enabled {
			next.ServeHTTP(w, r)
			return
		}

		ipHash := hashIP(getIP(r))

		if !mw.strictLimiter.getVisitor(ipHash).Allow() {
			mw.metrics.RecordRateLimitHit("strict")
			sendRateLimitError(w, "Too many requests. Please try again later.", 60)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RateLimitErrorResponse defines a structured response for rate limiting errors.
// It provides more context to the client than a simple error message.
type RateLimitErrorResponse struct {
	Error      string    `json:"error"`               // A machine-readable error code.
	Message    string    `json:"message"`             // A human-readable error message.
	Code       int       `json:"code"`                // The HTTP status code.
	RetryAfter int       `json:"retry_after_seconds"` // Suggested time to wait before retrying, in seconds.
	Timestamp  time.Time `json:"timestamp"`           // The timestamp of when the error occurred.
}

// sendRateLimitError sends a detailed JSON response when a rate limit is exceeded.
// It sets the HTTP status to 429 Too Many Requests and includes a structured JSON body
// with details about the error and a suggested retry time.
func sendRateLimitError(w http.ResponseWriter, message string, retryAfter int) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
	w.WriteHeader(http.StatusTooManyRequests)

	response := RateLimitErrorResponse{
		Error:      "rate_limit_exceeded",
		Message:    message,
		Code:       http.StatusTooManyRequests,
		RetryAfter: retryAfter,
		Timestamp:  time.Now().UTC(),
	}

	json.NewEncoder(w).Encode(response)
}
