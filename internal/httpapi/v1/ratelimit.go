package v1

import (
    "net"
    "net/http"
    "sync"
    "time"

    "golang.org/x/time/rate"
)

const clientIdleTTL = 3 * time.Minute

type client struct {
    limiter  *rate.Limiter
    lastSeen time.Time
}

// clientLimiter keeps one token bucket per client IP. Idle clients are
// evicted lazily, at most once a minute.
type clientLimiter struct {
    mu        sync.Mutex
    rps       rate.Limit
    burst     int
    clients   map[string]*client
    lastSweep time.Time
}

func newClientLimiter(rps float64, burst int) *clientLimiter {
    if burst < 1 { burst = 1 }
    return &clientLimiter{rps: rate.Limit(rps), burst: burst, clients: make(map[string]*client)}
}

func (l *clientLimiter) allow(key string, now time.Time) bool {
    l.mu.Lock()
    defer l.mu.Unlock()
    if now.Sub(l.lastSweep) > time.Minute {
        for k, c := range l.clients {
            if now.Sub(c.lastSeen) > clientIdleTTL { delete(l.clients, k) }
        }
        l.lastSweep = now
    }
    c, ok := l.clients[key]
    if !ok {
        c = &client{limiter: rate.NewLimiter(l.rps, l.burst)}
        l.clients[key] = c
    }
    c.lastSeen = now
    return c.limiter.AllowN(now, 1)
}

// rateLimit answers 429 once a client exhausts its bucket.
func (s *Server) rateLimit(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        ip, _, err := net.SplitHostPort(r.RemoteAddr)
        if err != nil { ip = r.RemoteAddr }
        if !s.limiter.allow(ip, time.Now()) {
            rateLimitedTotal.Inc()
            w.Header().Set("Retry-After", "1")
            writeErr(w, http.StatusTooManyRequests, "Rate limit exceeded")
            return
        }
        next.ServeHTTP(w, r)
    })
}
