// Package rate throttles requests per client so one storefront session
// cannot monopolize the cart API.
package rate

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const sweepInterval = time.Minute

// Limiter hands each client its own token bucket and evicts buckets that
// have gone idle longer than the configured expiry.
type Limiter struct {
	rps    float64
	burst  int
	expiry time.Duration

	mu      sync.Mutex
	clients map[string]*client
}

type client struct {
	bucket   *rate.Limiter
	lastSeen time.Time
}

func NewLimiter(rps float64, burst int, expiry time.Duration) *Limiter {
	l := &Limiter{
		rps:     rps,
		burst:   burst,
		expiry:  expiry,
		clients: make(map[string]*client),
	}
	go l.sweep()
	return l
}

// Check reports whether the identified client may proceed, creating its
// bucket on first sight.
func (l *Limiter) Check(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[id]
	if !ok {
		c = &client{bucket: rate.NewLimiter(rate.Limit(l.rps), l.burst)}
		l.clients[id] = c
	}
	c.lastSeen = time.Now()
	return c.bucket.Allow()
}

func (l *Limiter) sweep() {
	t := time.NewTicker(sweepInterval)
	defer t.Stop()

	for range t.C {
		l.mu.Lock()
		for id, c := range l.clients {
			if time.Since(c.lastSeen) > l.expiry {
				delete(l.clients, id)
			}
		}
		l.mu.Unlock()
	}
}

// Every converts a per-request interval into the requests-per-second rate
// NewLimiter takes.
func Every(interval time.Duration) float64 {
	return float64(rate.Every(interval))
}
