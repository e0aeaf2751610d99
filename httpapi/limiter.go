// SPDX-License-Identifier: MIT

package httpapi

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// clientLimiter hands out one token bucket per client address.
type clientLimiter struct {
	mu      sync.Mutex
	clients *cache.Cache
	r       rate.Limit
	b       int
}

func newClientLimiter(r float64, b int, ttl time.Duration) *clientLimiter {
	return &clientLimiter{clients: cache.New(ttl, 2*ttl), r: rate.Limit(r), b: b}
}

func (c *clientLimiter) get(key string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.clients.Get(key); ok {
		lim := v.(*rate.Limiter)
		c.clients.SetDefault(key, lim)
		return lim
	}
	lim := rate.NewLimiter(c.r, c.b)
	c.clients.SetDefault(key, lim)

	return lim
}

func (c *clientLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !c.get(clientKey(r)).Allow() {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientKey is the remote host without the port.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
