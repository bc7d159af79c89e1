package fetcher

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimit configures token bucket per host. Zero value disables limiting.
type RateLimit struct {
	Requests int
	Window   time.Duration
}

// HostLimiter enforces per-host rate limits.
type HostLimiter struct {
	cfg     RateLimit
	enabled bool

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewHostLimiter returns new HostLimiter.
func NewHostLimiter(cfg RateLimit) *HostLimiter {
	return &HostLimiter{
		cfg:      cfg,
		enabled:  cfg.Requests > 0 && cfg.Window > 0,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until request to host is allowed or context is done.
func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	if l == nil || !l.enabled || host == "" {
		return nil
	}

	return l.limiter(strings.ToLower(host)).Wait(ctx)
}

func (l *HostLimiter) limiter(host string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, ok := l.limiters[host]; ok {
		return limiter
	}

	interval := l.cfg.Window / time.Duration(l.cfg.Requests)
	if interval <= 0 {
		interval = time.Millisecond
	}
	limiter := rate.NewLimiter(rate.Every(interval), l.cfg.Requests)
	l.limiters[host] = limiter

	return limiter
}
