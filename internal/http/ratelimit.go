package http

import (
	"sync"
	"time"
)

const (
	requestsPerMinute = 60
	sweepInterval     = 5 * time.Minute
	staleAfter        = 10 * time.Minute
)

// rateLimiter counts POST requests per client IP over a fixed one-minute
// window. State is in-memory only.
type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	done     chan struct{}
	stopOnce sync.Once
}

type visitor struct {
	windowStart time.Time
	lastSeen    time.Time
	count       int
}

func newRateLimiter() *rateLimiter {
	rl := &rateLimiter{
		visitors: make(map[string]*visitor),
		done:     make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

// allow reports whether another request from the given IP fits in the
// current window.
func (rl *rateLimiter) allow(ip string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[ip]
	if !ok || now.Sub(v.windowStart) > time.Minute {
		rl.visitors[ip] = &visitor{windowStart: now, lastSeen: now, count: 1}
		return true
	}

	v.count++
	v.lastSeen = now
	return v.count <= requestsPerMinute
}

func (rl *rateLimiter) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.done:
			return
		}
	}
}

// sweep drops visitors that have been quiet long enough to never hit the
// limit again.
func (rl *rateLimiter) sweep() {
	cutoff := time.Now().Add(-staleAfter)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, ip)
		}
	}
}

func (rl *rateLimiter) stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}
