// Package replay rejects auth requests whose nonce is missing, stale or has
// been seen before.
package replay

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/educloud/internal/common"
)

// Guard tracks accepted nonces per scope (the login email) for one window.
// A nonce is a Unix millisecond timestamp sent both in the X-Nonce header
// and in the request body.
type Guard struct {
	mu     sync.Mutex
	window time.Duration
	now    func() time.Time
	seen   map[string]time.Time
}

func NewGuard(window time.Duration, now func() time.Time) *Guard {
	if now == nil {
		now = time.Now
	}
	return &Guard{window: window, now: now, seen: make(map[string]time.Time)}
}

// Check accepts the nonce at most once. The header may be empty only when
// the body nonce is present; if both are set they must be equal.
func (g *Guard) Check(scope, header, body string) error {
	if body == "" {
		return common.ErrNonceMissing
	}
	if header != "" && header != body {
		return common.ErrNonceMismatch
	}

	ms, err := strconv.ParseInt(body, 10, 64)
	if err != nil || ms <= 0 {
		return fmt.Errorf("%w: not a millisecond timestamp", common.ErrNonceMissing)
	}

	now := g.now()
	issued := time.UnixMilli(ms)
	if d := now.Sub(issued); d > g.window || d < -g.window {
		return common.ErrNonceExpired
	}

	key := scope + "\x00" + body

	g.mu.Lock()
	defer g.mu.Unlock()

	g.prune(now)
	if _, ok := g.seen[key]; ok {
		return common.ErrNonceReplayed
	}
	g.seen[key] = issued
	return nil
}

// Len reports how many nonces are remembered.
func (g *Guard) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.seen)
}

func (g *Guard) prune(now time.Time) {
	for k, issued := range g.seen {
		if now.Sub(issued) > g.window {
			delete(g.seen, k)
		}
	}
}
