// Package nonce produces the per-request freshness value sent with auth
// requests.
package nonce

import (
	"strconv"
	"sync"
	"time"
)

// NowFunc returns the current time. Tests replace it to pin the clock.
type NowFunc func() time.Time

// Generator returns Unix-millisecond timestamps as decimal strings. Values
// never repeat or go backwards within one Generator: when the clock has not
// advanced past the last value, the last value plus one is returned.
type Generator struct {
	mu   sync.Mutex
	now  NowFunc
	last int64
}

func New(now NowFunc) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{now: now}
}

func (g *Generator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.now == nil {
		g.now = time.Now
	}

	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms

	return strconv.FormatInt(ms, 10)
}
