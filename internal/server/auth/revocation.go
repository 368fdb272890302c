package auth

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/educloud/internal/cryptox"
)

// RevocationList remembers logged-out tokens until they would have expired
// anyway. Token ids are stored as HMACs under key, never in the clear.
type RevocationList struct {
	mu      sync.Mutex
	key     string
	revoked map[string]time.Time
}

func NewRevocationList(key string) *RevocationList {
	return &RevocationList{key: key, revoked: make(map[string]time.Time)}
}

func (r *RevocationList) Revoke(c *Claims, now time.Time) {
	expires := now
	if c.ExpiresAt != nil {
		expires = c.ExpiresAt.Time
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.prune(now)
	r.revoked[cryptox.HMACSHA256Hex(c.ID, r.key)] = expires
}

func (r *RevocationList) IsRevoked(c *Claims) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.revoked[cryptox.HMACSHA256Hex(c.ID, r.key)]
	return ok
}

// Len reports how many revocations are still tracked.
func (r *RevocationList) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.revoked)
}

func (r *RevocationList) prune(now time.Time) {
	for id, exp := range r.revoked {
		if now.After(exp) {
			delete(r.revoked, id)
		}
	}
}
