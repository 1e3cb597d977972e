// internal/engine/dedup.go
package engine

import "github.com/naveenvasou/cerina-v0/internal/types"

// dedupGuard tracks every accepted event id for one session. The set only
// grows; sessions are bounded in practice so there is no eviction.
type dedupGuard struct {
	seen map[types.EventID]struct{}
}

func newDedupGuard() *dedupGuard {
	return &dedupGuard{seen: make(map[types.EventID]struct{})}
}

// Accept records the id and reports whether it was new. Events without an
// id carry no dedup key and are always accepted.
func (d *dedupGuard) Accept(id types.EventID) bool {
	if id == "" {
		return true
	}
	if _, ok := d.seen[id]; ok {
		return false
	}
	d.seen[id] = struct{}{}
	return true
}

// Len returns the number of recorded ids.
func (d *dedupGuard) Len() int {
	return len(d.seen)
}
