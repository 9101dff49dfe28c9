// Package auth provides ID-based authorization for chat commands.
package auth

import (
	"strconv"
	"sync"
)

// Authorizer validates whether a chat or guild is allowed to execute commands.
type Authorizer interface {
	// IsAllowed returns true if the ID is permitted.
	IsAllowed(id int64) bool

	// Reload replaces the allowlist with a new set of IDs.
	Reload(allowedIDs []int64)
}

// Allowlist implements Authorizer using a set of permitted IDs.
type Allowlist struct {
	mu         sync.RWMutex
	allowed    map[int64]struct{}
	openIfNone bool
}

// NewAllowlist creates an Authorizer that permits only the specified IDs.
func NewAllowlist(allowedIDs []int64) *Allowlist {
	a := &Allowlist{}
	a.Reload(allowedIDs)
	return a
}

// NewOptionalAllowlist creates an Authorizer that permits everyone while
// the list is empty, and only the listed IDs otherwise.
func NewOptionalAllowlist(allowedIDs []int64) *Allowlist {
	a := &Allowlist{openIfNone: true}
	a.Reload(allowedIDs)
	return a
}

// IsAllowed returns true if the ID is in the allowlist.
func (a *Allowlist) IsAllowed(id int64) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.openIfNone && len(a.allowed) == 0 {
		return true
	}
	_, ok := a.allowed[id]
	return ok
}

// IsAllowedString checks a decimal ID such as a Discord snowflake.
// Unparseable IDs are only allowed by an open, empty list.
func (a *Allowlist) IsAllowedString(id string) bool {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		a.mu.RLock()
		defer a.mu.RUnlock()
		return a.openIfNone && len(a.allowed) == 0
	}
	return a.IsAllowed(n)
}

// Reload replaces the allowlist with a new set of IDs.
func (a *Allowlist) Reload(allowedIDs []int64) {
	newAllowed := make(map[int64]struct{}, len(allowedIDs))
	for _, id := range allowedIDs {
		newAllowed[id] = struct{}{}
	}

	a.mu.Lock()
	a.allowed = newAllowed
	a.mu.Unlock()
}
