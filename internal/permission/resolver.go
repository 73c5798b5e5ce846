package permission

import (
	"context"
	"log/slog"
	"sync"

	"github.com/felixonline247/opolo-cbt-app/internal"
)

// Directory looks up the raw permission value of the role associated with an
// authenticated identity. found is false when the identity has no staff
// record or the staff has no role.
type Directory interface {
	RolePermissions(ctx context.Context, email string) (raw interface{}, found bool, err error)
}

// Resolution tracks the outcome of one permission lookup. It starts pending;
// while pending it neither grants nor denies: Allowed returns ErrUnresolved
// and callers must hold gated actions until resolution completes.
type Resolution struct {
	mu       sync.RWMutex
	resolved bool
	set      Set
}

func NewPendingResolution() *Resolution {
	return &Resolution{}
}

// Complete finishes the resolution with the normalized set.
func (r *Resolution) Complete(set Set) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.set = set
	r.resolved = true
}

// Resolved reports whether the lookup has finished.
func (r *Resolution) Resolved() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.resolved
}

// Allowed answers the permission query. A pending resolution fails closed
// with ErrUnresolved, which is a "wait" signal distinct from a denial.
func (r *Resolution) Allowed(id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.resolved {
		return false, internal.ErrUnresolved
	}
	return r.set.Has(id), nil
}

// Set returns the resolved permission set, or the empty set while pending.
func (r *Resolution) Set() Set {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.resolved {
		return Empty()
	}
	return r.set
}

// Resolver turns an authenticated identity into a queryable permission set
// by loading the associated staff record and its role.
type Resolver struct {
	directory Directory
	logger    *slog.Logger
}

func NewResolver(directory Directory, logger *slog.Logger) *Resolver {
	return &Resolver{directory: directory, logger: logger}
}

// Resolve performs the staff/role lookup for the identity. Identities without
// a staff record or role resolve to the empty set: every query answers false,
// with no error, once resolution completes. Lookup failures leave the
// resolution pending so gated actions stay suspended rather than silently
// denied.
func (r *Resolver) Resolve(ctx context.Context, email string) *Resolution {
	res := NewPendingResolution()

	raw, found, err := r.directory.RolePermissions(ctx, email)
	if err != nil {
		r.logger.Error("permission lookup failed", "error", err, "email", email)
		return res
	}

	if !found {
		r.logger.Warn("identity has no staff record or role", "email", email)
		res.Complete(Empty())
		return res
	}

	set := Parse(raw)
	r.logger.Debug("permissions resolved", "email", email, "permissions", set.Strings())
	res.Complete(set)
	return res
}
