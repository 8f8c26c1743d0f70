package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/asodi/tracker/localstate"
)

// Snapshot is an immutable view of the session.
type Snapshot struct {
	UserID        string
	Authenticated bool
}

// Context carries the session explicitly to the surfaces that need it. The
// user id is persisted; the authenticated flag never is.
type Context struct {
	gate  *Gate
	store localstate.Store

	mu   sync.RWMutex
	snap Snapshot
}

// Open restores the stored user id. The gate always starts unauthenticated.
func Open(ctx context.Context, store localstate.Store, gate *Gate) (*Context, error) {
	rut, _, err := store.Get(ctx, localstate.KeyUserRUT)
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	c := &Context{gate: gate, store: store, snap: Snapshot{UserID: rut}}
	gate.Logout()
	gate.Subscribe(func(s State) {
		c.mu.Lock()
		c.snap.Authenticated = s == Authenticated
		c.mu.Unlock()
	})
	return c, nil
}

// Snapshot returns the current session view.
func (c *Context) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

// Gate is the gate this context drives.
func (c *Context) Gate() *Gate { return c.gate }

// remember persists rut as the session's user.
func (c *Context) remember(ctx context.Context, rut string) error {
	if err := c.store.Set(ctx, localstate.KeyUserRUT, rut); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	c.mu.Lock()
	c.snap.UserID = rut
	c.mu.Unlock()
	return nil
}

// restore puts rut back as the session's user; an empty rut clears it.
func (c *Context) restore(ctx context.Context, rut string) error {
	if rut != "" {
		return c.remember(ctx, rut)
	}
	c.mu.Lock()
	c.snap.UserID = ""
	c.mu.Unlock()
	if err := c.store.Delete(ctx, localstate.KeyUserRUT); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Logout flips the gate and forgets the stored user id. The gate flips even
// when the store fails.
func (c *Context) Logout(ctx context.Context) error {
	c.gate.Logout()
	c.mu.Lock()
	c.snap.UserID = ""
	c.mu.Unlock()
	if err := c.store.Delete(ctx, localstate.KeyUserRUT); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
