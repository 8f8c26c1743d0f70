// Package session decides which screen group is mounted and runs the login
// flow that moves a user between them.
package session

import "sync"

// State is the binary authentication flag.
type State int

const (
	Unauthenticated State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// Root is the screen group mounted for a State.
type Root string

const (
	AuthFlow Root = "auth" // login, register, password recovery, profile completion
	MainFlow Root = "main" // tracking screens
)

// Gate holds the authentication flag. Transitions are synchronous and the
// zero value is an unauthenticated gate.
type Gate struct {
	mu        sync.Mutex
	state     State
	observers []func(State)
}

// NewGate returns an unauthenticated gate.
func NewGate() *Gate { return &Gate{} }

// Login marks the session authenticated. It does not re-validate anything.
func (g *Gate) Login() { g.set(Authenticated) }

// Logout marks the session unauthenticated, unconditionally.
func (g *Gate) Logout() { g.set(Unauthenticated) }

// State returns the current flag.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Root returns the screen group that is mounted right now.
func (g *Gate) Root() Root {
	if g.State() == Authenticated {
		return MainFlow
	}
	return AuthFlow
}

// Subscribe registers fn to be called after every transition, including
// repeated ones. Observers run synchronously on the caller's goroutine.
func (g *Gate) Subscribe(fn func(State)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.observers = append(g.observers, fn)
}

func (g *Gate) set(s State) {
	g.mu.Lock()
	g.state = s
	obs := append([]func(State){}, g.observers...)
	g.mu.Unlock()

	for _, fn := range obs {
		fn(s)
	}
}
