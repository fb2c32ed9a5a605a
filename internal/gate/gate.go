// Package gate implements the hidden admin entry: three rapid activations
// of the public logo within a 2-second inactivity window unlock a redirect
// to the login page.
package gate

import (
	"sync"
	"time"
)

const (
	// DefaultTarget is how many taps unlock the gate.
	DefaultTarget = 3
	// DefaultWindow is the inactivity window; a gap longer than this
	// resets the counter.
	DefaultWindow = 2 * time.Second
)

type tapState struct {
	count   int
	lastTap time.Time
}

// Gate counts taps per client key (IP). State machine per key:
// idle -> counting -> triggered/reset.
type Gate struct {
	mu     sync.Mutex
	states map[string]*tapState
	target int
	window time.Duration
	now    func() time.Time
}

func New() *Gate {
	return &Gate{
		states: make(map[string]*tapState),
		target: DefaultTarget,
		window: DefaultWindow,
		now:    time.Now,
	}
}

// Tap registers one activation for the client and reports whether the
// gate triggered. A trigger consumes the counter; so does 2 seconds of
// silence before the next tap.
func (g *Gate) Tap(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	g.sweep(now)

	state, ok := g.states[key]
	if !ok || now.Sub(state.lastTap) > g.window {
		state = &tapState{}
		g.states[key] = state
	}

	state.count++
	state.lastTap = now

	if state.count >= g.target {
		delete(g.states, key)
		return true
	}
	return false
}

// sweep drops stale counters so the map does not grow with every visitor
// that ever tapped the logo once.
func (g *Gate) sweep(now time.Time) {
	if len(g.states) < 1024 {
		return
	}
	for key, state := range g.states {
		if now.Sub(state.lastTap) > g.window {
			delete(g.states, key)
		}
	}
}
