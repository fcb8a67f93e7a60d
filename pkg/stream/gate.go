// ABOUTME: Fill gate that delays playback until enough audio has buffered
// ABOUTME: Fires exactly once per session to absorb arrival jitter
package stream

import "sync/atomic"

// FillGate tracks whether the buffer has reached the initial threshold.
// The transition from unfilled to filled happens at most once; it never
// resets within a session.
type FillGate struct {
	threshold int
	filled    atomic.Bool
}

// NewFillGate creates a gate with the given sample threshold. A threshold
// of zero or less means the gate is open immediately.
func NewFillGate(threshold int) *FillGate {
	g := &FillGate{threshold: threshold}
	if threshold <= 0 {
		g.filled.Store(true)
	}
	return g
}

// Observe checks the current buffered length against the threshold and
// returns true if this call fired the gate. Idempotent after firing.
func (g *FillGate) Observe(length int) bool {
	if length < g.threshold {
		return false
	}
	return g.filled.CompareAndSwap(false, true)
}

// ForceOpen fires the gate regardless of the threshold. Used when the
// response ends before enough audio arrived to fill naturally. Returns
// true if this call fired the gate.
func (g *FillGate) ForceOpen() bool {
	return g.filled.CompareAndSwap(false, true)
}

// Filled reports whether the gate has fired.
func (g *FillGate) Filled() bool {
	return g.filled.Load()
}
