package singleton

import "go.uber.org/atomic"

// WriteGuard is an exclusive handle on a Cell. Release unlocks it; calling
// Release more than once is harmless.
type WriteGuard[T any] struct {
	cell     *Cell[T]
	released atomic.Bool
}

func (g *WriteGuard[T]) Value() *T {
	if g.released.Load() {
		panic(ErrReleased)
	}
	return &g.cell.value
}

func (g *WriteGuard[T]) Release() {
	if !g.released.Swap(true) {
		g.cell.mu.Unlock()
	}
}

// ReadGuard is a shared handle on a Cell. The value it exposes must be
// treated as read-only.
type ReadGuard[T any] struct {
	cell     *Cell[T]
	released atomic.Bool
}

func (g *ReadGuard[T]) Value() *T {
	if g.released.Load() {
		panic(ErrReleased)
	}
	return &g.cell.value
}

func (g *ReadGuard[T]) Release() {
	if !g.released.Swap(true) {
		g.cell.mu.RUnlock()
	}
}
