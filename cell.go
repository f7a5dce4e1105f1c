// Package singleton is the runtime behind the accessors written by
// singletongen: a locked, first-write-wins Cell and an unsynchronized
// Unguarded slot, one per Go type within a Scope.
package singleton

import (
	"sync"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
)

// Cell holds at most one value of T behind a reader/writer lock.
//
// The first Initialize stores the value, every later Initialize is ignored.
// Write and Read panic with *UninitializedError until then. A panic inside
// Update poisons the cell and every following access panics with
// *PoisonedError.
//
// The zero Cell is ready to use.
type Cell[T any] struct {
	name string
	log  *llogger

	setup sync.Once
	mu    sync.RWMutex
	value T
	ready atomic.Bool

	poisoned atomic.Bool
	cause    interface{}
}

func NewCell[T any](ops ...OptionFunc) *Cell[T] {
	var opts = buildOption(ops)

	cell := &Cell[T]{
		name: opts.Name,
	}
	if opts.Log != nil {
		cell.log = stdLogger(opts.Log)
	}
	cell.init()
	return cell
}

func (c *Cell[T]) init() {
	c.setup.Do(func() {
		if c.name == "" {
			c.name = typeName[T]()
		}
		if c.log == nil {
			c.log = stdLogger(nil)
		}
	})
}

func (c *Cell[T]) Name() string {
	c.init()
	return c.name
}

func (c *Cell[T]) Initialized() bool {
	return c.ready.Load()
}

// Initialize stores instance unless the cell already holds a value. It
// reports whether instance was stored.
func (c *Cell[T]) Initialize(instance T) bool {
	return c.InitializeWith(func() T { return instance })
}

// InitializeWith is Initialize with a constructor that only runs when the
// cell is still empty. A panicking constructor leaves the cell empty.
func (c *Cell[T]) InitializeWith(ctor func() T) bool {
	c.init()

	stored := !c.ready.Load() && c.store(ctor)
	if stored {
		c.log.debug("singleton initialized", c.name)
	} else {
		c.log.debug("singleton already initialized, instance discarded", c.name)
	}
	return stored
}

func (c *Cell[T]) store(ctor func() T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ready.Load() {
		return false
	}
	c.value = ctor()
	c.ready.Store(true)
	return true
}

func (c *Cell[T]) mustInitialized() {
	c.init()
	if !c.ready.Load() {
		panic(&UninitializedError{Name: c.name})
	}
}

// Write blocks until no reader or writer holds the cell and returns an
// exclusive guard. The guard must be released.
func (c *Cell[T]) Write() *WriteGuard[T] {
	c.mustInitialized()

	c.mu.Lock()
	if c.poisoned.Load() {
		cause := c.cause
		c.mu.Unlock()
		panic(&PoisonedError{Name: c.name, Cause: cause})
	}

	return &WriteGuard[T]{cell: c}
}

// Read blocks while a writer holds the cell and returns a shared guard. Any
// number of read guards may be held at once.
func (c *Cell[T]) Read() *ReadGuard[T] {
	c.mustInitialized()

	c.mu.RLock()
	if c.poisoned.Load() {
		cause := c.cause
		c.mu.RUnlock()
		panic(&PoisonedError{Name: c.name, Cause: cause})
	}

	return &ReadGuard[T]{cell: c}
}

// Update runs fn with exclusive access to the value. If fn panics the cell
// is poisoned before the panic continues.
func (c *Cell[T]) Update(fn func(v *T)) {
	g := c.Write()

	defer func() {
		if r := recover(); r != nil {
			c.poisoned.Store(true)
			c.cause = r
			g.Release()
			c.log.warn("singleton poisoned", c.name, "cause", r)
			panic(r)
		}
		g.Release()
	}()

	fn(g.Value())
}

// View runs fn with shared access to the value. fn must not modify it.
func (c *Cell[T]) View(fn func(v *T)) {
	g := c.Read()
	defer g.Release()

	fn(g.Value())
}

// Snapshot returns a deep copy of the value taken under the read lock.
func (c *Cell[T]) Snapshot() (T, error) {
	var out T

	g := c.Read()
	defer g.Release()

	if err := copier.CopyWithOption(&out, g.Value(), copier.Option{DeepCopy: true}); err != nil {
		return out, errors.Wrapf(err, "snapshot %s", c.name)
	}
	return out, nil
}
