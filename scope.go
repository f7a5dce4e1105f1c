package singleton

import (
	"reflect"

	"github.com/akrennmair/slice"
	"github.com/hnhuaxi/singleton/registry"
)

// Scope owns one singleton slot per Go type. Generated code uses the
// process-wide Default scope; callers that want an explicit, passable owner
// create their own with NewScope.
type Scope struct {
	opts   Option
	safe   registry.Registry[any]
	unsafe registry.Registry[any]
}

func NewScope(ops ...OptionFunc) *Scope {
	return &Scope{
		opts: buildOption(ops),
	}
}

var defaultScope = NewScope()

func Default() *Scope {
	return defaultScope
}

// SafeIn returns the locked cell for T in scope, creating it on first use.
// A nil scope means Default.
func SafeIn[T any](scope *Scope) *Cell[T] {
	if scope == nil {
		scope = defaultScope
	}

	created := scope.safe.LoadOrCreate(registry.TypeOf[T](), func() any {
		return NewCell[T](OptLogger(scope.opts.Log))
	})

	cell, ok := created.(*Cell[T])
	if !ok {
		panic("invalid singleton cell")
	}
	return cell
}

// UnsafeIn returns the unguarded slot for T in scope. Creating the slot is
// synchronized; using it is not.
func UnsafeIn[T any](scope *Scope) *Unguarded[T] {
	if scope == nil {
		scope = defaultScope
	}

	created := scope.unsafe.LoadOrCreate(registry.TypeOf[T](), func() any {
		return NewUnguarded[T]()
	})

	slot, ok := created.(*Unguarded[T])
	if !ok {
		panic("invalid singleton slot")
	}
	return slot
}

func Safe[T any]() *Cell[T] {
	return SafeIn[T](defaultScope)
}

func Unsafe[T any]() *Unguarded[T] {
	return UnsafeIn[T](defaultScope)
}

// Types lists the types that have a slot in scope, safe ones first.
func (scope *Scope) Types() []string {
	var names = func(t reflect.Type) string { return t.String() }

	return append(
		slice.Map(scope.safe.Types(), names),
		slice.Map(scope.unsafe.Types(), names)...,
	)
}

func (scope *Scope) Len() int {
	return scope.safe.Len() + scope.unsafe.Len()
}
