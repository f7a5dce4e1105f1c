package registry

import (
	"reflect"
	"strings"
	"sync"

	"golang.org/x/exp/slices"
)

// Registry maps a Go type to a single value. It is safe for concurrent use
// and its zero value is empty and ready.
type Registry[T any] struct {
	mu  sync.RWMutex
	set map[reflect.Type]T
}

type Ctor[T any] func() T

func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func (reg *Registry[T]) init() {
	if reg.set == nil {
		reg.set = make(map[reflect.Type]T)
	}
}

// Register stores value under the type of node. It reports false and keeps
// the existing value when the type is already registered.
func (reg *Registry[T]) Register(node interface{}, value T) bool {
	return reg.RegisterType(reflect.ValueOf(node).Type(), value)
}

func (reg *Registry[T]) RegisterType(typ reflect.Type, value T) bool {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.init()

	if _, ok := reg.set[typ]; ok {
		return false
	}
	reg.set[typ] = value
	return true
}

func (reg *Registry[T]) Lookup(node interface{}) (value T, ok bool) {
	return reg.LookupType(reflect.ValueOf(node).Type())
}

func (reg *Registry[T]) LookupType(typ reflect.Type) (value T, ok bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	value, ok = reg.set[typ]
	return value, ok
}

// LoadOrCreate returns the value registered for typ, calling ctor to create
// it on first use. ctor runs at most once per type.
func (reg *Registry[T]) LoadOrCreate(typ reflect.Type, ctor Ctor[T]) T {
	if value, ok := reg.LookupType(typ); ok {
		return value
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.init()

	if value, ok := reg.set[typ]; ok {
		return value
	}

	value := ctor()
	reg.set[typ] = value
	return value
}

func (reg *Registry[T]) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	return len(reg.set)
}

// Types returns the registered types ordered by their string form.
func (reg *Registry[T]) Types() []reflect.Type {
	reg.mu.RLock()
	types := make([]reflect.Type, 0, len(reg.set))
	for typ := range reg.set {
		types = append(types, typ)
	}
	reg.mu.RUnlock()

	slices.SortFunc(types, func(a, b reflect.Type) int {
		return strings.Compare(a.String(), b.String())
	})
	return types
}
