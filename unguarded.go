package singleton

// Unguarded is a mutable slot with no synchronization. It belongs to a single
// owner: every Initialize and Get must happen on one goroutine, or under a
// lock the caller holds. Concurrent use is a data race.
//
// Initialize overwrites unconditionally, so the last call wins. The zero
// Unguarded is empty and ready to use.
type Unguarded[T any] struct {
	name  string
	value *T
}

func NewUnguarded[T any](ops ...OptionFunc) *Unguarded[T] {
	var opts = buildOption(ops)

	return &Unguarded[T]{
		name: opts.Name,
	}
}

func (u *Unguarded[T]) Name() string {
	if u.name == "" {
		return typeName[T]()
	}
	return u.name
}

func (u *Unguarded[T]) Initialize(instance T) {
	u.value = &instance
}

func (u *Unguarded[T]) Initialized() bool {
	return u.value != nil
}

// Get returns the stored value for in-place mutation. It panics with
// *UninitializedError if Initialize was never called.
func (u *Unguarded[T]) Get() *T {
	if u.value == nil {
		panic(&UninitializedError{Name: u.Name()})
	}
	return u.value
}
