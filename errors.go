package singleton

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrUninitialized = errors.New("singleton not initialized")
	ErrPoisoned      = errors.New("singleton poisoned")
	ErrReleased      = errors.New("singleton guard already released")
)

// UninitializedError is the panic value raised when a singleton is accessed
// before Initialize.
type UninitializedError struct {
	Name string
}

func (e *UninitializedError) Error() string {
	return fmt.Sprintf("Singleton %s not initialized!", e.Name)
}

func (e *UninitializedError) Is(target error) bool {
	return target == ErrUninitialized
}

// PoisonedError is the panic value raised when a cell is accessed after a
// writer panicked while holding it.
type PoisonedError struct {
	Name  string
	Cause interface{}
}

func (e *PoisonedError) Error() string {
	return fmt.Sprintf("Singleton %s poisoned by panic: %v", e.Name, e.Cause)
}

func (e *PoisonedError) Is(target error) bool {
	return target == ErrPoisoned
}

// CheckUninitialized reports whether a recovered panic value is an
// uninitialized access.
func CheckUninitialized(r interface{}) bool {
	err, ok := r.(error)
	if !ok {
		return false
	}

	return errors.Is(err, ErrUninitialized)
}

func CheckPoisoned(r interface{}) bool {
	err, ok := r.(error)
	if !ok {
		return false
	}

	return errors.Is(err, ErrPoisoned)
}
