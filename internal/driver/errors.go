package driver

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyInitialized is returned by a second Initialize call.
	ErrAlreadyInitialized = errors.New("driver: already initialized")

	// ErrNotInitialized is returned by OnClick before Initialize succeeded.
	ErrNotInitialized = errors.New("driver: not initialized")

	// ErrConstruct wraps engine construction failures.
	ErrConstruct = errors.New("driver: engine construction failed")

	// ErrTooManyFailures halts a skipping loop after too many consecutive faults.
	ErrTooManyFailures = errors.New("driver: too many consecutive frame failures")

	// ErrNoTarget is returned for a pointer event without a target element.
	ErrNoTarget = errors.New("driver: pointer event has no target")
)

// FaultError is a failure raised by the engine during one step
// ("construct", "advance", "render" or "click").
type FaultError struct {
	Step string
	Err  error
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("driver: %s: %v", e.Step, e.Err)
}

func (e *FaultError) Unwrap() error {
	return e.Err
}

// guard runs fn and converts both returned errors and panics to *FaultError.
func guard(step string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &FaultError{Step: step, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	if fnErr := fn(); fnErr != nil {
		return &FaultError{Step: step, Err: fnErr}
	}
	return nil
}
