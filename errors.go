package paging

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyStarted is returned when Start is called on a running controller.
	ErrAlreadyStarted = errors.New("paging: controller already started")

	// ErrStopped is returned when Start is called after Stop.
	ErrStopped = errors.New("paging: controller stopped")
)

// ConfigError reports an option that prevents pagination from starting.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("paging: invalid %s: %s", e.Field, e.Reason)
}

// PageSizeError is returned when the requested page size exceeds the maximum allowed.
type PageSizeError struct {
	Requested int
	Maximum   int
}

func (e *PageSizeError) Error() string {
	return fmt.Sprintf("requested page size %d exceeds maximum allowed page size of %d",
		e.Requested, e.Maximum)
}

// FetchError wraps a failure returned by the PageFunc. The page it names is
// fetched again on the next advance event.
type FetchError struct {
	Epoch     Epoch
	PageIndex int
	Err       error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("paging: fetch page %d (epoch %d): %v", e.PageIndex, e.Epoch, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsConfigError reports whether err is a ConfigError or PageSizeError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	var pe *PageSizeError
	return errors.As(err, &ce) || errors.As(err, &pe)
}
