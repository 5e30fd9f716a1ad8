package lightsheet

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig is matched by every configuration error.
	ErrConfig   = errors.New("invalid configuration")
	ErrNoLenses = errors.New("microscope has no lenses")
	ErrNoCamera = errors.New("microscope has no camera")
)

// ConfigError reports one rejected configuration value. Index is the lens
// position for lens fields and -1 otherwise.
type ConfigError struct {
	Field string
	Index int
	Err   error
}

func configErr(field string, index int, format string, args ...interface{}) *ConfigError {
	return &ConfigError{Field: field, Index: index, Err: fmt.Errorf(format, args...)}
}

func (e *ConfigError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s[%d]: %v", e.Field, e.Index, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() []error { return []error{ErrConfig, e.Err} }

// FitError reports a Gaussian fit that failed on one axis.
type FitError struct {
	Axis Axis
	Err  error
}

func (e *FitError) Error() string { return fmt.Sprintf("%s fit: %v", e.Axis, e.Err) }

func (e *FitError) Unwrap() error { return e.Err }
