package model

import (
	"errors"
	"fmt"
)

var ErrInvalidValue = errors.New("invalid value")

// ConfigError is a configuration problem that stops a run before any step is simulated.
// Field is the parameter name as the caller knows it (e.g. "tier1.storage_class").
type ConfigError struct {
	Field  string
	Value  string
	Reason error
}

func (e *ConfigError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s=%q: %v", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.Reason }

func NewConfigError(field, value string, reason error) *ConfigError {
	return &ConfigError{Field: field, Value: value, Reason: reason}
}

// AsConfigError reports whether err carries a *ConfigError.
func AsConfigError(err error) (*ConfigError, bool) {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
