package config

import (
	"errors"
	"fmt"
)

// ErrorKind classifies configuration failures
type ErrorKind int

const (
	// KindIncomplete means provider or model is empty after resolution
	KindIncomplete ErrorKind = iota + 1
	// KindInvalidPersistedFormat means the settings file could not be parsed
	KindInvalidPersistedFormat
	// KindInvalidOverride means an override value could not be coerced
	KindInvalidOverride
)

// String returns the string representation of ErrorKind
func (k ErrorKind) String() string {
	switch k {
	case KindIncomplete:
		return "Incomplete"
	case KindInvalidPersistedFormat:
		return "InvalidPersistedFormat"
	case KindInvalidOverride:
		return "InvalidOverride"
	default:
		return "Unknown"
	}
}

// Sentinel errors for errors.Is matching
var (
	ErrIncomplete             = errors.New("configuration incomplete")
	ErrInvalidPersistedFormat = errors.New("invalid persisted settings")
	ErrInvalidOverride        = errors.New("invalid override")
)

// Error is returned by the settings store and the resolver
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.sentinel(), e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.sentinel(), e.Message)
}

// Unwrap exposes the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error kind
func (e *Error) Is(target error) bool {
	return target == e.sentinel()
}

func (e *Error) sentinel() error {
	switch e.Kind {
	case KindIncomplete:
		return ErrIncomplete
	case KindInvalidPersistedFormat:
		return ErrInvalidPersistedFormat
	case KindInvalidOverride:
		return ErrInvalidOverride
	default:
		return errors.New("configuration error")
	}
}
