package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// ErrorKind classifies a generation failure
type ErrorKind int

const (
	// KindUnknownProvider means the provider name maps to no client variant
	KindUnknownProvider ErrorKind = iota + 1
	// KindConnectionFailed means the backend could not be reached or sent nothing back
	KindConnectionFailed
	// KindBackendError means the backend answered with an error
	KindBackendError
	// KindEmptyCompletion means the backend answered without a completion
	KindEmptyCompletion
)

// Sentinel errors matched by errors.Is against *Error
var (
	ErrUnknownProvider  = errors.New("unknown provider")
	ErrConnectionFailed = errors.New("connection failed")
	ErrBackendError     = errors.New("backend error")
	ErrEmptyCompletion  = errors.New("empty completion")
)

// String returns the string representation of ErrorKind
func (k ErrorKind) String() string {
	switch k {
	case KindUnknownProvider:
		return "UnknownProvider"
	case KindConnectionFailed:
		return "ConnectionFailed"
	case KindBackendError:
		return "BackendError"
	case KindEmptyCompletion:
		return "EmptyCompletion"
	default:
		return "Unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindUnknownProvider:
		return ErrUnknownProvider
	case KindConnectionFailed:
		return ErrConnectionFailed
	case KindBackendError:
		return ErrBackendError
	case KindEmptyCompletion:
		return ErrEmptyCompletion
	default:
		return nil
	}
}

// Error is returned by every Client and by ProviderFactory.Create
type Error struct {
	Kind       ErrorKind
	Provider   string
	StatusCode int // 0 when no HTTP response was received
	Message    string
	Err        error
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder
	if e.Provider != "" {
		b.WriteString(e.Provider)
		b.WriteString(": ")
	}
	if s := e.Kind.sentinel(); s != nil {
		b.WriteString(s.Error())
	} else {
		b.WriteString("generation failed")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's kind
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// HTTPStatusCode returns the backend's HTTP status, or 0 when none was received
func (e *Error) HTTPStatusCode() int {
	return e.StatusCode
}

func newError(kind ErrorKind, provider string, status int, msg string, cause error) *Error {
	return &Error{Kind: kind, Provider: provider, StatusCode: status, Message: msg, Err: cause}
}

func connectionFailed(provider string, status int, format string, args ...interface{}) *Error {
	return newError(KindConnectionFailed, provider, status, fmt.Sprintf(format, args...), nil)
}

// IsRetryable reports whether regenerating might succeed where err failed.
// Nothing in this package retries on its own; the interactive caller uses
// this to decide whether to offer another attempt.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	// User interrupted
	if errors.Is(err, context.Canceled) {
		return false
	}

	var e *Error
	if !errors.As(err, &e) {
		return isTransient(err)
	}

	switch e.Kind {
	case KindUnknownProvider:
		return false
	case KindEmptyCompletion:
		return true
	case KindBackendError:
		return isRetryableStatus(e.StatusCode)
	case KindConnectionFailed:
		if e.Err == nil {
			return true
		}
		return isTransient(e.Err)
	default:
		return false
	}
}

// isTransient classifies transport level causes
func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr *net.OpError
	if errors.As(err, &netErr) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var timeoutErr interface{ Timeout() bool }
	if errors.As(err, &timeoutErr) && timeoutErr.Timeout() {
		return true
	}

	return strings.Contains(strings.ToLower(err.Error()), "timeout")
}

// isRetryableStatus classifies HTTP status codes
func isRetryableStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusTooManyRequests, // 429
		http.StatusBadGateway,         // 502
		http.StatusServiceUnavailable, // 503
		http.StatusGatewayTimeout:     // 504
		return true
	case http.StatusBadRequest, // 400
		http.StatusUnauthorized, // 401
		http.StatusForbidden,    // 403
		http.StatusNotFound:     // 404
		return false
	default:
		// Server errors are generally retryable
		return statusCode >= 500
	}
}
