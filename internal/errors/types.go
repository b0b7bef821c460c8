// Package errors classifies failures for the SDK so retry policies can tell
// transient trouble from permanent rejection.
package errors

import "fmt"

// Category determines how a failure should be handled by retry logic.
type Category int

const (
	// Recoverable failures may be retried with backoff: 5xx responses,
	// timeouts, connection resets.
	Recoverable Category = iota

	// Irrecoverable failures fail immediately: 4xx rejections other than
	// 408/429.
	Irrecoverable
)

func (c Category) String() string {
	switch c {
	case Recoverable:
		return "Recoverable"
	case Irrecoverable:
		return "Irrecoverable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// ClassifiedError wraps a failure with its category and, for HTTP failures,
// the status and response body.
type ClassifiedError struct {
	Category   Category
	StatusCode int    // 0 for non-HTTP failures
	Body       string // response body, kept for debugging
	Underlying error
}

func (e *ClassifiedError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("[%s] HTTP %d: %v", e.Category, e.StatusCode, e.Underlying)
	}
	return fmt.Sprintf("[%s] %v", e.Category, e.Underlying)
}

func (e *ClassifiedError) Unwrap() error { return e.Underlying }

// IsIrrecoverable reports whether err should not be retried.
func IsIrrecoverable(err error) bool {
	if classified, ok := err.(*ClassifiedError); ok {
		return classified.Category == Irrecoverable
	}
	return false
}
