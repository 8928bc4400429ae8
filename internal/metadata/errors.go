// Package metadata holds the failure taxonomy shared by the clients that talk to the
// setup source and the value converter.
package metadata

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

// Kind says which external call failed.
type Kind string

const (
	// KindDiscovery is a failed listing of the source tree.
	KindDiscovery Kind = "discovery"
	// KindRawFetch is a failed download of one setup file.
	KindRawFetch Kind = "raw_fetch"
	// KindConversion is a failed upload to the converter.
	KindConversion Kind = "conversion"
)

// Sentinel errors carried in Error.Err.
var (
	ErrTimeout = errors.New("request timed out")
	ErrStatus  = errors.New("unexpected status")
)

// Sentinels for errors.Is matching on Kind alone.
var (
	ErrDiscovery  = &Error{Kind: KindDiscovery}
	ErrRawFetch   = &Error{Kind: KindRawFetch}
	ErrConversion = &Error{Kind: KindConversion}
)

// Error is a transport level failure talking to an external service.
type Error struct {
	Kind       Kind
	Op         string        // "listTree", "fetchRaw", "upload"
	Target     string        // path or filename, if applicable
	StatusCode int           // set when the service answered with a non-2xx status
	Limit      time.Duration // the timeout in force for the call
	Err        error
}

func (e *Error) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("%s %s [%s]: %v", e.Kind, e.Op, e.Target, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Timeout reports whether the call ran out of time.
func (e *Error) Timeout() bool {
	return errors.Is(e.Err, ErrTimeout)
}

// Message is the short text shown to users.
func (e *Error) Message() string {
	switch e.Kind {
	case KindDiscovery:
		return e.message("GitHub request timeout", "GitHub API error")
	case KindRawFetch:
		return e.message("Raw setup fetch timeout", "Raw setup fetch failed")
	case KindConversion:
		return e.message("GoSetups request timeout", "GoSetups upload failed")
	default:
		return e.Error()
	}
}

func (e *Error) message(timeout, status string) string {
	switch {
	case e.Timeout():
		return fmt.Sprintf("%s (%s)", timeout, e.Limit)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: %d", status, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", status, e.Err)
	default:
		return status
	}
}

// Wrap builds an Error for a failed call. Deadline and network timeouts are normalized to
// ErrTimeout so callers only need Timeout().
func Wrap(kind Kind, op, target string, limit time.Duration, err error) *Error {
	if IsTimeout(err) && !errors.Is(err, ErrTimeout) {
		err = fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return &Error{Kind: kind, Op: op, Target: target, Limit: limit, Err: err}
}

// StatusError builds an Error for a non-2xx response.
func StatusError(kind Kind, op, target string, limit time.Duration, status int) *Error {
	return &Error{
		Kind:       kind,
		Op:         op,
		Target:     target,
		StatusCode: status,
		Limit:      limit,
		Err:        fmt.Errorf("%w %d", ErrStatus, status),
	}
}

// IsTimeout reports whether err is a context deadline or a network timeout.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
