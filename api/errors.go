package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownEndpoint is returned for a name outside the endpoint
	// registry. It is a programming error and is never shown to users.
	ErrUnknownEndpoint = errors.New("unknown API endpoint")

	// ErrUnreachable matches every *TransportError.
	ErrUnreachable = errors.New("backend unreachable")

	// ErrRejected matches every *RejectionError.
	ErrRejected = errors.New("backend rejected the request")
)

// TransportError means the backend could not be reached or did not answer
// with a decodable JSON envelope.
type TransportError struct {
	Endpoint string
	Status   int // 0 when no response was received
	Err      error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Endpoint, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrUnreachable, e.Err}
}

// RejectionError means the backend answered but declined the operation:
// {"success": false}, or no data where data is required.
type RejectionError struct {
	Endpoint string
	Reason   string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%s: rejected: %s", e.Endpoint, e.Reason)
}

func (e *RejectionError) Is(target error) bool {
	return target == ErrRejected
}

// IsUnreachable reports whether err is a transport failure.
func IsUnreachable(err error) bool {
	return errors.Is(err, ErrUnreachable)
}

// IsRejected reports whether err is a backend rejection.
func IsRejected(err error) bool {
	return errors.Is(err, ErrRejected)
}
