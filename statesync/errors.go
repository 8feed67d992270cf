package statesync

import (
	"errors"
	"fmt"
)

// ErrNotConnected is returned when an operation needs a live socket
var ErrNotConnected = errors.New("statesync: not connected")

// TransportError wraps a socket-level failure
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("statesync %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
