package hostinfo

import (
	"errors"
	"fmt"
)

var (
	// ErrHostnameDecode matches errors raised when the OS hostname is not valid UTF-8.
	ErrHostnameDecode = errors.New("hostname is not valid UTF-8")
	// ErrUptimeUnavailable matches errors raised when host uptime cannot be read.
	ErrUptimeUnavailable = errors.New("host uptime unavailable")
)

// HostnameDecodeError reports a hostname whose raw bytes do not decode as text.
type HostnameDecodeError struct {
	Raw string
}

func (e *HostnameDecodeError) Error() string {
	return fmt.Sprintf("hostname %q is not valid UTF-8", e.Raw)
}

// Is lets errors.Is match against ErrHostnameDecode.
func (e *HostnameDecodeError) Is(target error) bool {
	return target == ErrHostnameDecode
}

// UptimeUnavailableError reports a failed uptime lookup.
type UptimeUnavailableError struct {
	Cause error
}

func (e *UptimeUnavailableError) Error() string {
	if e.Cause == nil {
		return ErrUptimeUnavailable.Error()
	}
	return fmt.Sprintf("%s: %v", ErrUptimeUnavailable, e.Cause)
}

// Is lets errors.Is match against ErrUptimeUnavailable.
func (e *UptimeUnavailableError) Is(target error) bool {
	return target == ErrUptimeUnavailable
}

func (e *UptimeUnavailableError) Unwrap() error {
	return e.Cause
}
