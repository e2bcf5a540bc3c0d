package schema

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrRegistrationAfterFreeze matches registrations attempted once the
	// registry has been frozen.
	ErrRegistrationAfterFreeze = errors.New("route registered after the registry was frozen")
	// ErrInvalidDescriptor matches malformed route descriptors.
	ErrInvalidDescriptor = errors.New("invalid route descriptor")
	// ErrUnsupportedType matches Go types that have no response schema.
	ErrUnsupportedType = errors.New("unsupported response type")
)

// RegistrationAfterFreezeError is returned by Register after Freeze.
type RegistrationAfterFreezeError struct {
	Method string
	Path   string
}

func (e *RegistrationAfterFreezeError) Error() string {
	return fmt.Sprintf("schema: %s %s: %s", e.Method, e.Path, ErrRegistrationAfterFreeze)
}

func (e *RegistrationAfterFreezeError) Is(target error) bool {
	return target == ErrRegistrationAfterFreeze
}

// InvalidDescriptorError reports a descriptor Register refused.
type InvalidDescriptorError struct {
	Method string
	Path   string
	Reason string
}

func (e *InvalidDescriptorError) Error() string {
	return fmt.Sprintf("schema: %s %q: %s: %s", e.Method, e.Path, ErrInvalidDescriptor, e.Reason)
}

func (e *InvalidDescriptorError) Is(target error) bool {
	return target == ErrInvalidDescriptor
}

// UnsupportedTypeError reports a Go type FromType cannot describe.
type UnsupportedTypeError struct {
	Type   reflect.Type
	Field  string
	Reason string
}

func (e *UnsupportedTypeError) Error() string {
	name := "<nil>"
	if e.Type != nil {
		name = e.Type.String()
	}
	if e.Field != "" {
		name += "." + e.Field
	}
	return fmt.Sprintf("schema: %s: %s: %s", name, ErrUnsupportedType, e.Reason)
}

func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}
