// Package utils holds small helpers shared by the NWB packages.
package utils

import "fmt"

// NWBError carries the operation and, when known, the container path
// an error occurred at.
type NWBError struct {
	Context string
	Path    string
	Cause   error
}

// Error implements the error interface.
func (e *NWBError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Context, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Context, e.Path, e.Cause)
}

// Unwrap provides compatibility with errors.Is and errors.As.
func (e *NWBError) Unwrap() error {
	return e.Cause
}

// WrapError creates a contextual error. A nil cause yields nil.
func WrapError(context string, cause error) error {
	if cause == nil {
		return nil
	}
	return &NWBError{
		Context: context,
		Cause:   cause,
	}
}

// WrapPathError is WrapError with the container path the failure refers to.
func WrapPathError(context, path string, cause error) error {
	if cause == nil {
		return nil
	}
	return &NWBError{
		Context: context,
		Path:    path,
		Cause:   cause,
	}
}
