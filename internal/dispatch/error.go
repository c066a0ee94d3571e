package dispatch

import "fmt"

// IncompatibleVisitorError indicates a plain dispatch walked an object's
// full ancestor list without finding a matching handler. It names the
// object's most-derived type, not the last ancestor tried.
type IncompatibleVisitorError struct {
	TypeName string
}

func (e *IncompatibleVisitorError) Error() string {
	return fmt.Sprintf("incompatible visitor for %s", e.TypeName)
}

func NewIncompatibleVisitorError(typeName string) *IncompatibleVisitorError {
	return &IncompatibleVisitorError{TypeName: typeName}
}

// InvalidVisitorError indicates no handler exists for the exact requested
// type. Reference-flavored casts and empty-ancestor objects report it; the
// name carried is the requested target type.
type InvalidVisitorError struct {
	TypeName string
}

func (e *InvalidVisitorError) Error() string {
	return fmt.Sprintf("invalid visitor for %s", e.TypeName)
}

func NewInvalidVisitorError(typeName string) *InvalidVisitorError {
	return &InvalidVisitorError{TypeName: typeName}
}
