// Package expenseerror defines the typed errors shared by the store, the AI
// services and the controller. Every type wraps its cause so callers can use
// errors.Is and errors.As.
package expenseerror

import "fmt"

// ParseError represents a stored row whose field could not be decoded.
type ParseError struct {
	Source string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Source, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// StorageError represents a failed operation against a backing store.
type StorageError struct {
	Backend string
	Op      string
	Path    string
	Err     error
}

func (e *StorageError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s storage %s failed for '%s': %v", e.Backend, e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s storage %s failed: %v", e.Backend, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ServiceError represents a failed call to a remote language-model service.
type ServiceError struct {
	Service string
	Op      string
	Err     error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Service, e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
