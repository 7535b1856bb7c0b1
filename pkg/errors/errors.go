// Package errors provides custom error types for the pkgsync system.
// These errors separate data conditions that a run tolerates from
// configuration and invariant violations that must abort it.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the pkgsync system
var (
	// ErrAlreadyExists indicates that a resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownDependencyType indicates a dependency type with no configured identity
	ErrUnknownDependencyType = errors.New("unknown dependency type")

	// ErrUnknownURLType indicates a URL type with no configured identity
	ErrUnknownURLType = errors.New("unknown url type")

	// ErrCacheInconsistency indicates the cache no longer matches what was derived from it
	ErrCacheInconsistency = errors.New("cache inconsistency")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// AlreadyExistsError represents a second resource claiming an existing natural key
type AlreadyExistsError struct {
	Resource string
	Key      string
}

// Error implements the error interface
func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s with key %s already exists", e.Resource, e.Key)
}

// Is implements errors.Is support
func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// NewAlreadyExistsError creates a new AlreadyExistsError
func NewAlreadyExistsError(resource, key string) *AlreadyExistsError {
	return &AlreadyExistsError{Resource: resource, Key: key}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// UnknownTypeError reports an enumeration member that has no configured
// persisted identity. It is a deployment defect, never a data defect.
type UnknownTypeError struct {
	Kind  string // "dependency type" or "url type"
	Value string
}

// Error implements the error interface
func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("no identity configured for %s %q", e.Kind, e.Value)
}

// Is implements errors.Is support
func (e *UnknownTypeError) Is(target error) bool {
	switch e.Kind {
	case KindDependencyType:
		return target == ErrUnknownDependencyType
	case KindURLType:
		return target == ErrUnknownURLType
	}
	return false
}

// Kinds accepted by UnknownTypeError.
const (
	KindDependencyType = "dependency type"
	KindURLType        = "url type"
)

// NewUnknownDependencyTypeError creates an UnknownTypeError for a dependency type.
func NewUnknownDependencyTypeError(value string) *UnknownTypeError {
	return &UnknownTypeError{Kind: KindDependencyType, Value: value}
}

// NewUnknownURLTypeError creates an UnknownTypeError for a URL type.
func NewUnknownURLTypeError(value string) *UnknownTypeError {
	return &UnknownTypeError{Kind: KindURLType, Value: value}
}

// CacheInconsistencyError reports a dependency edge computed as removed that
// cannot be found in the cached edge set it was derived from.
type CacheInconsistencyError struct {
	PackageID        string
	DependencyID     string
	DependencyTypeID string
	Cached           []string // "dependency_id / dependency_type_id" for every cached edge
}

// Error implements the error interface
func (e *CacheInconsistencyError) Error() string {
	return fmt.Sprintf("removing %s / %s for %s but not in cache:\n%s",
		e.DependencyID, e.DependencyTypeID, e.PackageID, strings.Join(e.Cached, "\n"))
}

// Is implements errors.Is support
func (e *CacheInconsistencyError) Is(target error) bool {
	return target == ErrCacheInconsistency
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml", "toml"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// ResourceError represents an error during resource operations
type ResourceError struct {
	Operation string // "load", "reconcile", "write", "publish"
	Resource  string // "snapshot", "package", "changeset"
	ID        string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// Helper functions for error checking

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsUnknownType checks if an error reports an unconfigured type identity
func IsUnknownType(err error) bool {
	return errors.Is(err, ErrUnknownDependencyType) || errors.Is(err, ErrUnknownURLType)
}

// IsCacheInconsistency checks if an error is a cache inconsistency
func IsCacheInconsistency(err error) bool {
	return errors.Is(err, ErrCacheInconsistency)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Operation: operation, Path: path, Message: err.Error(), Err: err}
}

// WrapResource wraps an error as a ResourceError
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return &ResourceError{Operation: operation, Resource: resource, ID: id, Message: err.Error(), Err: err}
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, File: file, Message: err.Error(), Err: err}
}
