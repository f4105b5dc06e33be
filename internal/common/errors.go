package common

import (
	"errors"
	"fmt"
)

// Sentinel errors used for branching across packages.
var (
	// ErrNotFound indicates a requested artifact does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized indicates a caller failed the shared-secret check.
	ErrUnauthorized = errors.New("unauthorized access")
	// ErrInvalidConfiguration indicates configuration issues.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// WrapError wraps an error with additional context information.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// WrapErrorf wraps an error with formatted context information.
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// NewError creates a new error with a formatted message.
func NewError(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// ValidationError represents validation errors with field-specific information.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s': %s (value: %v)", e.Field, e.Message, e.Value)
}

// NewValidationError creates a new validation error.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// ConfigurationError represents configuration-related errors. It is fatal to
// the operation that needs the missing configuration and is never retried.
type ConfigurationError struct {
	Section string
	Field   string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	if e.Section != "" && e.Field != "" {
		return fmt.Sprintf("configuration error in section '%s', field '%s': %s", e.Section, e.Field, e.Reason)
	} else if e.Section != "" {
		return fmt.Sprintf("configuration error in section '%s': %s", e.Section, e.Reason)
	}
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// NewConfigurationError creates a new configuration error.
func NewConfigurationError(section, field, reason string) *ConfigurationError {
	return &ConfigurationError{
		Section: section,
		Field:   field,
		Reason:  reason,
	}
}

// RenderError represents a navigation or rendering failure for one URL. It is
// isolated to that URL's outcome and never aborts a batch.
type RenderError struct {
	URL     string
	Reason  string
	Wrapped error
}

func (e *RenderError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("render error for '%s': %s: %v", e.URL, e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("render error for '%s': %s", e.URL, e.Reason)
}

func (e *RenderError) Unwrap() error {
	return e.Wrapped
}

// NewRenderError creates a new render error.
func NewRenderError(url, reason string, wrapped error) *RenderError {
	return &RenderError{
		URL:     url,
		Reason:  reason,
		Wrapped: wrapped,
	}
}

// StoreError represents an I/O failure in the artifact store.
type StoreError struct {
	Op       string
	Filename string
	Wrapped  error
}

func (e *StoreError) Error() string {
	if e.Filename != "" {
		return fmt.Sprintf("store %s failed for '%s': %v", e.Op, e.Filename, e.Wrapped)
	}
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Wrapped)
}

func (e *StoreError) Unwrap() error {
	return e.Wrapped
}

// NewStoreError creates a new store error.
func NewStoreError(op, filename string, wrapped error) *StoreError {
	return &StoreError{
		Op:       op,
		Filename: filename,
		Wrapped:  wrapped,
	}
}

// DimensionMismatchError indicates two captures cannot be compared because
// their rasters differ in size. There is no resizing fallback.
type DimensionMismatchError struct {
	WidthA, HeightA int
	WidthB, HeightB int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("images must be the same size for comparison: %dx%d vs %dx%d",
		e.WidthA, e.HeightA, e.WidthB, e.HeightB)
}

// NotificationError represents a mail transport failure. It does not roll
// back already persisted artifacts.
type NotificationError struct {
	URL     string
	Wrapped error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notification failed for '%s': %v", e.URL, e.Wrapped)
}

func (e *NotificationError) Unwrap() error {
	return e.Wrapped
}

// NewNotificationError creates a new notification error.
func NewNotificationError(url string, wrapped error) *NotificationError {
	return &NotificationError{URL: url, Wrapped: wrapped}
}
