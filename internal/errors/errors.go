// Package errors provides the HomeAI error taxonomy.
//
// Every external failure is caught at its call site and converted into a
// degraded-but-valid reply; nothing here is retried.
package errors

import (
	"errors"
	"strings"
)

// ============================================================
// Error Categories
// ============================================================

// Category defines the type of error for handling decisions.
type Category int

const (
	// CategoryUserFacing errors become the reply text itself so the
	// conversation can continue (no properties on file, invalid selection).
	CategoryUserFacing Category = iota

	// CategoryDegraded errors mean a provider call failed and a fixed
	// fallback sentence was (or should be) used instead.
	CategoryDegraded

	// CategoryLookup errors are tool-side lookup failures, surfaced to the
	// generation provider as an {error: ...} payload.
	CategoryLookup

	// CategoryContract errors are programming-contract violations, such as
	// the provider requesting a tool that was never offered. Fatal.
	CategoryContract
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryUserFacing:
		return "user_facing"
	case CategoryDegraded:
		return "degraded"
	case CategoryLookup:
		return "lookup"
	case CategoryContract:
		return "contract"
	default:
		return "unknown"
	}
}

// ============================================================
// AppError - Main Error Type
// ============================================================

// AppError is the main error type for all HomeAI errors.
type AppError struct {
	// Code is a unique error code for programmatic handling
	Code string

	// Message is a user-friendly error message
	Message string

	// Category determines how the error should be handled
	Category Category

	// Inner is the underlying error
	Inner error
}

// Error returns the error message.
func (e *AppError) Error() string {
	var sb strings.Builder

	if e.Code != "" {
		sb.WriteString("[")
		sb.WriteString(e.Code)
		sb.WriteString("] ")
	}

	sb.WriteString(e.Message)

	if e.Inner != nil {
		innerMsg := e.Inner.Error()
		if innerMsg != "" && innerMsg != e.Message {
			sb.WriteString(": ")
			sb.WriteString(innerMsg)
		}
	}

	return sb.String()
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Inner
}

// ============================================================
// Error Constructors
// ============================================================

// New creates a new AppError.
func New(code, message string, category Category) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Category: category,
	}
}

// Wrap wraps an existing error with context.
func Wrap(err error, code, message string, category Category) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:     code,
		Message:  message,
		Category: category,
		Inner:    err,
	}
}

// UserFacing creates an error whose message doubles as the agent reply.
func UserFacing(code, message string) *AppError {
	return New(code, message, CategoryUserFacing)
}

// Lookup creates a tool-side lookup failure.
func Lookup(code, message string, inner error) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Category: CategoryLookup,
		Inner:    inner,
	}
}

// ============================================================
// Error Codes
// ============================================================

const (
	// Provider errors
	CodeProviderUnavailable = "PROVIDER_UNAVAILABLE"
	CodeProviderParseError  = "PROVIDER_PARSE_ERROR"

	// Property errors
	CodeNoProperties     = "NO_PROPERTIES"
	CodeInvalidSelection = "INVALID_SELECTION"

	// Tool errors
	CodeToolNotFound     = "TOOL_NOT_FOUND"
	CodeValuationFailed  = "VALUATION_FAILED"
	CodePlacesFailed     = "PLACES_FAILED"
	CodeWeatherFailed    = "WEATHER_FAILED"
	CodeDocumentNotFound = "DOCUMENT_NOT_FOUND"

	// Config errors
	CodeConfigInvalid = "CONFIG_INVALID"
)

// ============================================================
// Helpers
// ============================================================

// GetCategory extracts the category from an error.
// Returns CategoryLookup for non-AppError errors.
func GetCategory(err error) Category {
	if err == nil {
		return CategoryLookup
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Category
	}

	return CategoryLookup
}

// IsUserFacing reports whether the error's message should be returned as
// the reply text rather than propagated.
func IsUserFacing(err error) bool {
	return GetCategory(err) == CategoryUserFacing
}

// GetMessage extracts the bare message from an error, without the code
// prefix or inner-error chain. Non-AppError errors yield Error().
func GetMessage(err error) string {
	if err == nil {
		return ""
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}

	return err.Error()
}
