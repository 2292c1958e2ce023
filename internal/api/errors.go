package api

import (
	"errors"
	"fmt"
)

// NotFoundError represents a resource not found error with contextual information.
// This standardized error type provides consistent error handling across all API operations
// for cases where requested resources don't exist in the system.
//
// The error includes resource type and name for precise error reporting and
// supports custom error messages for specific use cases.
type NotFoundError struct {
	// ResourceType categorizes the type of resource that was not found
	// (e.g., "operation", "manual entry", "test result", "package")
	ResourceType string

	// ResourceName is the specific identifier of the resource that was not found
	ResourceName string

	// Message provides a custom error message if the default format is insufficient
	Message string
}

// Error implements the error interface for NotFoundError.
// Returns either the custom message if provided, or a formatted default message
// using the resource type and name.
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s not found", e.ResourceType, e.ResourceName)
}

// IsNotFound checks if an error is a NotFoundError using error unwrapping.
// This function provides a type-safe way to check for not found conditions
// in error handling code, supporting wrapped errors.
//
// Example:
//
//	op, err := handler.GetOperation("fs.delete")
//	if api.IsNotFound(err) {
//	    // Handle not found case
//	}
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// NewNotFoundError creates a new NotFoundError with the specified resource type and name.
// This is the standard way to create not found errors throughout the API.
func NewNotFoundError(resourceType, resourceName string) *NotFoundError {
	return &NotFoundError{
		ResourceType: resourceType,
		ResourceName: resourceName,
	}
}

// NewNotFoundErrorWithMessage creates a new NotFoundError with a custom message.
// This is used when the default error format doesn't provide sufficient context.
func NewNotFoundErrorWithMessage(resourceType, resourceName, message string) *NotFoundError {
	return &NotFoundError{
		ResourceType: resourceType,
		ResourceName: resourceName,
		Message:      message,
	}
}

// Specific NotFoundError constructors for each resource type.
// These provide convenient, type-specific error creation with consistent naming.
var (
	// NewOperationNotFoundError creates an operation not found error.
	NewOperationNotFoundError = func(id string) *NotFoundError {
		return NewNotFoundError("operation", id)
	}

	// NewManualEntryNotFoundError creates a manual entry not found error.
	NewManualEntryNotFoundError = func(name string) *NotFoundError {
		return NewNotFoundError("manual entry", name)
	}

	// NewTestResultNotFoundError creates a test result not found error.
	NewTestResultNotFoundError = func(id string) *NotFoundError {
		return NewNotFoundError("test result", id)
	}

	// NewPackageNotFoundError creates a documentation package not found error.
	NewPackageNotFoundError = func(name string) *NotFoundError {
		return NewNotFoundError("documentation package", name)
	}

	// NewToolNotFoundError creates a tool not found error.
	NewToolNotFoundError = func(name string) *NotFoundError {
		return NewNotFoundError("tool", name)
	}
)

// ConfirmationRequiredError is returned by the execution engine when a
// destructive operation is submitted without confirmation while the
// confirmation gate is active. The operation was not executed and no
// result was recorded.
type ConfirmationRequiredError struct {
	// OperationID identifies the refused operation
	OperationID string

	// RiskLevel is the risk classification that triggered the gate
	RiskLevel RiskLevel
}

// Error implements the error interface for ConfirmationRequiredError.
func (e *ConfirmationRequiredError) Error() string {
	return fmt.Sprintf("operation %s is %s and requires confirmation", e.OperationID, e.RiskLevel)
}

// IsConfirmationRequired checks if an error is a ConfirmationRequiredError
// using error unwrapping.
func IsConfirmationRequired(err error) bool {
	var confErr *ConfirmationRequiredError
	return errors.As(err, &confErr)
}

// NewConfirmationRequiredError creates a ConfirmationRequiredError for the
// given operation.
func NewConfirmationRequiredError(operationID string, risk RiskLevel) *ConfirmationRequiredError {
	return &ConfirmationRequiredError{
		OperationID: operationID,
		RiskLevel:   risk,
	}
}

// Common errors for API operations.
// These predefined errors provide consistent error reporting for common failure scenarios
// related to handler registration in the Service Locator Pattern.
var (
	// ErrCatalogNotRegistered indicates the catalog handler is not registered
	ErrCatalogNotRegistered = errors.New("catalog handler not registered")

	// ErrResearchNotRegistered indicates the research handler is not registered
	ErrResearchNotRegistered = errors.New("research handler not registered")

	// ErrValidationNotRegistered indicates the validation handler is not registered
	ErrValidationNotRegistered = errors.New("validation handler not registered")

	// ErrExecutionNotRegistered indicates the execution handler is not registered
	ErrExecutionNotRegistered = errors.New("execution handler not registered")

	// ErrResultStoreNotRegistered indicates the result store handler is not registered
	ErrResultStoreNotRegistered = errors.New("result store handler not registered")

	// ErrDocsNotRegistered indicates the docs handler is not registered
	ErrDocsNotRegistered = errors.New("docs handler not registered")

	// ErrConfigNotRegistered indicates the config handler is not registered
	ErrConfigNotRegistered = errors.New("config handler not registered")
)

// HandleError creates an appropriate CallToolResult based on the error type.
// This function provides standardized error response formatting for tool surfaces.
//
// All errors (including NotFoundError) are treated as error conditions so
// tool callers observe a uniform failure shape.
//
// Example:
//
//	if err != nil {
//	    return api.HandleError(err)
//	}
func HandleError(err error) *CallToolResult {
	return &CallToolResult{
		Content: []interface{}{fmt.Sprintf("Failed to get resource: %v", err)},
		IsError: true,
	}
}

// HandleErrorWithPrefix creates an appropriate CallToolResult with a custom prefix.
// This function is similar to HandleError but allows customizing the error message prefix
// for more specific error context.
//
// Example:
//
//	if err != nil {
//	    return api.HandleErrorWithPrefix(err, "Failed to save note")
//	}
func HandleErrorWithPrefix(err error, prefix string) *CallToolResult {
	return &CallToolResult{
		Content: []interface{}{fmt.Sprintf("%s: %v", prefix, err)},
		IsError: true,
	}
}
