package client

import (
	"errors"
	"fmt"
)

// OpKind identifies which remote operation failed.
type OpKind string

const (
	FetchFailed  OpKind = "fetch"
	CreateFailed OpKind = "create"
	UpdateFailed OpKind = "update"
	DeleteFailed OpKind = "delete"
)

// Scopes for the auth endpoints. Data operations use the catalog entity
// kind as their scope.
const (
	ScopeLogin        = "login"
	ScopeRegistration = "registration"
	ScopeProfile      = "profile"
)

// OpError reports the failure of one remote operation, scoped to the entity
// type (or auth endpoint) it was issued for. Operations are never retried;
// the error is inspected once at the call site.
type OpError struct {
	Kind  OpKind
	Scope string
	Err   error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Scope, e.Kind, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// APIError represents an error response from the catalog API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// FormatConnectionError returns a user-friendly message for connection
// failures.
func FormatConnectionError(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == 0 {
		return fmt.Sprintf(`Error: %s

Suggestions:
  • Check that the catalog backend is running
  • Verify the API URL with: garagectl context show`, apiErr.Message)
	}
	return err.Error()
}
