package errors

import "fmt"

// ErrorCode represents a Lineup error code.
type ErrorCode string

const (
	ErrInvalidGroup       ErrorCode = "INVALID_GROUP"       // 404
	ErrInvalidRequest     ErrorCode = "INVALID_REQUEST"     // 400
	ErrNotFound           ErrorCode = "NOT_FOUND"           // 404
	ErrStoreUnavailable   ErrorCode = "STORE_UNAVAILABLE"   // 503
	ErrGatewayUnavailable ErrorCode = "GATEWAY_UNAVAILABLE" // 502
	ErrInternal           ErrorCode = "INTERNAL"            // 500
)

// LineupError represents a structured error with code, status, and details.
type LineupError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *LineupError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidGroup creates a 404 error for a token that resolves to no live group.
// This is the only synchronous per-call failure during capture/rollback; it
// refuses the whole call before any partial work happens.
func NewInvalidGroup(token string) *LineupError {
	return &LineupError{
		Code:    ErrInvalidGroup,
		Status:  404,
		Message: fmt.Sprintf("no group matches %q", token),
		Details: map[string]any{"token": token},
	}
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *LineupError {
	return &LineupError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a group with no stored snapshot.
func NewNotFound(group string) *LineupError {
	return &LineupError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("no snapshot stored for group %q", group),
		Details: map[string]any{"group": group},
	}
}

// NewStoreUnavailable creates a 503 error for a failed persistence call.
// Store failures are fatal to the current operation, never absorbed.
func NewStoreUnavailable(err error) *LineupError {
	msg := "snapshot store unavailable"
	if err != nil {
		msg = err.Error()
	}
	return &LineupError{
		Code:    ErrStoreUnavailable,
		Status:  503,
		Message: msg,
	}
}

// NewGatewayUnavailable creates a 502 error for a failed gateway call.
func NewGatewayUnavailable(err error) *LineupError {
	msg := "gateway unavailable"
	if err != nil {
		msg = err.Error()
	}
	return &LineupError{
		Code:    ErrGatewayUnavailable,
		Status:  502,
		Message: msg,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *LineupError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &LineupError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a LineupError with the given code.
func Is(err error, code ErrorCode) bool {
	if lErr, ok := err.(*LineupError); ok {
		return lErr.Code == code
	}
	return false
}
