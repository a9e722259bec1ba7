package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeBadRequest indicates a semantically invalid request.
	ErrCodeBadRequest ErrorCode = "bad_request"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeUserAlreadyExists indicates a signup with an email that is already registered.
	ErrCodeUserAlreadyExists ErrorCode = "user_already_exists"
	// ErrCodeConflict indicates a conflict with existing data (e.g., unique constraint violation).
	ErrCodeConflict ErrorCode = "conflict"
	// ErrCodeForeignKey indicates a foreign key constraint violation.
	ErrCodeForeignKey ErrorCode = "foreign_key"

	// ErrCodeUnauthorized is the generic authentication failure.
	ErrCodeUnauthorized ErrorCode = "unauthorized"
	// ErrCodeInvalidCredentials indicates a wrong email or password on signin.
	ErrCodeInvalidCredentials ErrorCode = "invalid_credentials"
	// ErrCodeNotAuthenticated indicates no credential was presented.
	ErrCodeNotAuthenticated ErrorCode = "not_authenticated"
	// ErrCodeInvalidToken indicates a credential that failed verification.
	ErrCodeInvalidToken ErrorCode = "invalid_token"
	// ErrCodeTokenExpired indicates a well-formed credential past its expiry.
	ErrCodeTokenExpired ErrorCode = "token_expired"
	// ErrCodeUserNotFound indicates the token subject no longer resolves to a user.
	ErrCodeUserNotFound ErrorCode = "user_not_found"

	// ErrCodeForbidden indicates the caller lacks permission.
	ErrCodeForbidden ErrorCode = "forbidden"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"

	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "internal"
	// ErrCodeTimeout indicates a timeout occurred.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeCanceled indicates the operation was canceled.
	ErrCodeCanceled ErrorCode = "canceled"
)

// kindInfo is the boundary representation of an ErrorCode.
type kindInfo struct {
	status       int
	internalCode int
	detail       string
}

// Internal codes are namespaced by HTTP status range (401xx for authentication failures).
var kinds = map[ErrorCode]kindInfo{
	ErrCodeBadRequest:         {http.StatusBadRequest, 40000, "Bad request"},
	ErrCodeValidation:         {http.StatusBadRequest, 40000, "Bad request"},
	ErrCodeConflict:           {http.StatusBadRequest, 40000, "Bad request"},
	ErrCodeForeignKey:         {http.StatusBadRequest, 40000, "Bad request"},
	ErrCodeUserAlreadyExists:  {http.StatusBadRequest, 40001, "User with this email already exists"},
	ErrCodeUnauthorized:       {http.StatusUnauthorized, 40100, "Unauthorized"},
	ErrCodeInvalidCredentials: {http.StatusUnauthorized, 40101, "Invalid email or password"},
	ErrCodeNotAuthenticated:   {http.StatusUnauthorized, 40102, "Not authenticated"},
	ErrCodeInvalidToken:       {http.StatusUnauthorized, 40103, "Invalid token"},
	ErrCodeTokenExpired:       {http.StatusUnauthorized, 40104, "Token has expired"},
	ErrCodeUserNotFound:       {http.StatusUnauthorized, 40105, "User not found"},
	ErrCodeForbidden:          {http.StatusForbidden, 40200, "Forbidden"},
	ErrCodeNotFound:           {http.StatusNotFound, 40400, "Not found"},
	ErrCodeInternal:           {http.StatusInternalServerError, 50000, "Internal server error"},
	ErrCodeTimeout:            {http.StatusInternalServerError, 50000, "Internal server error"},
	ErrCodeCanceled:           {http.StatusInternalServerError, 50000, "Internal server error"},
}

// AppError represents a structured application error with a code, message, and optional cause.
// It supports error wrapping and unwrapping for use with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Field is the specific field that caused the error (optional, for validation errors)
	Field string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another *AppError by code so callers can compare against the
// package-level constructors, e.g. errors.Is(err, apperrors.InvalidToken()).
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

func newKind(code ErrorCode) *AppError {
	return &AppError{Code: code, Message: kinds[code].detail}
}

// BadRequest creates a new BadRequest error.
func BadRequest(message string) *AppError {
	return &AppError{Code: ErrCodeBadRequest, Message: message}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message}
}

// ValidationField creates a new Validation error for a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Field: field}
}

// Conflict creates a new Conflict error.
func Conflict(message string) *AppError {
	return &AppError{Code: ErrCodeConflict, Message: message}
}

// UserAlreadyExists is returned by signup when the email is taken.
func UserAlreadyExists() *AppError { return newKind(ErrCodeUserAlreadyExists) }

// InvalidCredentials is returned by signin for an unknown email and for a wrong password alike.
func InvalidCredentials() *AppError { return newKind(ErrCodeInvalidCredentials) }

// NotAuthenticated is returned when a request carries no session credential.
func NotAuthenticated() *AppError { return newKind(ErrCodeNotAuthenticated) }

// InvalidToken is returned when a session credential fails verification.
func InvalidToken() *AppError { return newKind(ErrCodeInvalidToken) }

// TokenExpired is returned when a session credential is past its expiry.
func TokenExpired() *AppError { return newKind(ErrCodeTokenExpired) }

// UserNotFound is returned when the token subject has no persisted user.
func UserNotFound() *AppError { return newKind(ErrCodeUserNotFound) }

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message}
}

// NotFoundf creates a new NotFound error with formatted message.
func NotFoundf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Internal creates a new Internal error.
func Internal(message string) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool {
	return isCode(err, ErrCodeNotFound)
}

// IsConflict checks if an error is a Conflict error.
func IsConflict(err error) bool {
	return isCode(err, ErrCodeConflict)
}

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool {
	return isCode(err, ErrCodeValidation)
}

// IsInternal checks if an error is an Internal error.
func IsInternal(err error) bool {
	return isCode(err, ErrCodeInternal)
}

// IsTimeout checks if an error is a Timeout error.
func IsTimeout(err error) bool {
	return isCode(err, ErrCodeTimeout)
}

// IsCanceled checks if an error is a Canceled error.
func IsCanceled(err error) bool {
	return isCode(err, ErrCodeCanceled)
}

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetField returns the Field from an error, or empty string if not an AppError or no field set.
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}

// HTTPStatus returns the response status for err. Anything that is not a known
// AppError is a server error.
func HTTPStatus(err error) int {
	return lookup(err).status
}

// InternalCode returns the stable machine-readable code for err.
func InternalCode(err error) int {
	return lookup(err).internalCode
}

// Detail returns the client-safe message for err. Server-side failures never
// expose their message or cause.
func Detail(err error) string {
	info := lookup(err)
	if info.status >= http.StatusInternalServerError {
		return info.detail
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return info.detail
}

// IsClientError reports whether err maps to a 4xx response.
func IsClientError(err error) bool {
	s := HTTPStatus(err)
	return s >= 400 && s < 500
}

func lookup(err error) kindInfo {
	if info, ok := kinds[GetCode(err)]; ok {
		return info
	}
	return kinds[ErrCodeInternal]
}
