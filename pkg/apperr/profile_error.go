package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes. Message strings double as the wire-level "message" field, so
// they must stay byte-identical to what clients match on.
const (
	// Auth errors
	CodeUnauthorized = "UNAUTHORIZED"
	CodeTokenExpired = "JWT_EXPIRED"

	// Validation errors
	CodeKeyError        = "KEY_ERROR"
	CodeNicknameTooLong = "NICKNAME_LENGTH_EXCEEDS_8"
	CodeBadRequest      = "INVALID_REQUEST_BODY"

	// Resource errors
	CodeGenderNotFound    = "GENDER_NOT_FOUND"
	CodeDuplicateNickname = "DUPLICATED_NICKNAME"

	// Internal errors
	CodeDatabaseError = "DATABASE_ERROR"
	CodeInternalError = "INTERNAL_SERVER_ERROR"
)

// AppError represents a structured application error
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status code
func (e *AppError) HTTPStatus() int {
	return e.Status
}

// Constructor functions
func New(code, message string, status int) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
	}
}

// Auth errors
func Unauthorized() *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: CodeUnauthorized,
		Status:  http.StatusUnauthorized,
	}
}

func TokenExpired() *AppError {
	return &AppError{
		Code:    CodeTokenExpired,
		Message: CodeTokenExpired,
		Status:  http.StatusUnauthorized,
	}
}

// Validation errors
func KeyError(field string) *AppError {
	return &AppError{
		Code:    CodeKeyError,
		Message: fmt.Sprintf("%s: %s", CodeKeyError, field),
		Status:  http.StatusBadRequest,
	}
}

func NicknameTooLong() *AppError {
	return &AppError{
		Code:    CodeNicknameTooLong,
		Message: CodeNicknameTooLong,
		Status:  http.StatusBadRequest,
	}
}

func BadRequest() *AppError {
	return &AppError{
		Code:    CodeBadRequest,
		Message: CodeBadRequest,
		Status:  http.StatusBadRequest,
	}
}

// Resource errors
func GenderNotFound() *AppError {
	return &AppError{
		Code:    CodeGenderNotFound,
		Message: CodeGenderNotFound,
		Status:  http.StatusNotFound,
	}
}

func DuplicateNickname() *AppError {
	return &AppError{
		Code:    CodeDuplicateNickname,
		Message: CodeDuplicateNickname,
		Status:  http.StatusConflict,
	}
}

// Internal errors
func DatabaseError(operation string, err error) *AppError {
	return &AppError{
		Code:    CodeDatabaseError,
		Message: CodeInternalError,
		Status:  http.StatusInternalServerError,
		Err:     fmt.Errorf("%s: %w", operation, err),
	}
}

func Internal() *AppError {
	return &AppError{
		Code:    CodeInternalError,
		Message: CodeInternalError,
		Status:  http.StatusInternalServerError,
	}
}

// Helper functions
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: CodeInternalError,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

func GetHTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}
