package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the structured failure a service hands back to its controller.
// Every operation-boundary failure is translated into one of four kinds:
// not_found, precondition_failed, validation_error, internal_server_error.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Details    any
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NotFoundError covers both "does not exist" and "exists for another owner";
// the message never distinguishes the two.
func NotFoundError(message string) *AppError {
	return &AppError{
		StatusCode: http.StatusNotFound,
		Code:       ErrCodeNotFound,
		Message:    message,
	}
}

// PreconditionError reports a business-rule violation (missing move-in date,
// unpaid balance blocking a delete).
func PreconditionError(message string) *AppError {
	return &AppError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrCodePreconditionFailed,
		Message:    message,
	}
}

// PreconditionErrorWithDetails attaches a machine-readable payload to the
// error body (e.g. the unpaid count/total for a blocked tenant delete).
func PreconditionErrorWithDetails(message string, details any) *AppError {
	e := PreconditionError(message)
	e.Details = details
	return e
}

func ValidationError(message string) *AppError {
	return &AppError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrCodeValidation,
		Message:    message,
	}
}

func ConflictError(message string) *AppError {
	return &AppError{
		StatusCode: http.StatusConflict,
		Code:       ErrCodeConflict,
		Message:    message,
	}
}

func InternalError(message string, err error) *AppError {
	return &AppError{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrCodeInternal,
		Message:    message,
		Err:        err,
	}
}

func Internalf(err error, format string, args ...any) *AppError {
	return InternalError(fmt.Sprintf(format, args...), err)
}

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, appErr.Details, appErr.Err)
	} else {
		// Fallback for unexpected error types
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
