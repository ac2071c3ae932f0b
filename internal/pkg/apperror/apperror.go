package apperror

import "net/http"

// AppError pairs an HTTP status code with a user-facing message.
type AppError struct {
	Code    int    // HTTP Status Code (e.g., 400, 404)
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NotFound wraps err as a 404.
func NotFound(err error, message string) *AppError {
	return Wrap(err, http.StatusNotFound, message)
}

// Conflict wraps err as a 409.
func Conflict(err error, message string) *AppError {
	return Wrap(err, http.StatusConflict, message)
}

// BadGateway wraps err as a 502, used when an upstream dependency fails.
func BadGateway(err error, message string) *AppError {
	return Wrap(err, http.StatusBadGateway, message)
}
