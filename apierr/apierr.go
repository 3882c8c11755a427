package apierr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CodeValidation   = "validation_error"
	CodeNotFound     = "not_found"
	CodeGeneration   = "generation_failed"
	CodeUnauthorized = "unauthorized"
	CodeTimeout      = "timeout"
)

// Error is an error that knows how it should be reported to an API caller.
type Error struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	return fmt.Sprintf("api error (%d)", e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code, message string, err error) *Error {
	return &Error{Status: status, Code: code, Message: message, Err: err}
}

func Validation(message string) *Error {
	return New(http.StatusBadRequest, CodeValidation, message, nil)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, CodeNotFound, message, nil)
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, CodeUnauthorized, message, nil)
}

// Generation collapses every failure of the content generation step into one kind.
func Generation(cause error) *Error {
	detail := "unknown error"
	if cause != nil {
		detail = cause.Error()
	}
	return New(http.StatusInternalServerError, CodeGeneration, "Failed to generate content: "+detail, cause)
}

func Timeout(message string, cause error) *Error {
	return New(http.StatusGatewayTimeout, CodeTimeout, message, cause)
}

// Is reports whether err carries an *Error with the given code.
func Is(err error, code string) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// Status maps err to an HTTP status, 500 for anything untyped.
func Status(err error) int {
	var e *Error
	if errors.As(err, &e) && e.Status != 0 {
		return e.Status
	}
	return http.StatusInternalServerError
}

// Respond writes {"detail": ...}. Untyped errors are hidden behind a generic message.
func Respond(c *gin.Context, err error) {
	var e *Error
	if errors.As(err, &e) {
		c.AbortWithStatusJSON(Status(e), gin.H{"detail": e.Error()})
		return
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Server Error"})
}
