package apperr

import (
	"fmt"
	"net/http"
)

// Error codes carried in the {errorCode, error} response body.
const (
	CodeUserInvalid   = 101
	CodeMissingValue  = 102
	CodeInvalidResult = 201
	CodeDuplicateData = 202
	CodeNotMatched    = 203
	CodeDBInvalid     = 301
	CodeBadRequest    = 302
	CodeAPIKeyInvalid = 303
)

// Error is the single error shape returned by services. Handlers map it
// to an HTTP status and the {errorCode, error} JSON body; nothing below
// the handler layer writes to the response.
type Error struct {
	Code    int
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New returns a client-caused error (HTTP 400).
func New(code int, message string) *Error {
	return &Error{Code: code, Status: http.StatusBadRequest, Message: message}
}

// Internal returns a server-side error (HTTP 500).
func Internal(code int, message string) *Error {
	return &Error{Code: code, Status: http.StatusInternalServerError, Message: message}
}

// Wrap attaches a cause to a server-side error.
func Wrap(code int, message string, err error) *Error {
	return &Error{Code: code, Status: http.StatusInternalServerError, Message: message, Err: err}
}
