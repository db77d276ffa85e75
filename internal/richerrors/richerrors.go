// Package richerrors provides an error type that carries an HTTP status
// code and a message safe to show to the caller, while keeping the
// underlying cause for logging.
package richerrors

import "errors"

// Error wraps an internal error with an HTTP status code and an external
// message. The wrapped error is never rendered to the caller.
type Error struct {
	Code        int
	ExternalMsg string
	Err         error
}

func (e Error) Error() string {
	if e.Err != nil {
		return e.ExternalMsg + ": " + e.Err.Error()
	}
	return e.ExternalMsg
}

func (e Error) Unwrap() error {
	return e.Err
}

// AsRichError reports whether err or any error it wraps is an Error.
func AsRichError(err error) (Error, bool) {
	var richErr Error
	if errors.As(err, &richErr) {
		return richErr, true
	}
	return Error{}, false
}
