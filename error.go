package ao3doc

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL  = "internal"
	EINVALID   = "invalid"
	ENOTFOUND  = "not_found"
	EFORMAT    = "invalid_format"
	ENOITEMS   = "no_items"
	EINVALIDID = "invalid_work_id"
	ENETWORK   = "network"
)

// ErrNoMatch is the cause attached to field errors raised because a query
// matched no nodes at all. It lets callers tell an absent region apart from
// a malformed one when both share an error code.
var ErrNoMatch = errors.New("no matching element")

// Error represents an application-specific error. Field names the scraped
// field the error originated from and is empty for errors that are not
// tied to a field.
type Error struct {
	Code    string
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("ao3doc error: code=%s field=%s message=%s", e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("ao3doc error: code=%s message=%s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ElementNotFound reports that a mandatory single-valued field matched no nodes.
func ElementNotFound(field string) *Error {
	return &Error{Code: ENOTFOUND, Field: field, Message: "element not found: " + field, Err: ErrNoMatch}
}

// InvalidFormat reports that a field's text could not be converted to its
// target type. cause is the parse error, or ErrNoMatch when nothing matched.
func InvalidFormat(field string, cause error) *Error {
	return &Error{Code: EFORMAT, Field: field, Message: "invalid format: " + field, Err: cause}
}

// NoItemsFound reports that a list field requiring at least one item yielded none.
func NoItemsFound(field string) *Error {
	return &Error{Code: ENOITEMS, Field: field, Message: "no items found: " + field}
}

// InvalidWorkID reports that a fetched page is the archive's not-found page.
func InvalidWorkID(id string) *Error {
	return &Error{Code: EINVALIDID, Message: fmt.Sprintf("invalid work ID or inaccessible work: %q", id)}
}

// Network wraps a transport failure. The original error is kept as the cause.
func Network(err error) *Error {
	return &Error{Code: ENETWORK, Message: "network error: " + err.Error(), Err: err}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// ErrorField unwraps an application error and returns the field it refers to.
func ErrorField(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Field
	}
	return ""
}
