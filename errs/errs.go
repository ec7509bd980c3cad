package errs

import (
	"errors"
	"fmt"
)

// local precondition errors, returned before any request leaves the process
var (
	ErrNoCredential    = errors.New("no credential configured")
	ErrInvalidArgument = errors.New("invalid argument")
)

var (
	// ErrDecode matches every *DecodeError.
	ErrDecode = errors.New("decode response failed")

	// ErrHistoryReset is returned when the delta feed reports reset=false, the caller
	// must drop what it collected and start again without a cursor.
	ErrHistoryReset = errors.New("history feed reset by server")
)

// ValidationError rejects caller input before rendering a request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if len(e.Field) == 0 {
		return fmt.Sprintf("invalid argument: %s", e.Reason)
	}
	return fmt.Sprintf("invalid argument, field:%s, reason:%s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidArgument
}

func Invalid(field string, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func Missing(field string) error {
	return &ValidationError{Field: field, Reason: "missing " + field}
}

// FaultError is a non success response decoded from the server error body.
// Exception and Message are nil when the body did not carry them.
type FaultError struct {
	StatusCode int
	Exception  *string
	Message    *string
}

func (e *FaultError) Error() string {
	exception := "empty exception"
	if e.Exception != nil {
		exception = *e.Exception
	}
	message := "empty message"
	if e.Message != nil {
		message = *e.Message
	}
	return fmt.Sprintf("status code not ok, code:%d, exception:%s, message:%s", e.StatusCode, exception, message)
}

// IsFault reports whether err is a protocol fault, and with which status code.
func IsFault(err error) (*FaultError, bool) {
	var fe *FaultError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// DecodeError is a success response whose body could not be turned into a record.
type DecodeError struct {
	What string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("decode %s failed", e.What)
	}
	return fmt.Sprintf("decode %s failed, err:%v", e.What, e.Err)
}

func (e *DecodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDecode}
	}
	return []error{ErrDecode, e.Err}
}

func Decode(what string, err error) error {
	return &DecodeError{What: what, Err: err}
}

func DecodeMissing(what string, element string) error {
	return &DecodeError{What: what, Err: fmt.Errorf("element <%s> not found", element)}
}
