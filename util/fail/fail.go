// Package fail carries the error taxonomy shared by the services.
// Controllers translate codes into HTTP statuses.
package fail

import "errors"

type Code string

const (
	NotFound           Code = "NOT_FOUND"
	Forbidden          Code = "FORBIDDEN"
	OutOfInventory     Code = "OUT_OF_INVENTORY"
	Conflict           Code = "CONFLICT"
	InvalidArgument    Code = "INVALID_ARGUMENT"
	InvariantViolation Code = "INVARIANT_VIOLATION"
)

type codedError struct {
	code Code
	msg  string
}

func (e codedError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	return string(e.code)
}

func (e codedError) Code() Code { return e.code }

func New(c Code, msg string) error { return codedError{code: c, msg: msg} }

// CodeOf extracts the code; "" for uncoded errors.
func CodeOf(err error) Code {
	var ce interface{ Code() Code }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}
