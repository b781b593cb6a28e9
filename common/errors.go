package common

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

type ErrorCode int

const (
	// DuplicateObjectError indicates an attempt to create a table or index
	// that already exists in the catalog.
	DuplicateObjectError ErrorCode = iota
	// NoSuchObjectError indicates a request for a table, index or column that
	// does not exist in the catalog.
	NoSuchObjectError
	// UnrecognizedPlanNodeKind indicates a plan node whose kind the signature
	// builder does not understand. The computation that hit it is aborted.
	UnrecognizedPlanNodeKind
	// UnrecognizedScalarKind indicates a scalar expression in a plan parameter
	// position that is not an integer literal.
	UnrecognizedScalarKind
	// InvalidSettingError indicates an unknown tunable name or a value that does
	// not parse or falls outside the tunable's range.
	InvalidSettingError
	// MalformedPlanError indicates a plan document that could not be decoded.
	MalformedPlanError
)

func (ec ErrorCode) String() string {
	switch ec {
	case DuplicateObjectError:
		return "DuplicateObjectError"
	case NoSuchObjectError:
		return "NoSuchObjectError"
	case UnrecognizedPlanNodeKind:
		return "UnrecognizedPlanNodeKind"
	case UnrecognizedScalarKind:
		return "UnrecognizedScalarKind"
	case InvalidSettingError:
		return "InvalidSettingError"
	case MalformedPlanError:
		return "MalformedPlanError"
	}
	return "unknown"
}

// Error is the custom error type of the module.
// It wraps a specific ErrorCode with a detailed message.
//
// Errors are usually returned wrapped (with a stack, or with extra context
// from errors.Wrapf), so callers should inspect them with IsCode rather than
// with a type assertion.
type Error struct {
	Code      ErrorCode
	ErrString string
}

func (e Error) Error() string {
	return fmt.Sprintf("err: %s; msg: %s", e.Code.String(), e.ErrString)
}

// NewError returns an Error with the given code carrying a stack trace.
func NewError(code ErrorCode, format string, args ...any) error {
	return errors.WithStack(Error{Code: code, ErrString: fmt.Sprintf(format, args...)})
}

// IsCode reports whether any error in err's chain is an Error with the given code.
func IsCode(err error, code ErrorCode) bool {
	var e Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
