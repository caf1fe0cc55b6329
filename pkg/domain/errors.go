package domain

import (
	"errors"
	"fmt"
)

// Kind classifies failures for mapping to response statuses
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindValidation
	KindDataAccess
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindDataAccess:
		return "data_access"
	default:
		return "unknown"
	}
}

// Error carries a Kind alongside the operation that failed
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound reports that no row matched
func NotFound(op string) error {
	return &Error{Kind: KindNotFound, Op: op}
}

// Validation wraps a request that could not be turned into bind values
func Validation(op string, err error) error {
	return &Error{Kind: KindValidation, Op: op, Err: err}
}

// DataAccess wraps a driver, connection or SQL failure
func DataAccess(op string, err error) error {
	return &Error{Kind: KindDataAccess, Op: op, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether err is a not-found error
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
