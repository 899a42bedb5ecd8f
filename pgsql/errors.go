package pgsql

import (
	"fmt"

	"github.com/pkg/errors"
)

/*
	error kinds returned by the manager.
	Everything is wrapped with github.com/pkg/errors, test with errors.Is.
	Errors coming from the driver are passed through untouched.
*/
var (
	// connecting (or reconnecting) failed, or the manager is closed
	ErrConnection = errors.New("connection error")

	// a referenced database, schema, table, column, role or extension is missing
	ErrNotFound = errors.New("not found")

	// bad input, rejected before anything was sent to the server
	ErrValidation = errors.New("validation error")

	ErrAlreadyExists = errors.New("already exists")

	// the statement must run outside a transaction but one is open
	ErrTxInProgress = errors.New("transaction in progress")
)

func notFound(kind, name string) error {
	return errors.Wrapf(ErrNotFound, "%s \"%s\" does not exist", kind, name)
}

func alreadyExists(kind, name string) error {
	return errors.Wrapf(ErrAlreadyExists, "%s \"%s\" already exists", kind, name)
}

func invalid(format string, args ...interface{}) error {
	return errors.Wrapf(ErrValidation, format, args...)
}

/*
	validation failure raised by another package, err stays reachable
*/
func invalidCause(err error) error {
	return errors.WithStack(fmt.Errorf("%w: %w", ErrValidation, err))
}

/*
	keeps the driver error reachable through errors.As / errors.Unwrap
	while still matching ErrConnection
*/
type connectionError struct {
	msg string
	err error
}

func (e *connectionError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *connectionError) Unwrap() error {
	return e.err
}

func (e *connectionError) Is(target error) bool {
	return target == ErrConnection
}

func connectionFailed(err error, format string, args ...interface{}) error {
	return errors.WithStack(&connectionError{msg: fmt.Sprintf(format, args...), err: err})
}
