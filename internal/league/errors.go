package league

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("requested resource not found")

	// Bad or missing fields, non-numeric or negative points, a team made of
	// the same player twice, a team playing itself.
	ErrInvalidInput = errors.New("invalid input")

	// Deleting a referenced player or team, duplicate player names, or a
	// second match while one is still in progress.
	ErrConflict = errors.New("conflict")

	ErrMatchAlreadyFinished = errors.New("match already finished")
)

// UserError carries a message that can be shown to whoever made the request.
// It unwraps to one of the sentinels above.
type UserError struct {
	Kind error
	Msg  string
}

func (e *UserError) Error() string {
	return e.Kind.Error() + ": " + e.Msg
}

func (e *UserError) Unwrap() error {
	return e.Kind
}

func Invalidf(format string, args ...any) error {
	return &UserError{Kind: ErrInvalidInput, Msg: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...any) error {
	return &UserError{Kind: ErrConflict, Msg: fmt.Sprintf(format, args...)}
}
