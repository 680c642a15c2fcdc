package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every *Error wraps exactly one of them, so callers can branch
// with errors.Is(err, ErrCapacity) and friends.
var (
	ErrValidation = errors.New("validation error")
	ErrState      = errors.New("state error")
	ErrCapacity   = errors.New("capacity error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrInternal   = errors.New("internal error")
)

type Code string

const (
	CodeInvalidBoard           Code = "INVALID_BOARD"
	CodeInvalidGame            Code = "INVALID_GAME"
	CodeInvalidOwner           Code = "INVALID_OWNER"
	CodeInvalidSquareCount     Code = "INVALID_SQUARE_COUNT"
	CodeInvalidScore           Code = "INVALID_SCORE"
	CodeIncompleteBoard        Code = "INCOMPLETE_BOARD"
	CodeBoardNotOpen           Code = "BOARD_NOT_OPEN"
	CodeBoardNotFilled         Code = "BOARD_NOT_FILLED"
	CodeBoardNotAssigned       Code = "BOARD_NOT_ASSIGNED"
	CodeBoardCompleted         Code = "BOARD_COMPLETED"
	CodeAlreadyAssigned        Code = "ALREADY_ASSIGNED"
	CodeSquareAlreadyPaid      Code = "SQUARE_ALREADY_PAID"
	CodeInvalidTransition      Code = "INVALID_STATUS_TRANSITION"
	CodeGameAlreadyCompleted   Code = "GAME_ALREADY_COMPLETED"
	CodeGameNumberTaken        Code = "GAME_NUMBER_TAKEN"
	CodeSquareLimitExceeded    Code = "SQUARE_LIMIT_EXCEEDED"
	CodeBoardFull              Code = "BOARD_FULL"
	CodeBoardNotFound          Code = "BOARD_NOT_FOUND"
	CodeSquareNotFound         Code = "SQUARE_NOT_FOUND"
	CodeGameNotFound           Code = "GAME_NOT_FOUND"
	CodeTransactionConflict    Code = "TRANSACTION_CONFLICT"
	CodeInternal               Code = "INTERNAL"
	CodeAssignmentWriteFailure Code = "ASSIGNMENT_WRITE_FAILED"
)

// Error is the typed failure returned by every pool operation.
type Error struct {
	Kind    error
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%v: %s", e.Kind, e.Code)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += " -> " + e.Cause.Error()
	}

	return msg
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Cause}
}

// Is matches another *Error carrying the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Code == e.Code
}

func newError(kind error, code Code, format string, args ...any) *Error {
	return &Error{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...)}
}

func Validationf(code Code, format string, args ...any) *Error {
	return newError(ErrValidation, code, format, args...)
}

func Statef(code Code, format string, args ...any) *Error {
	return newError(ErrState, code, format, args...)
}

func Capacityf(code Code, format string, args ...any) *Error {
	return newError(ErrCapacity, code, format, args...)
}

func NotFoundf(code Code, format string, args ...any) *Error {
	return newError(ErrNotFound, code, format, args...)
}

// Conflict reports a transaction that lost a serialization race. Callers may
// retry the whole operation.
func Conflict(cause error) *Error {
	return &Error{Kind: ErrConflict, Code: CodeTransactionConflict, Message: "concurrent update, retry", Cause: cause}
}

func Conflictf(code Code, format string, args ...any) *Error {
	return newError(ErrConflict, code, format, args...)
}

func Internal(code Code, cause error) *Error {
	return &Error{Kind: ErrInternal, Code: code, Cause: cause}
}

// CodeOf returns the code of the first *Error in err's chain.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ""
}

// IsRetryable reports whether err is a lost serialization race that can be
// retried from the top.
func IsRetryable(err error) bool {
	return CodeOf(err) == CodeTransactionConflict
}
