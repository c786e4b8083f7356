// Package errdefs defines the error taxonomy shared by the registry bridge.
//
// Every failure carries a Kind, which tells a caller how to react, and a Code,
// which names the concrete failure. Sentinels are matched with errors.Is by
// code, so a wrapped error with a cause still matches its sentinel:
//
//	if errors.Is(err, errdefs.ErrInvalidAge) { ... }
package errdefs

import (
	"errors"
	"fmt"
)

// Kind groups failures by how the caller recovers from them.
type Kind uint8

const (
	KindUnknown Kind = iota
	// KindValidation is bad user input, rejected before any collaborator is contacted.
	KindValidation
	// KindSession is a missing, denied or incomplete wallet session.
	KindSession
	// KindSubmission is a call the wallet rejected or failed to send.
	KindSubmission
	// KindConfirmation is a submitted transaction the chain reported as failed.
	KindConfirmation
	// KindQuery is a read-path transport or decoding failure.
	KindQuery
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindSession:
		return "session"
	case KindSubmission:
		return "submission"
	case KindConfirmation:
		return "confirmation"
	case KindQuery:
		return "query"
	default:
		return "unknown"
	}
}

// Code names a concrete failure.
type Code string

const (
	CodeInvalidName          Code = "invalid_name"
	CodeInvalidAge           Code = "invalid_age"
	CodeNoWalletSelected     Code = "no_wallet_selected"
	CodeCapabilityDenied     Code = "capability_denied"
	CodeNoAccountAvailable   Code = "no_account_available"
	CodeNoActiveSession      Code = "no_active_session"
	CodeSubmissionInProgress Code = "submission_in_progress"
	CodeSubmissionRejected   Code = "submission_rejected"
	CodeConfirmationFailed   Code = "confirmation_failed"
	CodeConfirmationTimeout  Code = "confirmation_timeout"
	CodeQueryFailed          Code = "query_failed"
)

// Error is a typed failure scoped to a single user action.
type Error struct {
	Kind    Kind
	Code    Code
	Message string
	Cause   error
}

// Sentinels, one per code.
var (
	ErrInvalidName          = &Error{Kind: KindValidation, Code: CodeInvalidName, Message: "name is required"}
	ErrInvalidAge           = &Error{Kind: KindValidation, Code: CodeInvalidAge, Message: "age must be between 1 and 120"}
	ErrNoWalletSelected     = &Error{Kind: KindSession, Code: CodeNoWalletSelected, Message: "no wallet selected"}
	ErrCapabilityDenied     = &Error{Kind: KindSession, Code: CodeCapabilityDenied, Message: "wallet connection failed"}
	ErrNoAccountAvailable   = &Error{Kind: KindSession, Code: CodeNoAccountAvailable, Message: "no account found in wallet"}
	ErrNoActiveSession      = &Error{Kind: KindSession, Code: CodeNoActiveSession, Message: "wallet not connected"}
	ErrSubmissionInProgress = &Error{Kind: KindSubmission, Code: CodeSubmissionInProgress, Message: "a submission is already in progress"}
	ErrSubmissionRejected   = &Error{Kind: KindSubmission, Code: CodeSubmissionRejected, Message: "transaction rejected"}
	ErrConfirmationFailed   = &Error{Kind: KindConfirmation, Code: CodeConfirmationFailed, Message: "transaction failed"}
	ErrConfirmationTimeout  = &Error{Kind: KindConfirmation, Code: CodeConfirmationTimeout, Message: "timed out waiting for confirmation"}
	ErrQueryFailed          = &Error{Kind: KindQuery, Code: CodeQueryFailed, Message: "query failed"}
)

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Wrap returns a copy of sentinel carrying cause.
func Wrap(sentinel *Error, cause error) *Error {
	out := *sentinel
	out.Cause = cause
	return &out
}

// Wrapf returns a copy of sentinel whose cause is built from format.
func Wrapf(sentinel *Error, format string, args ...any) *Error {
	return Wrap(sentinel, fmt.Errorf(format, args...))
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
