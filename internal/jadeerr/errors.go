// Package jadeerr defines the error kinds shared across the keystore
// engine and its RPC adapter.
//
// Fallible operations in the keystore engine return an *Error carrying
// one of these kinds, built with New or Wrap (Wrap keeps the cause for
// errors.Unwrap). The RPC adapter reads the kind with KindOf to assign
// JSON-RPC error codes; no other package needs to know about wire codes.
package jadeerr

import "errors"

// Kind identifies the class of failure. It is distinct from the wrapped
// error chain so callers can switch on it without string matching.
type Kind int

const (
	// KindInternal covers failures that indicate a bug rather than a
	// user or environment fault.
	KindInternal Kind = iota
	KindInvalidParams
	KindInvalidPassphrase
	KindAccountNotFound
	KindDuplicateAccount
	KindKeyfileMalformed
	KindMnemonicInvalid
	KindDerivationFailed
	KindSigningFailed
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindInvalidParams:
		return "InvalidParams"
	case KindInvalidPassphrase:
		return "InvalidPassphrase"
	case KindAccountNotFound:
		return "AccountNotFound"
	case KindDuplicateAccount:
		return "DuplicateAccount"
	case KindKeyfileMalformed:
		return "KeyfileMalformed"
	case KindMnemonicInvalid:
		return "MnemonicInvalid"
	case KindDerivationFailed:
		return "DerivationFailed"
	case KindSigningFailed:
		return "SigningFailed"
	case KindIO:
		return "Io"
	default:
		return "Internal"
	}
}

// Error pairs a Kind with an underlying cause. Public identifiers (an
// address, a chain tag, a file path) may appear in Message; secret
// material never does.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds an *Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an *Error of the given kind around cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// KindOf extracts the Kind of err if it (or something it wraps) is an
// *Error; otherwise it returns KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether KindOf(err) is kind, i.e. whether the first *Error
// in err's chain has that Kind; kinds of *Errors wrapped deeper inside it
// are not consulted.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
