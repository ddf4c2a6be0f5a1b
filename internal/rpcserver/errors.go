package rpcserver

import "github.com/etclabscore/jade-signer/internal/jadeerr"

// rpcError adapts a jadeerr.Kind to go-ethereum rpc.Server's error
// contract: any error implementing `ErrorCode() int` has that code
// surfaced in the JSON-RPC response instead of the generic -32603.
type rpcError struct {
	code int
	err  error
}

func (e *rpcError) Error() string  { return e.err.Error() }
func (e *rpcError) ErrorCode() int { return e.code }
func (e *rpcError) Unwrap() error  { return e.err }

// Error codes for each of spec.md §7's kinds. -32602/-32603 are the
// standard JSON-RPC 2.0 "Invalid params"/"Internal error" codes; the
// rest occupy the implementation-defined server-error range.
const (
	codeInvalidParams     = -32602
	codeInternal          = -32603
	codeInvalidPassphrase = -32000
	codeAccountNotFound   = -32001
	codeDuplicateAccount  = -32002
	codeKeyfileMalformed  = -32003
	codeMnemonicInvalid   = -32004
	codeDerivationFailed  = -32005
	codeSigningFailed     = -32006
	codeIO                = -32007
)

// asRPCError maps err's jadeerr.Kind to its JSON-RPC error code. Errors
// that aren't a *jadeerr.Error (a bug, not a user fault) fall back to
// KindInternal's code.
func asRPCError(err error) error {
	if err == nil {
		return nil
	}
	code := codeInternal
	switch jadeerr.KindOf(err) {
	case jadeerr.KindInvalidParams:
		code = codeInvalidParams
	case jadeerr.KindInvalidPassphrase:
		code = codeInvalidPassphrase
	case jadeerr.KindAccountNotFound:
		code = codeAccountNotFound
	case jadeerr.KindDuplicateAccount:
		code = codeDuplicateAccount
	case jadeerr.KindKeyfileMalformed:
		code = codeKeyfileMalformed
	case jadeerr.KindMnemonicInvalid:
		code = codeMnemonicInvalid
	case jadeerr.KindDerivationFailed:
		code = codeDerivationFailed
	case jadeerr.KindSigningFailed:
		code = codeSigningFailed
	case jadeerr.KindIO:
		code = codeIO
	}
	return &rpcError{code: code, err: err}
}
