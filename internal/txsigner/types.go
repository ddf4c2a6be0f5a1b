// Package txsigner implements the transaction and message signing
// pipeline: EIP-155 transaction signing, EIP-191 personal-message
// signing, and EIP-712 typed-data signing (spec.md §4.5).
//
// Grounded on go-ethereum's own core/types and signer/core/apitypes
// packages — the teacher's own dependency (hdwallet.go builds
// *types.Transaction and calls types.SignTx) generalized from a single
// HD wallet's SignTx method into the spec's three independent entry
// points.
package txsigner

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Transaction is the signer's input shape for EIP-155 signing
// (spec.md §3's Transaction entity).
type Transaction struct {
	Nonce    uint64
	GasPrice *big.Int
	Gas      uint64
	To       *common.Address // nil for contract creation
	Value    *big.Int
	Data     []byte
	ChainID  *big.Int
}
