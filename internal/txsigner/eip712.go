package txsigner

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/etclabscore/jade-signer/internal/jadecrypto"
	"github.com/etclabscore/jade-signer/internal/jadeerr"
)

// TypedData re-exports go-ethereum's EIP-712 document shape so callers
// of this package need not import signer/core/apitypes directly.
type TypedData = apitypes.TypedData

// HashTypedData computes the final EIP-712 digest:
// keccak256(0x1901 ‖ domainSeparator ‖ hashStruct(primaryType, message)).
// typeHash/encodeData/hashStruct are delegated to go-ethereum's own
// apitypes implementation, which already follows spec.md §4.5's
// algorithm field for field.
func HashTypedData(td TypedData) ([]byte, error) {
	digest, _, err := apitypes.TypedDataAndHash(td)
	if err != nil {
		return nil, jadeerr.Wrap(jadeerr.KindInvalidParams, "hash typed data", err)
	}
	return digest, nil
}

// SignTypedData signs the EIP-712 digest of td, returning 65 bytes
// r ‖ s ‖ v with v = recovery_id + 27, matching the EIP-191 output shape
// (spec.md §4.5).
func SignTypedData(td TypedData, priv *ecdsa.PrivateKey) ([65]byte, error) {
	var sig [65]byte
	digest, err := HashTypedData(td)
	if err != nil {
		return sig, err
	}
	sig, err = jadecrypto.Sign(digest, priv)
	if err != nil {
		return sig, jadeerr.Wrap(jadeerr.KindSigningFailed, "sign typed data", err)
	}
	sig[64] += 27
	return sig, nil
}
