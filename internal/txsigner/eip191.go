package txsigner

import (
	"crypto/ecdsa"
	"strconv"

	"github.com/etclabscore/jade-signer/internal/jadecrypto"
	"github.com/etclabscore/jade-signer/internal/jadeerr"
)

const personalPrefix = "\x19Ethereum Signed Message:\n"

// HashPersonalMessage computes the EIP-191 digest of an arbitrary
// message: keccak256("\x19Ethereum Signed Message:\n" ‖ decimalLen(msg) ‖ msg).
func HashPersonalMessage(message []byte) []byte {
	return jadecrypto.Keccak256([]byte(personalPrefix+strconv.Itoa(len(message))), message)
}

// SignPersonal signs message per EIP-191, returning 65 bytes
// r ‖ s ‖ v with v = recovery_id + 27 (spec.md §4.5).
func SignPersonal(message []byte, priv *ecdsa.PrivateKey) ([65]byte, error) {
	sig, err := jadecrypto.Sign(HashPersonalMessage(message), priv)
	if err != nil {
		return sig, jadeerr.Wrap(jadeerr.KindSigningFailed, "sign personal message", err)
	}
	sig[64] += 27
	return sig, nil
}
