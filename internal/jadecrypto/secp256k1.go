// Package jadecrypto holds the deterministic, stateless cryptographic
// primitives the rest of the keystore engine builds on: secp256k1
// sign/recover, Keccak-256, AES-128-CTR, scrypt/PBKDF2 key derivation,
// and constant-time comparison. Nothing in this package touches disk or
// holds state across calls.
package jadecrypto

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/crypto"
)

// ErrInvalidPrivateKey reports a scalar outside [1, n).
var ErrInvalidPrivateKey = errors.New("private key scalar out of range")

// secp256k1N is the order of the secp256k1 base point.
var secp256k1N = crypto.S256().Params().N

// secp256k1HalfN is n/2, the low-s threshold (spec.md §4.1 / §8 property 5).
var secp256k1HalfN = new(big.Int).Rsh(secp256k1N, 1)

// GenerateKey draws a new secp256k1 private key from a CSPRNG.
func GenerateKey() (*ecdsa.PrivateKey, error) {
	return crypto.GenerateKey()
}

// ToECDSA reconstructs a private key from its 32-byte scalar, validating
// 1 <= k < n per spec.md's PrivateKey invariant.
func ToECDSA(d []byte) (*ecdsa.PrivateKey, error) {
	k := new(big.Int).SetBytes(d)
	if k.Sign() <= 0 || k.Cmp(secp256k1N) >= 0 {
		return nil, ErrInvalidPrivateKey
	}
	return crypto.ToECDSA(d)
}

// FromECDSA exports the raw 32-byte big-endian scalar of a private key.
func FromECDSA(priv *ecdsa.PrivateKey) []byte {
	return crypto.FromECDSA(priv)
}

// PublicKeyBytes returns the 64-byte uncompressed public key (no 0x04
// prefix), the form spec.md §3/§4.1 hashes to derive an address.
func PublicKeyBytes(pub *ecdsa.PublicKey) []byte {
	full := elliptic.Marshal(pub.Curve, pub.X, pub.Y)
	return full[1:]
}

// PubkeyToAddress derives the 20-byte Ethereum-style address from a
// public key: keccak256(uncompressedPub)[12:].
func PubkeyToAddress(pub *ecdsa.PublicKey) [20]byte {
	return crypto.PubkeyToAddress(*pub)
}

// Sign produces an RFC 6979 deterministic, low-s-normalized recoverable
// signature over a 32-byte hash: 65 bytes of r(32) || s(32) || recoveryID(1)
// with recoveryID in {0,1}. go-ethereum's crypto.Sign already normalizes
// to low-s and returns the recovery id in the last byte.
func Sign(hash []byte, priv *ecdsa.PrivateKey) (sig [65]byte, err error) {
	raw, err := crypto.Sign(hash, priv)
	if err != nil {
		return sig, err
	}
	copy(sig[:], raw)
	return sig, nil
}

// RecoverPublicKey recovers the public key that produced sig over hash.
func RecoverPublicKey(hash []byte, sig []byte) (*ecdsa.PublicKey, error) {
	return crypto.SigToPub(hash, sig)
}

// IsLowS reports whether s is in the low-s half of the curve order, the
// normalization spec.md §8 property 5 requires of every produced
// signature.
func IsLowS(s *big.Int) bool {
	return s.Cmp(secp256k1HalfN) <= 0
}

// N returns the secp256k1 curve order.
func N() *big.Int {
	return new(big.Int).Set(secp256k1N)
}
