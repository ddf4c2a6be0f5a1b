package jadecrypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"

	"github.com/ethereum/go-ethereum/crypto"
)

// Keccak256 is Ethereum's Keccak-256 (distinct from NIST SHA3-256), used
// throughout the address, MAC, and hashing pipelines.
func Keccak256(data ...[]byte) []byte {
	return crypto.Keccak256(data...)
}

// HMACSHA512 computes HMAC-SHA512(key, data), the primitive behind BIP-32
// master key generation and child derivation.
func HMACSHA512(key, data []byte) []byte {
	mac := hmac.New(sha512.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}

// HMACSHA256 computes HMAC-SHA256(key, data).
func HMACSHA256(key, data []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}

// SHA256 computes SHA-256(data), used for the BIP-39 checksum.
func SHA256(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// ConstantTimeEqual compares two byte slices without leaking timing
// information about where they first differ. Used to compare MACs on
// keyfile decrypt so passphrase-guessing cannot use timing as an oracle.
func ConstantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
