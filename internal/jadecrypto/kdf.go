package jadecrypto

import (
	"crypto/sha256"
	"fmt"
	"hash"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
)

func newSHA256() hash.Hash { return sha256.New() }

// KDF parameter bounds (spec.md §9: "enforce upper bounds ... to prevent
// denial-of-service via maliciously crafted keyfiles on import").
const (
	MaxScryptN  = 1 << 20
	MaxPBKDF2C  = 10_000_000
	DefaultDKLen = 32

	// MinDKLen is the shortest derived key this module accepts: the
	// encryption key (derivedKey[:16]) and the MAC key (derivedKey[16:32])
	// each occupy 16 bytes of it, so anything shorter cannot be sliced
	// without panicking (spec.md §9's DoS-prevention bound applies to the
	// low end of dklen too, not just the KDF cost parameters).
	MinDKLen = 32
)

// Recommended defaults (spec.md §4.3).
const (
	ScryptNStandard = 1 << 18
	ScryptNLight    = 1 << 12
	ScryptR         = 8
	ScryptP         = 1

	PBKDF2Iterations = 262144
)

// ScryptDeriveKey runs scrypt(passphrase, salt, N, r, p, dkLen), rejecting
// parameters above the DoS-prevention ceiling.
func ScryptDeriveKey(passphrase, salt []byte, n, r, p, dkLen int) ([]byte, error) {
	if n <= 0 || n > MaxScryptN {
		return nil, fmt.Errorf("scrypt: N=%d out of bounds (max %d)", n, MaxScryptN)
	}
	if r <= 0 || p <= 0 {
		return nil, fmt.Errorf("scrypt: invalid parameters r=%d p=%d", r, p)
	}
	if dkLen < MinDKLen {
		return nil, fmt.Errorf("scrypt: dklen=%d below minimum %d", dkLen, MinDKLen)
	}
	return scrypt.Key(passphrase, salt, n, r, p, dkLen)
}

// PBKDF2DeriveKey runs PBKDF2-HMAC-SHA256(passphrase, salt, c, dkLen),
// rejecting iteration counts above the DoS-prevention ceiling.
func PBKDF2DeriveKey(passphrase, salt []byte, c, dkLen int) ([]byte, error) {
	if c <= 0 || c > MaxPBKDF2C {
		return nil, fmt.Errorf("pbkdf2: c=%d out of bounds (max %d)", c, MaxPBKDF2C)
	}
	if dkLen < MinDKLen {
		return nil, fmt.Errorf("pbkdf2: dklen=%d below minimum %d", dkLen, MinDKLen)
	}
	return pbkdf2Key(passphrase, salt, c, dkLen), nil
}

func pbkdf2Key(passphrase, salt []byte, c, dkLen int) []byte {
	return pbkdf2.Key(passphrase, salt, c, dkLen, newSHA256)
}
