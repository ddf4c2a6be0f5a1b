package jadecrypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
)

// AES128CTR encrypts or decrypts data (the XOR keystream is its own
// inverse) using AES-128 in CTR mode, the cipher Web3 Secret Storage v3
// mandates, and returns the result in a new slice; in is not modified.
// key must be 16 bytes, iv must be 16 bytes.
func AES128CTR(key, iv, in []byte) ([]byte, error) {
	if len(key) != 16 {
		return nil, fmt.Errorf("aes-128-ctr: key must be 16 bytes, got %d", len(key))
	}
	if len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("aes-128-ctr: iv must be %d bytes, got %d", aes.BlockSize, len(iv))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(in))
	stream := cipher.NewCTR(block, iv)
	stream.XORKeyStream(out, in)
	return out, nil
}

// RandomBytes draws n bytes from a cryptographically secure RNG, used for
// keyfile salts and IVs.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, err
	}
	return b, nil
}
