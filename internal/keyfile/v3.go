// Package keyfile implements the Web3 Secret Storage v3 keyfile codec:
// encode a private key into passphrase-encrypted JSON and decode it back,
// supporting both scrypt and pbkdf2 KDFs over AES-128-CTR with a
// keccak-256 MAC (spec.md §4.3).
//
// Grounded on the corpus's own v3 implementations: the field layout
// follows monolythium-mono-commander's walletgen.KeystoreV3/CryptoV3, and
// the scrypt/pbkdf2 split mirrors go-ethereum's historical
// key_store_passphrase.go and hyperledger firefly-signer's keystorev3
// package.
package keyfile

import "encoding/json"

// Version is the only Web3 Secret Storage version this codec accepts.
const Version = 3

// CipherAESCTR is the only cipher spec.md §4.3 supports.
const CipherAESCTR = "aes-128-ctr"

// KDF identifiers.
const (
	KDFScrypt = "scrypt"
	KDFPBKDF2 = "pbkdf2"
)

// CipherParams holds the AES-128-CTR IV.
type CipherParams struct {
	IV string `json:"iv"`
}

// ScryptParams holds scrypt KDF parameters plus its hex-encoded salt.
type ScryptParams struct {
	N     int    `json:"n"`
	R     int    `json:"r"`
	P     int    `json:"p"`
	DKLen int    `json:"dklen"`
	Salt  string `json:"salt"`
}

// PBKDF2Params holds PBKDF2 KDF parameters plus its hex-encoded salt.
type PBKDF2Params struct {
	C     int    `json:"c"`
	DKLen int    `json:"dklen"`
	PRF   string `json:"prf"`
	Salt  string `json:"salt"`
}

// CryptoJSON is the "crypto" block of a v3 keyfile. KDFParams holds
// either ScryptParams or PBKDF2Params depending on KDF; it is decoded
// lazily (see codec.go) since its shape depends on the sibling KDF field.
type CryptoJSON struct {
	Cipher       string          `json:"cipher"`
	CipherText   string          `json:"ciphertext"`
	CipherParams CipherParams    `json:"cipherparams"`
	KDF          string          `json:"kdf"`
	KDFParams    json.RawMessage `json:"kdfparams"`
	MAC          string          `json:"mac"`
}

// KeyfileJSON is the full on-disk Web3 Secret Storage v3 document, with
// Jade Signer's metadata sidecar fields (name/description/visible)
// appended alongside the standard fields (spec.md §3's Keyfile entity).
type KeyfileJSON struct {
	Version     int        `json:"version"`
	ID          string     `json:"id"`
	Address     string     `json:"address,omitempty"`
	Name        string     `json:"name,omitempty"`
	Description string     `json:"description,omitempty"`
	Visible     *bool      `json:"visible,omitempty"`
	Crypto      CryptoJSON `json:"crypto"`
}

// IsVisible reports the keyfile's visibility, defaulting to visible when
// the field is absent (matching legacy keyfiles written before the
// hide/unhide feature existed).
func (k *KeyfileJSON) IsVisible() bool {
	if k.Visible == nil {
		return true
	}
	return *k.Visible
}

// SetVisible sets the visibility flag.
func (k *KeyfileJSON) SetVisible(visible bool) {
	k.Visible = &visible
}
