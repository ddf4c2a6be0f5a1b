package keyfile

import (
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/etclabscore/jade-signer/internal/jadecrypto"
	"github.com/etclabscore/jade-signer/internal/jadeerr"
)

// Options controls the KDF and its cost parameters used by Encrypt.
type Options struct {
	KDF     string // KDFScrypt (default) or KDFPBKDF2
	ScryptN int    // defaults to jadecrypto.ScryptNStandard
	ScryptR int    // defaults to jadecrypto.ScryptR
	ScryptP int    // defaults to jadecrypto.ScryptP
	PBKDF2C int    // defaults to jadecrypto.PBKDF2Iterations
}

// DefaultOptions returns the standard scrypt profile (spec.md §4.3).
func DefaultOptions() Options {
	return Options{
		KDF:     KDFScrypt,
		ScryptN: jadecrypto.ScryptNStandard,
		ScryptR: jadecrypto.ScryptR,
		ScryptP: jadecrypto.ScryptP,
	}
}

// LightOptions returns the light scrypt profile, suitable for tests and
// low-memory systems (spec.md §4.3).
func LightOptions() Options {
	return Options{
		KDF:     KDFScrypt,
		ScryptN: jadecrypto.ScryptNLight,
		ScryptR: jadecrypto.ScryptR,
		ScryptP: jadecrypto.ScryptP,
	}
}

// Encrypt builds a v3 keyfile document for privateKey under passphrase.
// address, when non-empty, is recorded lowercase-hex without "0x".
func Encrypt(privateKey []byte, passphrase string, address string, opts Options) (*KeyfileJSON, error) {
	if opts.KDF == "" {
		opts = DefaultOptions()
	}

	salt, err := jadecrypto.RandomBytes(32)
	if err != nil {
		return nil, jadeerr.Wrap(jadeerr.KindInternal, "generate salt", err)
	}
	iv, err := jadecrypto.RandomBytes(16)
	if err != nil {
		return nil, jadeerr.Wrap(jadeerr.KindInternal, "generate iv", err)
	}

	derivedKey, kdfParams, err := deriveForEncrypt(passphrase, salt, opts)
	if err != nil {
		return nil, err
	}
	defer jadecrypto.Wipe(derivedKey)

	encKey := derivedKey[:16]
	cipherText, err := jadecrypto.AES128CTR(encKey, iv, privateKey)
	if err != nil {
		return nil, jadeerr.Wrap(jadeerr.KindInternal, "encrypt private key", err)
	}

	mac := jadecrypto.Keccak256(derivedKey[16:32], cipherText)

	rawKDFParams, err := json.Marshal(kdfParams)
	if err != nil {
		return nil, jadeerr.Wrap(jadeerr.KindInternal, "marshal kdf params", err)
	}

	kf := &KeyfileJSON{
		Version: Version,
		ID:      uuid.NewString(),
		Address: strings.ToLower(strings.TrimPrefix(address, "0x")),
		Crypto: CryptoJSON{
			Cipher:       CipherAESCTR,
			CipherText:   hex.EncodeToString(cipherText),
			CipherParams: CipherParams{IV: hex.EncodeToString(iv)},
			KDF:          opts.KDF,
			KDFParams:    rawKDFParams,
			MAC:          hex.EncodeToString(mac),
		},
	}
	kf.SetVisible(true)
	return kf, nil
}

func deriveForEncrypt(passphrase string, salt []byte, opts Options) ([]byte, any, error) {
	switch opts.KDF {
	case KDFScrypt, "":
		n, r, p := opts.ScryptN, opts.ScryptR, opts.ScryptP
		if n == 0 {
			n = jadecrypto.ScryptNStandard
		}
		if r == 0 {
			r = jadecrypto.ScryptR
		}
		if p == 0 {
			p = jadecrypto.ScryptP
		}
		dk, err := jadecrypto.ScryptDeriveKey([]byte(passphrase), salt, n, r, p, jadecrypto.DefaultDKLen)
		if err != nil {
			return nil, nil, jadeerr.Wrap(jadeerr.KindInternal, "scrypt derive", err)
		}
		return dk, ScryptParams{N: n, R: r, P: p, DKLen: jadecrypto.DefaultDKLen, Salt: hex.EncodeToString(salt)}, nil
	case KDFPBKDF2:
		c := opts.PBKDF2C
		if c == 0 {
			c = jadecrypto.PBKDF2Iterations
		}
		dk, err := jadecrypto.PBKDF2DeriveKey([]byte(passphrase), salt, c, jadecrypto.DefaultDKLen)
		if err != nil {
			return nil, nil, jadeerr.Wrap(jadeerr.KindInternal, "pbkdf2 derive", err)
		}
		return dk, PBKDF2Params{C: c, DKLen: jadecrypto.DefaultDKLen, PRF: "hmac-sha256", Salt: hex.EncodeToString(salt)}, nil
	default:
		return nil, nil, errMalformed("unknown kdf: " + opts.KDF)
	}
}

// Decrypt parses and decrypts a v3 keyfile under passphrase, returning
// the raw 32-byte private key. MAC comparison is constant-time; a
// mismatch is reported as InvalidPassphrase, never distinguished from a
// tampered ciphertext, so a brute-forcer learns nothing extra. Fields
// that fail to parse (non-hex iv, ciphertext or mac) are KeyfileMalformed.
func Decrypt(kf *KeyfileJSON, passphrase string) ([]byte, error) {
	if kf.Version != Version {
		return nil, errMalformed("unsupported keyfile version")
	}
	if kf.Crypto.Cipher != CipherAESCTR {
		return nil, errMalformed("unsupported cipher: " + kf.Crypto.Cipher)
	}

	iv, err := hex.DecodeString(kf.Crypto.CipherParams.IV)
	if err != nil || len(iv) != 16 {
		return nil, errMalformed("malformed iv")
	}
	cipherText, err := hex.DecodeString(kf.Crypto.CipherText)
	if err != nil {
		return nil, errMalformed("malformed ciphertext")
	}
	storedMAC, err := hex.DecodeString(kf.Crypto.MAC)
	if err != nil || len(storedMAC) != 32 {
		return nil, errMalformed("malformed or missing mac")
	}

	derivedKey, err := deriveForDecrypt(passphrase, kf.Crypto)
	if err != nil {
		return nil, err
	}
	defer jadecrypto.Wipe(derivedKey)

	calculatedMAC := jadecrypto.Keccak256(derivedKey[16:32], cipherText)
	if !jadecrypto.ConstantTimeEqual(calculatedMAC, storedMAC) {
		return nil, jadeerr.New(jadeerr.KindInvalidPassphrase, "mac mismatch")
	}

	privateKey, err := jadecrypto.AES128CTR(derivedKey[:16], iv, cipherText)
	if err != nil {
		return nil, errMalformedWrap("decrypt private key", err)
	}

	// spec.md §3's Keyfile invariant ("address, if present, matches
	// decrypted key") and §4.3's Decrypt contract: the address field
	// sits outside the MAC, so it must be independently recomputed and
	// checked rather than trusted.
	if kf.Address != "" {
		declared := strings.ToLower(strings.TrimPrefix(kf.Address, "0x"))
		priv, err := jadecrypto.ToECDSA(privateKey)
		if err != nil {
			jadecrypto.Wipe(privateKey)
			return nil, errMalformedWrap("decrypted key is invalid", err)
		}
		addr := jadecrypto.PubkeyToAddress(&priv.PublicKey)
		actual := hex.EncodeToString(addr[:])
		if actual != declared {
			jadecrypto.Wipe(privateKey)
			return nil, errMalformed("declared address does not match decrypted key")
		}
	}
	return privateKey, nil
}

func deriveForDecrypt(passphrase string, c CryptoJSON) ([]byte, error) {
	switch c.KDF {
	case KDFScrypt:
		var p ScryptParams
		if err := json.Unmarshal(c.KDFParams, &p); err != nil {
			return nil, errMalformedWrap("malformed scrypt params", err)
		}
		salt, err := hex.DecodeString(p.Salt)
		if err != nil {
			return nil, errMalformed("malformed scrypt salt")
		}
		dk, err := jadecrypto.ScryptDeriveKey([]byte(passphrase), salt, p.N, p.R, p.P, p.DKLen)
		if err != nil {
			return nil, errMalformedWrap("scrypt params out of bounds", err)
		}
		return dk, nil
	case KDFPBKDF2:
		var p PBKDF2Params
		if err := json.Unmarshal(c.KDFParams, &p); err != nil {
			return nil, errMalformedWrap("malformed pbkdf2 params", err)
		}
		if p.PRF != "" && p.PRF != "hmac-sha256" {
			return nil, errMalformed("unsupported pbkdf2 prf: " + p.PRF)
		}
		salt, err := hex.DecodeString(p.Salt)
		if err != nil {
			return nil, errMalformed("malformed pbkdf2 salt")
		}
		dk, err := jadecrypto.PBKDF2DeriveKey([]byte(passphrase), salt, p.C, p.DKLen)
		if err != nil {
			return nil, errMalformedWrap("pbkdf2 params out of bounds", err)
		}
		return dk, nil
	case "":
		return nil, errMalformed("missing kdf")
	default:
		return nil, errMalformed("unknown kdf: " + c.KDF)
	}
}
