package jadecrypto

import "math/big"

// Wipe zeroes b in place. The scopes that hold a raw private key, a seed,
// mnemonic entropy, or derived KDF output as a byte slice call Wipe on
// their way out, success or failure. Passphrases and mnemonic phrases are
// Go strings and are not wiped, nor are the *ecdsa.PrivateKey values
// built from raw keys.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// WipeScalar zeroes a big.Int holding secret material (e.g. an ecdsa
// PrivateKey.D) so the scalar doesn't linger in the heap after the
// surrounding struct is dropped.
func WipeScalar(d *big.Int) {
	if d == nil {
		return
	}
	d.SetInt64(0)
}
