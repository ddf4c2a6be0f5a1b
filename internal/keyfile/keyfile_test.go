package keyfile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/etclabscore/jade-signer/internal/jadecrypto"
	"github.com/etclabscore/jade-signer/internal/jadeerr"
)

// TestDecryptOfficialPBKDF2Vector reproduces spec scenario S1: the
// official Web3 Secret Storage pbkdf2 test vector.
func TestDecryptOfficialPBKDF2Vector(t *testing.T) {
	const raw = `{"version":3,"crypto":{"cipher":"aes-128-ctr","ciphertext":"5318b4d5bcd28de64ee5559e671353e16f075ecae9f99c7a79a38af5f869aa46","cipherparams":{"iv":"6087dab2f9fdbbfaddc31a909735c1e6"},"kdf":"pbkdf2","kdfparams":{"c":262144,"dklen":32,"prf":"hmac-sha256","salt":"ae3cd4e7013836a3df6bd7241b12db061dbe2c6785853cce422d148a624ce0bd"},"mac":"517ead924a9d0dc3124507e3393d175ce3ff7c1e96529c6c555ce9e51205e9b2"}}`

	var kf KeyfileJSON
	require.NoError(t, json.Unmarshal([]byte(raw), &kf))

	priv, err := Decrypt(&kf, "testpassword")
	require.NoError(t, err)
	require.Len(t, priv, 32)

	ecdsaPriv, err := jadecrypto.ToECDSA(priv)
	require.NoError(t, err)

	addr := jadecrypto.PubkeyToAddress(&ecdsaPriv.PublicKey)
	require.Equal(t, "008aeeda4d805471df9b2a5b0f38a0c3bcba786b", hexNoPrefix(addr))
}

// TestDecryptWrongPassphraseIsMACMismatch checks that a wrong passphrase
// is reported uniformly as an invalid-passphrase error, not a parse error.
func TestDecryptWrongPassphraseIsMACMismatch(t *testing.T) {
	const raw = `{"version":3,"crypto":{"cipher":"aes-128-ctr","ciphertext":"5318b4d5bcd28de64ee5559e671353e16f075ecae9f99c7a79a38af5f869aa46","cipherparams":{"iv":"6087dab2f9fdbbfaddc31a909735c1e6"},"kdf":"pbkdf2","kdfparams":{"c":262144,"dklen":32,"prf":"hmac-sha256","salt":"ae3cd4e7013836a3df6bd7241b12db061dbe2c6785853cce422d148a624ce0bd"},"mac":"517ead924a9d0dc3124507e3393d175ce3ff7c1e96529c6c555ce9e51205e9b2"}}`

	var kf KeyfileJSON
	require.NoError(t, json.Unmarshal([]byte(raw), &kf))

	_, err := Decrypt(&kf, "wrong-passphrase")
	require.Error(t, err)
	require.Equal(t, jadeerr.KindInvalidPassphrase, jadeerr.KindOf(err))
}

// TestEncryptDecryptRoundtripScrypt covers spec.md §8 property 1: encrypt
// then decrypt with the right passphrase recovers the original key.
func TestEncryptDecryptRoundtripScrypt(t *testing.T) {
	priv, err := jadecrypto.GenerateKey()
	require.NoError(t, err)
	rawKey := jadecrypto.FromECDSA(priv)
	addr := jadecrypto.PubkeyToAddress(&priv.PublicKey)

	kf, err := Encrypt(rawKey, "correct horse battery staple", "0x"+hexNoPrefix(addr), LightOptions())
	require.NoError(t, err)
	require.Equal(t, Version, kf.Version)
	require.Equal(t, KDFScrypt, kf.Crypto.KDF)
	require.True(t, kf.IsVisible())

	decrypted, err := Decrypt(kf, "correct horse battery staple")
	require.NoError(t, err)
	require.Equal(t, rawKey, decrypted)
}

// TestEncryptDecryptRoundtripPBKDF2 exercises the PBKDF2 KDF path.
func TestEncryptDecryptRoundtripPBKDF2(t *testing.T) {
	priv, err := jadecrypto.GenerateKey()
	require.NoError(t, err)
	rawKey := jadecrypto.FromECDSA(priv)

	kf, err := Encrypt(rawKey, "hunter2", "", Options{KDF: KDFPBKDF2, PBKDF2C: 4096})
	require.NoError(t, err)
	require.Equal(t, KDFPBKDF2, kf.Crypto.KDF)

	decrypted, err := Decrypt(kf, "hunter2")
	require.NoError(t, err)
	require.Equal(t, rawKey, decrypted)
}

// TestDecryptRejectsOversizedKDFParams enforces the DoS upper bounds
// spec.md §9 names for both KDFs.
func TestDecryptRejectsOversizedKDFParams(t *testing.T) {
	priv, err := jadecrypto.GenerateKey()
	require.NoError(t, err)
	rawKey := jadecrypto.FromECDSA(priv)

	kf, err := Encrypt(rawKey, "pw", "", LightOptions())
	require.NoError(t, err)

	var params ScryptParams
	require.NoError(t, json.Unmarshal(kf.Crypto.KDFParams, &params))
	params.N = 1 << 21
	raw, err := json.Marshal(params)
	require.NoError(t, err)
	kf.Crypto.KDFParams = raw

	_, err = Decrypt(kf, "pw")
	require.Error(t, err)
}

// TestDecryptRejectsAddressMismatch covers spec.md §3's Keyfile invariant
// ("address, if present, matches decrypted key") and §4.3's Decrypt
// contract: the address field sits outside the MAC, so a keyfile whose
// declared address disagrees with its ciphertext must be rejected rather
// than silently decrypted "as" the wrong account.
func TestDecryptRejectsAddressMismatch(t *testing.T) {
	priv, err := jadecrypto.GenerateKey()
	require.NoError(t, err)
	rawKey := jadecrypto.FromECDSA(priv)

	kf, err := Encrypt(rawKey, "pw", "", LightOptions())
	require.NoError(t, err)
	kf.Address = "00000000000000000000000000000000000000ff"

	_, err = Decrypt(kf, "pw")
	require.Error(t, err)
}

// TestDecryptRejectsUndersizedDKLen covers spec.md §9's DoS-prevention
// bound and §7's "no panics on valid input": a crafted keyfile with a
// kdfparams.dklen shorter than the 32 bytes the MAC/encryption-key split
// needs must fail cleanly, not panic on a slice out of range.
func TestDecryptRejectsUndersizedDKLen(t *testing.T) {
	priv, err := jadecrypto.GenerateKey()
	require.NoError(t, err)
	rawKey := jadecrypto.FromECDSA(priv)

	kf, err := Encrypt(rawKey, "pw", "", LightOptions())
	require.NoError(t, err)

	var params ScryptParams
	require.NoError(t, json.Unmarshal(kf.Crypto.KDFParams, &params))
	params.DKLen = 16
	raw, err := json.Marshal(params)
	require.NoError(t, err)
	kf.Crypto.KDFParams = raw

	_, err = Decrypt(kf, "pw")
	require.Error(t, err)
}

func hexNoPrefix(addr [20]byte) string {
	const hextable = "0123456789abcdef"
	out := make([]byte, 40)
	for i, b := range addr {
		out[i*2] = hextable[b>>4]
		out[i*2+1] = hextable[b&0x0f]
	}
	return string(out)
}
