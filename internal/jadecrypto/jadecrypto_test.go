package jadecrypto

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

const testPrivateKeyHex = "4646464646464646464646464646464646464646464646464646464646464646464646464646464646464646464646"[:64]

func TestSignRecoverRoundtrip(t *testing.T) {
	raw, err := hex.DecodeString(testPrivateKeyHex)
	require.NoError(t, err)

	priv, err := ToECDSA(raw)
	require.NoError(t, err)

	hash := Keccak256([]byte("hello jade signer"))
	sig, err := Sign(hash, priv)
	require.NoError(t, err)

	recovered, err := RecoverPublicKey(hash, sig[:])
	require.NoError(t, err)

	wantAddr := PubkeyToAddress(&priv.PublicKey)
	gotAddr := PubkeyToAddress(recovered)
	require.Equal(t, wantAddr, gotAddr)
}

func TestSignatureIsLowS(t *testing.T) {
	priv, err := GenerateKey()
	require.NoError(t, err)

	for i := 0; i < 32; i++ {
		hash := Keccak256([]byte{byte(i)})
		sig, err := Sign(hash, priv)
		require.NoError(t, err)

		s := new(big.Int).SetBytes(sig[32:64])
		require.True(t, IsLowS(s), "signature %d not low-s", i)
	}
}

func TestToECDSARejectsOutOfRangeScalar(t *testing.T) {
	zero := make([]byte, 32)
	_, err := ToECDSA(zero)
	require.ErrorIs(t, err, ErrInvalidPrivateKey)

	tooLarge := N().Bytes()
	_, err = ToECDSA(tooLarge)
	require.ErrorIs(t, err, ErrInvalidPrivateKey)
}

func TestConstantTimeEqual(t *testing.T) {
	require.True(t, ConstantTimeEqual([]byte("abc"), []byte("abc")))
	require.False(t, ConstantTimeEqual([]byte("abc"), []byte("abd")))
	require.False(t, ConstantTimeEqual([]byte("abc"), []byte("ab")))
}

func TestDeriveKeyRejectsUndersizedDKLen(t *testing.T) {
	salt, err := RandomBytes(32)
	require.NoError(t, err)

	_, err = ScryptDeriveKey([]byte("pw"), salt, ScryptNLight, ScryptR, ScryptP, 16)
	require.Error(t, err)

	_, err = PBKDF2DeriveKey([]byte("pw"), salt, 4096, 16)
	require.Error(t, err)
}

func TestAES128CTRSymmetric(t *testing.T) {
	key, err := RandomBytes(16)
	require.NoError(t, err)
	iv, err := RandomBytes(16)
	require.NoError(t, err)

	plain := []byte("a 32 byte secp256k1 private key")
	cipherText, err := AES128CTR(key, iv, plain)
	require.NoError(t, err)

	roundTrip, err := AES128CTR(key, iv, cipherText)
	require.NoError(t, err)
	require.Equal(t, plain, roundTrip)
}
