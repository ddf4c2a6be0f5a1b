package txsigner

import (
	"encoding/hex"
	"testing"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/stretchr/testify/require"

	"github.com/etclabscore/jade-signer/internal/jadecrypto"
)

// eip712MailExample builds the canonical "Mail" TypedData document from
// the published EIP-712 specification.
func eip712MailExample() TypedData {
	return TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
			"Person": {
				{Name: "name", Type: "string"},
				{Name: "wallet", Type: "address"},
			},
			"Mail": {
				{Name: "from", Type: "Person"},
				{Name: "to", Type: "Person"},
				{Name: "contents", Type: "string"},
			},
		},
		PrimaryType: "Mail",
		Domain: apitypes.TypedDataDomain{
			Name:              "Ether Mail",
			Version:           "1",
			ChainId:           math.NewHexOrDecimal256(1),
			VerifyingContract: "0xCcCCccccCCCCcCCCCCCcCcCccCcCCCcCcccccccC",
		},
		Message: apitypes.TypedDataMessage{
			"from": map[string]interface{}{
				"name":   "Cow",
				"wallet": "0xCD2a3d9F938E13CD947Ec05AbC7FE734Df8DD826",
			},
			"to": map[string]interface{}{
				"name":   "Bob",
				"wallet": "0xbBbBBBBbbBBBbbbBbbBbbbbBBbBbbbbBbBbbBBbB",
			},
			"contents": "Hello, Bob!",
		},
	}
}

// TestHashTypedDataCanonicalExample checks HashTypedData against the
// published EIP-712 worked example's final signing hash.
func TestHashTypedDataCanonicalExample(t *testing.T) {
	digest, err := HashTypedData(eip712MailExample())
	require.NoError(t, err)

	want, err := hex.DecodeString("be609aee343fb3c4b28e1df9e632fca64fcfaede20f02e86244efddf30957bd")
	require.NoError(t, err)
	require.Equal(t, want, digest)
}

// TestSignTypedDataRecovers covers the same recovery property EIP-191
// signing has, applied to the EIP-712 digest.
func TestSignTypedDataRecovers(t *testing.T) {
	priv, err := jadecrypto.GenerateKey()
	require.NoError(t, err)
	addr := jadecrypto.PubkeyToAddress(&priv.PublicKey)

	td := eip712MailExample()
	sig, err := SignTypedData(td, priv)
	require.NoError(t, err)
	require.True(t, sig[64] == 27 || sig[64] == 28)

	digest, err := HashTypedData(td)
	require.NoError(t, err)

	recoverable := sig
	recoverable[64] -= 27
	pub, err := jadecrypto.RecoverPublicKey(digest, recoverable[:])
	require.NoError(t, err)
	require.Equal(t, addr, jadecrypto.PubkeyToAddress(pub))
}
