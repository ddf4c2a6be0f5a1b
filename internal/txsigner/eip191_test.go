package txsigner

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/require"

	"github.com/etclabscore/jade-signer/internal/jadecrypto"
)

// TestSignPersonalMessage reproduces spec scenario S5: signing "hello"
// yields a 65-byte signature with v in {27,28} that recovers the
// signer's address.
func TestSignPersonalMessage(t *testing.T) {
	privBytes, err := hexutil.Decode("0x" + strings.Repeat("46", 32))
	require.NoError(t, err)
	priv, err := jadecrypto.ToECDSA(privBytes)
	require.NoError(t, err)
	addr := jadecrypto.PubkeyToAddress(&priv.PublicKey)

	sig, err := SignPersonal([]byte("hello"), priv)
	require.NoError(t, err)
	require.Len(t, sig, 65)
	require.True(t, sig[64] == 27 || sig[64] == 28)

	recoverable := sig
	recoverable[64] -= 27
	pub, err := jadecrypto.RecoverPublicKey(HashPersonalMessage([]byte("hello")), recoverable[:])
	require.NoError(t, err)
	require.Equal(t, addr, jadecrypto.PubkeyToAddress(pub))
}

// TestHashPersonalMessageLengthPrefix checks the literal digest
// construction against a hand-computed case.
func TestHashPersonalMessageLengthPrefix(t *testing.T) {
	got := HashPersonalMessage([]byte("hello"))
	want := jadecrypto.Keccak256([]byte("\x19Ethereum Signed Message:\n5hello"))
	require.Equal(t, want, got)
}
