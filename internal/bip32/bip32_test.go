package bip32

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/etclabscore/jade-signer/internal/jadecrypto"
	"github.com/etclabscore/jade-signer/internal/mnemonic"
)

func TestParsePathDefaultBIP44(t *testing.T) {
	p, err := ParsePath("m/44'/60'/0'/0/0")
	require.NoError(t, err)
	require.Equal(t, Path{
		HardenedOffset + 44,
		HardenedOffset + 60,
		HardenedOffset + 0,
		0,
		0,
	}, p)
	require.Equal(t, "m/44'/60'/0'/0/0", p.String())
}

func TestParsePathAcceptsHMarker(t *testing.T) {
	p, err := ParsePath("m/44h/60h/0h/0/0")
	require.NoError(t, err)
	require.Equal(t, Path{HardenedOffset + 44, HardenedOffset + 60, HardenedOffset + 0, 0, 0}, p)
}

func TestParsePathEmptyIsMaster(t *testing.T) {
	p, err := ParsePath("")
	require.NoError(t, err)
	require.Empty(t, p)

	p, err = ParsePath("m")
	require.NoError(t, err)
	require.Empty(t, p)
}

func TestParsePathRejectsOutOfRangeIndex(t *testing.T) {
	_, err := ParsePath("m/4294967296")
	require.Error(t, err)

	_, err = ParsePath("m/2147483648")
	require.Error(t, err)
}

func TestParsePathRejectsEmptySegment(t *testing.T) {
	_, err := ParsePath("m//0")
	require.Error(t, err)
}

// TestImportMnemonicVector reproduces spec scenario S4: importing a
// mnemonic along a non-standard path yields a fixed, known address.
func TestImportMnemonicVector(t *testing.T) {
	phrase := "icon suggest sphere kidney drip hover piano glove voyage used phrase salad"
	seed, err := mnemonic.Seed(phrase, "baz")
	require.NoError(t, err)

	path, err := ParsePath("m/44/60/160720/0")
	require.NoError(t, err)

	priv, err := DeriveFromSeed(seed, path)
	require.NoError(t, err)

	addr := jadecrypto.PubkeyToAddress(&priv.PublicKey)
	require.Equal(t, "0xa0dfb14b391590faff0d6b37bf2916f27cd15a28", addrHex(addr))
}

func addrHex(addr [20]byte) string {
	const hextable = "0123456789abcdef"
	out := make([]byte, 2+40)
	out[0], out[1] = '0', 'x'
	for i, b := range addr {
		out[2+i*2] = hextable[b>>4]
		out[2+i*2+1] = hextable[b&0x0f]
	}
	return string(out)
}
