package keystore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/etclabscore/jade-signer/internal/jadeerr"
)

func openTestKeystore(t *testing.T) *Keystore {
	t.Helper()
	ks, err := Open(t.TempDir(), "etc")
	require.NoError(t, err)
	return ks
}

// TestCreateThenLookup exercises create + lookup + export.
func TestCreateThenLookup(t *testing.T) {
	ks := openTestKeystore(t)

	addr, err := ks.Create("pw", "alice", "first account")
	require.NoError(t, err)
	require.Len(t, addr, 42)

	kf, err := ks.Lookup(addr)
	require.NoError(t, err)
	require.Equal(t, "alice", kf.Name)

	raw, err := ks.Export(addr)
	require.NoError(t, err)
	var round map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &round))
	require.Contains(t, round, "crypto")
}

// TestCreateDuplicateAddressRejected simulates importing a keyfile whose
// address already exists (spec.md §9 "Address collision").
func TestCreateDuplicateAddressRejected(t *testing.T) {
	ks := openTestKeystore(t)

	addr, err := ks.Create("pw", "alice", "")
	require.NoError(t, err)

	kf, err := ks.Export(addr)
	require.NoError(t, err)

	_, err = ks.Import(kf)
	require.Error(t, err)
	require.Equal(t, jadeerr.KindDuplicateAccount, jadeerr.KindOf(err))
}

// TestImportRequiresDeclaredAddress documents the Import contract: no
// passphrase is carried alongside signer_importAccount, so a keyfile
// without a declared address cannot be admitted.
func TestImportRequiresDeclaredAddress(t *testing.T) {
	ks := openTestKeystore(t)
	_, err := ks.Import([]byte(`{"version":3,"crypto":{"cipher":"aes-128-ctr","ciphertext":"00","cipherparams":{"iv":"00"},"kdf":"scrypt","kdfparams":{},"mac":"00"}}`))
	require.Error(t, err)
	require.Equal(t, jadeerr.KindInvalidParams, jadeerr.KindOf(err))
}

// TestHideUnhideListSemantics reproduces spec scenario S6 and testable
// property 6: hide/unhide visibility is reflected immediately in list.
func TestHideUnhideListSemantics(t *testing.T) {
	ks := openTestKeystore(t)

	addr, err := ks.Create("pw", "bob", "")
	require.NoError(t, err)

	found, err := ks.SetHidden(addr, true)
	require.NoError(t, err)
	require.True(t, found)

	visible := ks.List(false)
	for _, r := range visible {
		require.NotEqual(t, "0x"+r.Address, addr)
	}

	all := ks.List(true)
	var seen bool
	for _, r := range all {
		if "0x"+r.Address == addr {
			seen = true
			require.True(t, r.Hidden)
		}
	}
	require.True(t, seen)

	found, err = ks.SetHidden(addr, false)
	require.NoError(t, err)
	require.True(t, found)

	visibleAgain := ks.List(false)
	var exactlyOnce int
	for _, r := range visibleAgain {
		if "0x"+r.Address == addr {
			exactlyOnce++
		}
	}
	require.Equal(t, 1, exactlyOnce)
}

// TestSetHiddenIsIdempotent covers testable property 7.
func TestSetHiddenIsIdempotent(t *testing.T) {
	ks := openTestKeystore(t)
	addr, err := ks.Create("pw", "carol", "")
	require.NoError(t, err)

	_, err = ks.SetHidden(addr, true)
	require.NoError(t, err)
	_, err = ks.SetHidden(addr, true)
	require.NoError(t, err)

	all := ks.List(true)
	var count int
	for _, r := range all {
		if "0x"+r.Address == addr {
			count++
		}
	}
	require.Equal(t, 1, count)
}

// TestSetHiddenUnknownAddressReturnsFalse checks the "returns true iff
// the account existed" contract.
func TestSetHiddenUnknownAddressReturnsFalse(t *testing.T) {
	ks := openTestKeystore(t)
	found, err := ks.SetHidden("0x000000000000000000000000000000000000dead", true)
	require.NoError(t, err)
	require.False(t, found)
}

// TestListOrderingIsInsertionOrder checks ascending-timestamp ordering.
func TestListOrderingIsInsertionOrder(t *testing.T) {
	ks := openTestKeystore(t)

	var addrs []string
	for i := 0; i < 3; i++ {
		addr, err := ks.Create("pw", "", "")
		require.NoError(t, err)
		addrs = append(addrs, addr)
		time.Sleep(2 * time.Millisecond)
	}

	records := ks.List(true)
	require.Len(t, records, 3)
	for i, r := range records {
		require.Equal(t, addrs[i], "0x"+r.Address)
	}
}

// TestReopenRebuildsFromDirectory checks that a fresh Keystore opened on
// the same directory (without its cached index) reconstructs the same
// accounts by scanning keyfiles (spec.md §9 "Index cache coherence").
func TestReopenRebuildsFromDirectory(t *testing.T) {
	base := t.TempDir()
	ks, err := Open(base, "etc")
	require.NoError(t, err)

	addr, err := ks.Create("pw", "dave", "desc")
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(base, "etc", indexFileName)))

	reopened, err := Open(base, "etc")
	require.NoError(t, err)

	kf, err := reopened.Lookup(addr)
	require.NoError(t, err)
	require.Equal(t, "dave", kf.Name)
}
