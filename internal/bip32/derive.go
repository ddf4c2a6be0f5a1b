package bip32

import (
	"crypto/ecdsa"
	"errors"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcutil/hdkeychain"

	"github.com/etclabscore/jade-signer/internal/jadeerr"
)

// params is a placeholder network; hdkeychain only uses it for the
// extended-key version bytes on (de)serialization, which Jade Signer
// never exposes — derivation never leaves the process.
var params = &chaincfg.MainNetParams

// MasterKey builds the BIP-32 master extended key from a seed:
// HMAC-SHA512("Bitcoin seed", seed) split into (k, chain code), exactly
// as the teacher's hdwallet.go builds it via hdkeychain.NewMaster.
func MasterKey(seed []byte) (*hdkeychain.ExtendedKey, error) {
	master, err := hdkeychain.NewMaster(seed, params)
	if err != nil {
		return nil, jadeerr.Wrap(jadeerr.KindDerivationFailed, "derive master key", err)
	}
	return master, nil
}

// Derive walks path from the master key, returning the ECDSA private key
// at the end of the chain. Each level's child derivation follows BIP-32:
// hardened children hash 0x00||k_parent||ser32(i), non-hardened children
// hash serP(K_parent)||ser32(i); if the derived scalar is zero or >= the
// curve order, the index is rejected and the next index is tried
// (spec.md §4.2) — hdkeychain.Child reports such an index by returning
// ErrInvalidChild, and deriveChild then advances to the next index.
func Derive(master *hdkeychain.ExtendedKey, path Path) (*ecdsa.PrivateKey, error) {
	key := master
	for _, idx := range path {
		child, err := deriveChild(key, idx)
		if err != nil {
			return nil, err
		}
		key = child
	}

	priv, err := key.ECPrivKey()
	if err != nil {
		return nil, jadeerr.Wrap(jadeerr.KindDerivationFailed, "extract private key", err)
	}
	return priv.ToECDSA(), nil
}

func deriveChild(key *hdkeychain.ExtendedKey, idx uint32) (*hdkeychain.ExtendedKey, error) {
	for {
		child, err := key.Child(idx)
		if err == nil {
			return child, nil
		}
		if errors.Is(err, hdkeychain.ErrInvalidChild) {
			idx++
			continue
		}
		return nil, jadeerr.Wrap(jadeerr.KindDerivationFailed, "derive child key", err)
	}
}

// DeriveFromSeed is the common case: build the master key from seed, then
// walk path in one call.
func DeriveFromSeed(seed []byte, path Path) (*ecdsa.PrivateKey, error) {
	master, err := MasterKey(seed)
	if err != nil {
		return nil, err
	}
	return Derive(master, path)
}
