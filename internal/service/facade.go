// Package service implements the pure, synchronous functions the RPC
// adapter dispatches to (spec.md §4.6): listAccounts, hideAccount,
// unhideAccount, newAccount, importAccount, exportAccount,
// generateMnemonic, importMnemonic, signTransaction, sign,
// signTypedData. Every function here is a thin composition of
// internal/keystore, internal/keyfile, internal/mnemonic,
// internal/bip32, and internal/txsigner; none of them touch the
// network.
package service

import (
	"encoding/json"
	"sync"

	"github.com/etclabscore/jade-signer/internal/bip32"
	"github.com/etclabscore/jade-signer/internal/jadecrypto"
	"github.com/etclabscore/jade-signer/internal/jadeerr"
	"github.com/etclabscore/jade-signer/internal/keyfile"
	"github.com/etclabscore/jade-signer/internal/keystore"
	"github.com/etclabscore/jade-signer/internal/mnemonic"
)

// AccountView is the JSON-facing shape of an account (spec.md §6
// signer_listAccounts result).
type AccountView struct {
	Address     string `json:"address"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Hidden      bool   `json:"is_hidden"`
}

// Facade owns one keystore per chain tag, opened lazily under a shared
// base path.
type Facade struct {
	basePath string

	mu        sync.Mutex
	keystores map[string]*keystore.Keystore
}

// New returns a Facade rooted at basePath. Chain keystores are opened
// on first use.
func New(basePath string) *Facade {
	return &Facade{basePath: basePath, keystores: make(map[string]*keystore.Keystore)}
}

func (f *Facade) keystoreFor(chain string) (*keystore.Keystore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if ks, ok := f.keystores[chain]; ok {
		return ks, nil
	}
	ks, err := keystore.Open(f.basePath, chain)
	if err != nil {
		return nil, err
	}
	f.keystores[chain] = ks
	return ks, nil
}

// ListAccounts returns every account record for chain, ordered by
// insertion time, filtered by visibility.
func (f *Facade) ListAccounts(chain string, showHidden bool) ([]AccountView, error) {
	ks, err := f.keystoreFor(chain)
	if err != nil {
		return nil, err
	}
	records := ks.List(showHidden)
	out := make([]AccountView, len(records))
	for i, r := range records {
		out[i] = AccountView{Address: "0x" + r.Address, Name: r.Name, Description: r.Description, Hidden: r.Hidden}
	}
	return out, nil
}

// HideAccount and UnhideAccount toggle an account's visibility,
// reporting whether it existed.
func (f *Facade) HideAccount(chain, address string) (bool, error) {
	ks, err := f.keystoreFor(chain)
	if err != nil {
		return false, err
	}
	return ks.SetHidden(address, true)
}

func (f *Facade) UnhideAccount(chain, address string) (bool, error) {
	ks, err := f.keystoreFor(chain)
	if err != nil {
		return false, err
	}
	return ks.SetHidden(address, false)
}

// NewAccount generates a fresh private key and stores it under
// passphrase.
func (f *Facade) NewAccount(chain, name, description, passphrase string) (string, error) {
	ks, err := f.keystoreFor(chain)
	if err != nil {
		return "", err
	}
	return ks.Create(passphrase, name, description)
}

// ImportAccount stores an already-encrypted keyfile document.
func (f *Facade) ImportAccount(chain string, rawKeyfile []byte) (string, error) {
	ks, err := f.keystoreFor(chain)
	if err != nil {
		return "", err
	}
	return ks.Import(rawKeyfile)
}

// ExportAccount returns the raw on-disk keyfile JSON.
func (f *Facade) ExportAccount(chain, address string) (json.RawMessage, error) {
	ks, err := f.keystoreFor(chain)
	if err != nil {
		return nil, err
	}
	return ks.Export(address)
}

// GenerateMnemonic returns a fresh 24-word BIP-39 phrase
// (spec scenario S3).
func (f *Facade) GenerateMnemonic() (string, error) {
	return mnemonic.Generate()
}

// ImportMnemonic derives a single private key from phrase + hdPath and
// stores it like NewAccount, encrypted under passphrase. There is no
// persistent HD-wallet account type (spec.md §9 "Removed HD wallet
// flow"): only the derived leaf key is kept.
func (f *Facade) ImportMnemonic(chain, phrase, mnemonicPassphrase, hdPath, name, description, passphrase string) (string, error) {
	seed, err := mnemonic.Seed(phrase, mnemonicPassphrase)
	if err != nil {
		return "", err
	}
	defer jadecrypto.Wipe(seed)

	path, err := bip32.ParsePath(hdPath)
	if err != nil {
		return "", jadeerr.Wrap(jadeerr.KindInvalidParams, "parse hd_path", err)
	}

	priv, err := bip32.DeriveFromSeed(seed, path)
	if err != nil {
		return "", jadeerr.Wrap(jadeerr.KindDerivationFailed, "derive key from mnemonic", err)
	}
	rawKey := jadecrypto.FromECDSA(priv)
	defer jadecrypto.Wipe(rawKey)
	addr := jadecrypto.PubkeyToAddress(&priv.PublicKey)

	ks, err := f.keystoreFor(chain)
	if err != nil {
		return "", err
	}

	kf, err := keyfile.Encrypt(rawKey, passphrase, addressHex(addr), keyfile.DefaultOptions())
	if err != nil {
		return "", err
	}
	kf.Name = name
	kf.Description = description

	raw, err := json.Marshal(kf)
	if err != nil {
		return "", jadeerr.Wrap(jadeerr.KindInternal, "marshal keyfile", err)
	}
	return ks.Import(raw)
}

func addressHex(addr [20]byte) string {
	const hextable = "0123456789abcdef"
	out := make([]byte, 2+40)
	out[0], out[1] = '0', 'x'
	for i, b := range addr {
		out[2+i*2] = hextable[b>>4]
		out[2+i*2+1] = hextable[b&0x0f]
	}
	return string(out)
}
