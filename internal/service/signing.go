package service

import (
	"github.com/etclabscore/jade-signer/internal/jadecrypto"
	"github.com/etclabscore/jade-signer/internal/jadeerr"
	"github.com/etclabscore/jade-signer/internal/keyfile"
	"github.com/etclabscore/jade-signer/internal/txsigner"
)

// unlockedKey loads and decrypts the account at address, handing the
// raw private key to fn and zeroing it before returning, on every exit
// path (spec.md §4.5 "The signing entry point always ... zeroes the
// private-key buffer before returning").
func (f *Facade) unlockedKey(chain, address, passphrase string, fn func(priv []byte) error) error {
	ks, err := f.keystoreFor(chain)
	if err != nil {
		return err
	}
	kf, err := ks.Lookup(address)
	if err != nil {
		return err
	}
	raw, err := keyfile.Decrypt(kf, passphrase)
	if err != nil {
		return err
	}
	defer jadecrypto.Wipe(raw)
	return fn(raw)
}

// SignTransaction decrypts address's key and signs tx per EIP-155,
// returning the RLP-encoded signed transaction hex.
func (f *Facade) SignTransaction(chain, address, passphrase string, tx txsigner.Transaction) (string, error) {
	var result string
	err := f.unlockedKey(chain, address, passphrase, func(raw []byte) error {
		priv, err := jadecrypto.ToECDSA(raw)
		if err != nil {
			return jadeerr.Wrap(jadeerr.KindDerivationFailed, "reconstruct private key", err)
		}
		signed, err := txsigner.SignEIP155(tx, priv)
		if err != nil {
			return err
		}
		result = signed.Raw
		return nil
	})
	return result, err
}

// Sign decrypts address's key and produces an EIP-191 personal-message
// signature over data.
func (f *Facade) Sign(chain, address, passphrase string, data []byte) ([65]byte, error) {
	var sig [65]byte
	err := f.unlockedKey(chain, address, passphrase, func(raw []byte) error {
		priv, err := jadecrypto.ToECDSA(raw)
		if err != nil {
			return jadeerr.Wrap(jadeerr.KindDerivationFailed, "reconstruct private key", err)
		}
		s, err := txsigner.SignPersonal(data, priv)
		if err != nil {
			return err
		}
		sig = s
		return nil
	})
	return sig, err
}

// SignTypedData decrypts address's key and produces an EIP-712
// signature over td.
func (f *Facade) SignTypedData(chain, address, passphrase string, td txsigner.TypedData) ([65]byte, error) {
	var sig [65]byte
	err := f.unlockedKey(chain, address, passphrase, func(raw []byte) error {
		priv, err := jadecrypto.ToECDSA(raw)
		if err != nil {
			return jadeerr.Wrap(jadeerr.KindDerivationFailed, "reconstruct private key", err)
		}
		s, err := txsigner.SignTypedData(td, priv)
		if err != nil {
			return err
		}
		sig = s
		return nil
	})
	return sig, err
}
