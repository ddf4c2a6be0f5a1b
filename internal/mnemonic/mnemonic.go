// Package mnemonic implements BIP-39 mnemonic generation, validation, and
// seed derivation. Generation always uses the 256-bit-entropy / 24-word
// profile; validation and seed derivation accept any standard phrase
// length (12, 15, 18, 21 or 24 words).
//
// The wordlist, entropy<->mnemonic bijection, and PBKDF2 seed stretching
// are delegated to github.com/tyler-smith/go-bip39 — the teacher's own
// dependency for this concern (see hdwallet.go in the project history).
package mnemonic

import (
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"

	"github.com/etclabscore/jade-signer/internal/jadecrypto"
	"github.com/etclabscore/jade-signer/internal/jadeerr"
)

// EntropyBits is the only entropy size Jade Signer accounts use: 256
// bits of entropy plus an 8-bit checksum yields the 24-word phrase
// spec.md §3 names for the Mnemonic entity.
const EntropyBits = 256

// WordCount is the resulting phrase length for EntropyBits of entropy —
// the length Generate always produces.
const WordCount = 24

// SeedLength is the byte length of a BIP-39 seed (spec.md §3).
const SeedLength = 64

// validWordCounts are the BIP-39-standard phrase lengths accepted on
// import (signer_importMnemonic, spec.md §6): a phrase generated by a
// different 128/160/192/224-bit-entropy wallet is still a valid mnemonic
// even though Jade Signer itself only ever generates 24-word phrases.
var validWordCounts = map[int]bool{12: true, 15: true, 18: true, 21: true, 24: true}

// Generate draws 256 bits of entropy from a CSPRNG and returns the
// corresponding 24-word BIP-39 English mnemonic.
func Generate() (string, error) {
	entropy, err := bip39.NewEntropy(EntropyBits)
	if err != nil {
		return "", jadeerr.Wrap(jadeerr.KindInternal, "generate mnemonic entropy", err)
	}
	defer jadecrypto.Wipe(entropy)

	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", jadeerr.Wrap(jadeerr.KindInternal, "encode mnemonic", err)
	}
	return phrase, nil
}

// Validate checks that phrase is a syntactically and checksum-valid
// BIP-39 English mnemonic of a standard length.
func Validate(phrase string) error {
	words := strings.Fields(phrase)
	if !validWordCounts[len(words)] {
		return jadeerr.New(jadeerr.KindMnemonicInvalid,
			fmt.Sprintf("mnemonic must have 12, 15, 18, 21, or 24 words, got %d", len(words)))
	}
	if !bip39.IsMnemonicValid(phrase) {
		return jadeerr.New(jadeerr.KindMnemonicInvalid, "mnemonic checksum invalid")
	}
	return nil
}

// ValidateGenerated checks that phrase matches the exact profile Generate
// produces: 24 words from 256 bits of entropy.
func ValidateGenerated(phrase string) error {
	if len(strings.Fields(phrase)) != WordCount {
		return jadeerr.New(jadeerr.KindMnemonicInvalid,
			fmt.Sprintf("mnemonic must have %d words, got %d", WordCount, len(strings.Fields(phrase))))
	}
	return Validate(phrase)
}

// PhraseToEntropy recovers the original entropy bytes behind a mnemonic,
// verifying its checksum in the process (spec.md §8 property 3).
func PhraseToEntropy(phrase string) ([]byte, error) {
	if err := Validate(phrase); err != nil {
		return nil, err
	}
	entropy, err := bip39.MnemonicToByteArray(phrase, true)
	if err != nil {
		return nil, jadeerr.Wrap(jadeerr.KindMnemonicInvalid, "decode mnemonic", err)
	}
	return entropy, nil
}

// EntropyToPhrase is the inverse of PhraseToEntropy.
func EntropyToPhrase(entropy []byte) (string, error) {
	if len(entropy) != EntropyBits/8 {
		return "", jadeerr.New(jadeerr.KindInvalidParams,
			fmt.Sprintf("entropy must be %d bytes, got %d", EntropyBits/8, len(entropy)))
	}
	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", jadeerr.Wrap(jadeerr.KindInternal, "encode mnemonic", err)
	}
	return phrase, nil
}

// Seed derives the 64-byte BIP-39 seed:
// PBKDF2-HMAC-SHA512(phrase, "mnemonic"+passphrase, 2048, 64).
func Seed(phrase, passphrase string) ([]byte, error) {
	if err := Validate(phrase); err != nil {
		return nil, err
	}
	seed, err := bip39.NewSeedWithErrorChecking(phrase, passphrase)
	if err != nil {
		return nil, jadeerr.Wrap(jadeerr.KindMnemonicInvalid, "derive seed", err)
	}
	return seed, nil
}
