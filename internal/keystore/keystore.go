package keystore

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/etclabscore/jade-signer/internal/jadeerr"
)

// indexFileName is the on-disk cache file name within a chain directory.
const indexFileName = ".index.json"

// Keystore is the pair (base directory, chain tag) spec.md §4.4 defines,
// plus its in-memory index and the lock protecting both the index and
// the directory's keyfiles.
type Keystore struct {
	mu    sync.RWMutex
	dir   string // <base>/<chain>
	chain string

	records map[string]*AccountRecord // keyed by lowercase hex address, no 0x
	order   []string                  // addresses in ascending insertion-timestamp order
}

// Open returns the keystore rooted at <basePath>/<chain>, creating the
// directory if absent and loading (or rebuilding) its index.
func Open(basePath, chain string) (*Keystore, error) {
	dir := filepath.Join(basePath, chain)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, jadeerr.Wrap(jadeerr.KindIO, "create keystore directory", err)
	}

	ks := &Keystore{dir: dir, chain: chain, records: make(map[string]*AccountRecord)}
	if err := ks.loadIndex(); err != nil {
		if err := ks.rebuildIndexLocked(); err != nil {
			return nil, err
		}
		if err := ks.saveIndexLocked(); err != nil {
			return nil, err
		}
	}
	return ks, nil
}

// Chain returns the chain tag this keystore was opened with.
func (ks *Keystore) Chain() string { return ks.chain }
