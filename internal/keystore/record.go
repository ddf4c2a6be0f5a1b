// Package keystore implements the directory-plus-index keystore: a set
// of Web3 Secret Storage v3 keyfiles under a chain-tagged directory,
// fronted by an address-keyed index that is a rebuildable cache over the
// directory contents (spec.md §4.4).
//
// Locking follows the teacher pack's in-memory store convention (a
// single sync.RWMutex guarding a map), widened here to also guard the
// on-disk keyfile set so every mutating operation commits to disk before
// releasing the writer lock.
package keystore

import "time"

// AccountRecord is the index's cached projection of one keyfile
// (spec.md §3's AccountRecord entity).
type AccountRecord struct {
	Address     string    `json:"address"`
	Path        string    `json:"path"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Hidden      bool      `json:"is_hidden"`
	CreatedAt   time.Time `json:"created_at"`
}
