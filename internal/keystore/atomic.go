package keystore

import (
	"os"
	"path/filepath"

	"github.com/etclabscore/jade-signer/internal/jadeerr"
)

// writeFileAtomic writes data to path durably: write a temp file in the
// same directory, fsync it, rename over the destination, then fsync the
// directory entry (spec.md §4.4: "write keyfile with fsync and atomic
// rename from a temporary path").
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return jadeerr.Wrap(jadeerr.KindIO, "create temp file", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return jadeerr.Wrap(jadeerr.KindIO, "write temp file", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return jadeerr.Wrap(jadeerr.KindIO, "fsync temp file", err)
	}
	if err := tmp.Close(); err != nil {
		return jadeerr.Wrap(jadeerr.KindIO, "close temp file", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return jadeerr.Wrap(jadeerr.KindIO, "chmod temp file", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return jadeerr.Wrap(jadeerr.KindIO, "rename temp file into place", err)
	}

	if d, err := os.Open(dir); err == nil {
		d.Sync()
		d.Close()
	}
	return nil
}
