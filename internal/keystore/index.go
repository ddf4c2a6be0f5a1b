package keystore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/etclabscore/jade-signer/internal/jadeerr"
	"github.com/etclabscore/jade-signer/internal/keyfile"
)

// filenameTimestampLayout matches the UTC--YYYY-MM-DDTHH-MM-SSZ--<uuid>.json
// naming scheme spec.md §6 prescribes for keyfiles.
const filenameTimestampLayout = "2006-01-02T15-04-05Z"

func keyfileName(t time.Time, id string) string {
	return "UTC--" + t.UTC().Format(filenameTimestampLayout) + "--" + id + ".json"
}

// loadIndex reads the cached index file. A missing or corrupt index
// returns an error so the caller rebuilds from the directory
// (spec.md §9: "on any checksum or parse error at open, rebuild").
func (ks *Keystore) loadIndex() error {
	raw, err := os.ReadFile(filepath.Join(ks.dir, indexFileName))
	if err != nil {
		return err
	}
	var records []*AccountRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return err
	}

	ks.mu.Lock()
	defer ks.mu.Unlock()
	ks.records = make(map[string]*AccountRecord, len(records))
	ks.order = ks.order[:0]
	sort.Slice(records, func(i, j int) bool { return records[i].CreatedAt.Before(records[j].CreatedAt) })
	for _, r := range records {
		ks.records[r.Address] = r
		ks.order = append(ks.order, r.Address)
	}
	return nil
}

// rebuildIndexLocked scans the chain directory and reconstructs the
// index from the keyfiles found there. Caller must hold ks.mu.
func (ks *Keystore) rebuildIndexLocked() error {
	entries, err := os.ReadDir(ks.dir)
	if err != nil {
		return jadeerr.Wrap(jadeerr.KindIO, "scan keystore directory", err)
	}

	records := make(map[string]*AccountRecord)
	var order []string

	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == indexFileName || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(ks.dir, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var kf keyfile.KeyfileJSON
		if err := json.Unmarshal(raw, &kf); err != nil {
			continue
		}
		if kf.Address == "" {
			continue
		}
		addr := strings.ToLower(kf.Address)
		ts := timestampFromName(entry.Name())
		records[addr] = &AccountRecord{
			Address:     addr,
			Path:        path,
			Name:        kf.Name,
			Description: kf.Description,
			Hidden:      !kf.IsVisible(),
			CreatedAt:   ts,
		}
		order = append(order, addr)
	}

	sort.Slice(order, func(i, j int) bool {
		return records[order[i]].CreatedAt.Before(records[order[j]].CreatedAt)
	})

	ks.records = records
	ks.order = order
	return nil
}

func timestampFromName(name string) time.Time {
	parts := strings.SplitN(name, "--", 3)
	if len(parts) < 2 || parts[0] != "UTC" {
		return time.Time{}
	}
	t, err := time.Parse(filenameTimestampLayout, parts[1])
	if err != nil {
		return time.Time{}
	}
	return t
}

// saveIndexLocked persists the index atomically. Caller must hold ks.mu
// for writing.
func (ks *Keystore) saveIndexLocked() error {
	records := make([]*AccountRecord, 0, len(ks.order))
	for _, addr := range ks.order {
		records = append(records, ks.records[addr])
	}
	raw, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return jadeerr.Wrap(jadeerr.KindInternal, "marshal index", err)
	}
	return writeFileAtomic(filepath.Join(ks.dir, indexFileName), raw)
}
