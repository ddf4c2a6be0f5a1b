package keystore

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/etclabscore/jade-signer/internal/jadecrypto"
	"github.com/etclabscore/jade-signer/internal/jadeerr"
	"github.com/etclabscore/jade-signer/internal/keyfile"
)

// normalizeAddress validates and lowercases a 20-byte hex address,
// accepting an optional "0x" prefix (spec.md §7 InvalidParams).
func normalizeAddress(addr string) (string, error) {
	a := strings.ToLower(strings.TrimPrefix(addr, "0x"))
	raw, err := hex.DecodeString(a)
	if err != nil || len(raw) != 20 {
		return "", jadeerr.New(jadeerr.KindInvalidParams, "address must be 20 bytes of hex")
	}
	return a, nil
}

func addressHex(addr [20]byte) string {
	return hex.EncodeToString(addr[:])
}

// Create generates a new private key, encrypts it under passphrase, and
// commits the resulting keyfile (spec.md §4.4 create).
func (ks *Keystore) Create(passphrase, name, description string) (string, error) {
	priv, err := jadecrypto.GenerateKey()
	if err != nil {
		return "", jadeerr.Wrap(jadeerr.KindInternal, "generate private key", err)
	}
	raw := jadecrypto.FromECDSA(priv)
	defer jadecrypto.Wipe(raw)
	addr := addressHex(jadecrypto.PubkeyToAddress(&priv.PublicKey))

	kf, err := keyfile.Encrypt(raw, passphrase, addr, keyfile.DefaultOptions())
	if err != nil {
		return "", err
	}
	kf.Name = name
	kf.Description = description

	return ks.commit(addr, kf)
}

// Import validates and stores an already-encrypted keyfile document. The
// RPC surface does not pass a passphrase alongside importAccount, so an
// address must already be declared in the document; Jade Signer cannot
// decrypt-and-derive an address it was never given the passphrase for.
func (ks *Keystore) Import(raw []byte) (string, error) {
	var kf keyfile.KeyfileJSON
	if err := json.Unmarshal(raw, &kf); err != nil {
		return "", jadeerr.Wrap(jadeerr.KindKeyfileMalformed, "parse keyfile", err)
	}
	if kf.Version != keyfile.Version {
		return "", jadeerr.New(jadeerr.KindKeyfileMalformed, "unsupported keyfile version")
	}
	if kf.Address == "" {
		return "", jadeerr.New(jadeerr.KindInvalidParams, "keyfile must declare an address to import")
	}
	addr, err := normalizeAddress(kf.Address)
	if err != nil {
		return "", err
	}
	kf.Address = addr
	if kf.ID == "" {
		kf.ID = uuid.NewString()
	}

	return ks.commit(addr, &kf)
}

// commit writes kf to disk under a fresh timestamped filename and
// updates the index, holding the writer lock for the whole operation.
func (ks *Keystore) commit(addr string, kf *keyfile.KeyfileJSON) (string, error) {
	ks.mu.Lock()
	defer ks.mu.Unlock()

	if _, exists := ks.records[addr]; exists {
		return "", jadeerr.New(jadeerr.KindDuplicateAccount, "address already exists: "+addr)
	}

	name := keyfileName(time.Now(), kf.ID)
	path := ks.dir + string(os.PathSeparator) + name

	raw, err := json.Marshal(kf)
	if err != nil {
		return "", jadeerr.Wrap(jadeerr.KindInternal, "marshal keyfile", err)
	}
	if err := writeFileAtomic(path, raw); err != nil {
		return "", err
	}

	record := &AccountRecord{
		Address:     addr,
		Path:        path,
		Name:        kf.Name,
		Description: kf.Description,
		Hidden:      !kf.IsVisible(),
		CreatedAt:   time.Now().UTC(),
	}
	ks.records[addr] = record
	ks.order = append(ks.order, addr)

	if err := ks.saveIndexLocked(); err != nil {
		// Disk keyfile is authoritative; drop the stale in-memory entry
		// rather than report success with an uncommitted index.
		delete(ks.records, addr)
		ks.order = ks.order[:len(ks.order)-1]
		return "", err
	}
	return "0x" + addr, nil
}

// Export returns the raw on-disk keyfile JSON for address.
func (ks *Keystore) Export(addr string) (json.RawMessage, error) {
	a, err := normalizeAddress(addr)
	if err != nil {
		return nil, err
	}

	ks.mu.RLock()
	rec, ok := ks.records[a]
	ks.mu.RUnlock()
	if !ok {
		return nil, jadeerr.New(jadeerr.KindAccountNotFound, "no account with address 0x"+a)
	}

	raw, err := os.ReadFile(rec.Path)
	if err != nil {
		return nil, jadeerr.Wrap(jadeerr.KindIO, "read keyfile", err)
	}
	return raw, nil
}

// Lookup returns the parsed keyfile document for address.
func (ks *Keystore) Lookup(addr string) (*keyfile.KeyfileJSON, error) {
	raw, err := ks.Export(addr)
	if err != nil {
		return nil, err
	}
	var kf keyfile.KeyfileJSON
	if err := json.Unmarshal(raw, &kf); err != nil {
		return nil, jadeerr.Wrap(jadeerr.KindKeyfileMalformed, "parse keyfile", err)
	}
	return &kf, nil
}

// List returns account records ordered by ascending creation timestamp,
// filtered by visibility unless showHidden is set (spec.md §4.4 list).
func (ks *Keystore) List(showHidden bool) []AccountRecord {
	ks.mu.RLock()
	defer ks.mu.RUnlock()

	out := make([]AccountRecord, 0, len(ks.order))
	for _, addr := range ks.order {
		rec := ks.records[addr]
		if rec.Hidden && !showHidden {
			continue
		}
		out = append(out, *rec)
	}
	return out
}

// SetHidden toggles an account's visibility in both the index and the
// keyfile's metadata sidecar, reporting whether the account existed.
func (ks *Keystore) SetHidden(addr string, hidden bool) (bool, error) {
	a, err := normalizeAddress(addr)
	if err != nil {
		return false, err
	}

	ks.mu.Lock()
	defer ks.mu.Unlock()

	rec, ok := ks.records[a]
	if !ok {
		return false, nil
	}
	if rec.Hidden == hidden {
		return true, nil
	}

	raw, err := os.ReadFile(rec.Path)
	if err != nil {
		return false, jadeerr.Wrap(jadeerr.KindIO, "read keyfile", err)
	}
	var kf keyfile.KeyfileJSON
	if err := json.Unmarshal(raw, &kf); err != nil {
		return false, jadeerr.Wrap(jadeerr.KindKeyfileMalformed, "parse keyfile", err)
	}
	kf.SetVisible(!hidden)

	updated, err := json.Marshal(&kf)
	if err != nil {
		return false, jadeerr.Wrap(jadeerr.KindInternal, "marshal keyfile", err)
	}
	if err := writeFileAtomic(rec.Path, updated); err != nil {
		return false, err
	}

	rec.Hidden = hidden
	if err := ks.saveIndexLocked(); err != nil {
		return false, err
	}
	return true, nil
}

// Update rewrites an account's name and description metadata.
func (ks *Keystore) Update(addr, name, description string) error {
	a, err := normalizeAddress(addr)
	if err != nil {
		return err
	}

	ks.mu.Lock()
	defer ks.mu.Unlock()

	rec, ok := ks.records[a]
	if !ok {
		return jadeerr.New(jadeerr.KindAccountNotFound, "no account with address 0x"+a)
	}

	raw, err := os.ReadFile(rec.Path)
	if err != nil {
		return jadeerr.Wrap(jadeerr.KindIO, "read keyfile", err)
	}
	var kf keyfile.KeyfileJSON
	if err := json.Unmarshal(raw, &kf); err != nil {
		return jadeerr.Wrap(jadeerr.KindKeyfileMalformed, "parse keyfile", err)
	}
	kf.Name = name
	kf.Description = description

	updated, err := json.Marshal(&kf)
	if err != nil {
		return jadeerr.Wrap(jadeerr.KindInternal, "marshal keyfile", err)
	}
	if err := writeFileAtomic(rec.Path, updated); err != nil {
		return err
	}

	rec.Name, rec.Description = name, description
	return ks.saveIndexLocked()
}
