// Package bip32 implements HD path parsing and BIP-32 master/child key
// derivation over the seed produced by package mnemonic, generalizing the
// teacher's fixed m/44'/60'/0'/0/x wallet path into the spec's parsed
// HDPath (spec.md §3, §4.2).
package bip32

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcutil/hdkeychain"

	"github.com/etclabscore/jade-signer/internal/jadeerr"
)

// HardenedOffset is added to an index to mark it hardened, per BIP-32.
const HardenedOffset = hdkeychain.HardenedKeyStart

// Path is an ordered sequence of derivation indices. An index >=
// HardenedOffset is hardened; spec.md §3 requires the hardened bit be
// set explicitly rather than inferred from context.
type Path []uint32

// String renders the path in the canonical m/44'/60'/0'/0/0 form.
func (p Path) String() string {
	var b strings.Builder
	b.WriteByte('m')
	for _, idx := range p {
		b.WriteByte('/')
		if idx >= HardenedOffset {
			fmt.Fprintf(&b, "%d'", idx-HardenedOffset)
		} else {
			fmt.Fprintf(&b, "%d", idx)
		}
	}
	return b.String()
}

// ParsePath parses a string like "m/44'/60'/0'/0/0" (accepting both "'"
// and "h"/"H" as the hardened marker per spec.md §4.2/§9). An empty path,
// or the bare "m", denotes the master key at depth 0. Derivation failure
// at any level is reported, never silently skipped (spec.md §4.2).
func ParsePath(path string) (Path, error) {
	path = strings.TrimSpace(path)
	if path == "" || path == "m" {
		return Path{}, nil
	}

	segments := strings.Split(path, "/")
	if segments[0] == "m" {
		segments = segments[1:]
	} else if segments[0] == "" {
		return nil, jadeerr.New(jadeerr.KindInvalidParams, "derivation path has an empty leading segment")
	}

	out := make(Path, 0, len(segments))
	for _, seg := range segments {
		idx, err := parseSegment(seg)
		if err != nil {
			return nil, err
		}
		out = append(out, idx)
	}
	return out, nil
}

func parseSegment(seg string) (uint32, error) {
	if seg == "" {
		return 0, jadeerr.New(jadeerr.KindInvalidParams, "derivation path has an empty segment")
	}

	hardened := false
	switch last := seg[len(seg)-1]; last {
	case '\'', 'h', 'H':
		hardened = true
		seg = seg[:len(seg)-1]
	}
	if seg == "" {
		return 0, jadeerr.New(jadeerr.KindInvalidParams, "derivation path segment missing index before hardened marker")
	}

	n, err := strconv.ParseUint(seg, 10, 32)
	if err != nil {
		return 0, jadeerr.Wrap(jadeerr.KindInvalidParams, fmt.Sprintf("invalid derivation path segment %q", seg), err)
	}
	if n >= HardenedOffset {
		return 0, jadeerr.New(jadeerr.KindInvalidParams,
			fmt.Sprintf("derivation path index %d out of range (must be < 2^31)", n))
	}

	idx := uint32(n)
	if hardened {
		idx += HardenedOffset
	}
	return idx, nil
}
