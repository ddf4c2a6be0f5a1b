// Package config holds Jade Signer's static, environment/flag-derived
// configuration: the base keystore path, listen address, log level, and
// the chain-tag → default chain-id table spec.md §6 names.
//
// internal/cli reads the base path, listen address and log level from its
// own cobra/viper-bound flags and uses DefaultListen from here; it does
// not construct a Config value.
package config

import "github.com/etclabscore/jade-signer/internal/jadeerr"

// Chain tags the "additional" chain parameter accepts (spec.md §6).
const (
	ChainETC    = "etc"
	ChainMorden = "morden"
)

// defaultChainIDs maps each chain tag to its default chain_id.
var defaultChainIDs = map[string]int64{
	ChainETC:    61,
	ChainMorden: 62,
}

// DefaultChainID returns the default chain_id for a chain tag, or an
// error if the tag is unrecognized.
func DefaultChainID(chain string) (int64, error) {
	id, ok := defaultChainIDs[chain]
	if !ok {
		return 0, jadeerr.New(jadeerr.KindInvalidParams, "unknown chain: "+chain)
	}
	return id, nil
}

// ResolveChainID implements spec.md §9's open question: a chain and an
// explicit chain_id must agree. chainID == nil means "not provided",
// in which case the chain's default is used.
func ResolveChainID(chain string, chainID *int64) (int64, error) {
	def, err := DefaultChainID(chain)
	if err != nil {
		return 0, err
	}
	if chainID == nil {
		return def, nil
	}
	if *chainID != def {
		return 0, jadeerr.New(jadeerr.KindInvalidParams, "chain_id conflicts with chain")
	}
	return def, nil
}

// Config is the resolved, validated configuration for one run of the
// service.
type Config struct {
	BasePath string
	Listen   string
	LogLevel string
}

// DefaultListen is the HTTP RPC listen address spec.md §6 names.
const DefaultListen = "127.0.0.1:1920"
