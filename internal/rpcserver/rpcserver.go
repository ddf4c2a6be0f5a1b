// Package rpcserver is the JSON-RPC 2.0 adapter spec.md §6 names: a thin
// translation layer between the wire shapes an RPC client sends and the
// internal/service facade's pure functions. It owns no state of its own
// beyond the facade and a logger, and never touches secret material
// beyond passing a passphrase straight through to the facade.
//
// Method dispatch is delegated to go-ethereum's own rpc.Server
// (github.com/ethereum/go-ethereum/rpc) — the teacher's domain
// dependency, repurposed here for its namespace/method reflection
// instead of chain RPC. RegisterName("signer", srv) exposes every
// exported method on Server as "signer_<lowerCamelMethodName>", which is
// exactly the signer_listAccounts / signer_newAccount / ... naming
// spec.md §6's table uses.
package rpcserver

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/sirupsen/logrus"

	"github.com/etclabscore/jade-signer/internal/config"
	"github.com/etclabscore/jade-signer/internal/jadeerr"
	"github.com/etclabscore/jade-signer/internal/logging"
	"github.com/etclabscore/jade-signer/internal/service"
	"github.com/etclabscore/jade-signer/internal/txsigner"
)

// Additional is the "additional" parameter object spec.md §6 describes
// for every method: a chain tag, an optional conflicting chain_id, and
// (for listAccounts) a show_hidden flag.
type Additional struct {
	Chain      string `json:"chain"`
	ChainID    *int64 `json:"chain_id"`
	ShowHidden *bool  `json:"show_hidden"`
}

func (a Additional) chain() string {
	if a.Chain == "" {
		return config.ChainETC
	}
	return a.Chain
}

// resolveChain validates the chain tag and, per spec.md §9's Open
// Question, rejects a chain_id that contradicts the chain tag's default
// rather than silently preferring one or the other.
func resolveChain(a Additional) (string, error) {
	chain := a.chain()
	if _, err := config.ResolveChainID(chain, a.ChainID); err != nil {
		return "", err
	}
	return chain, nil
}

// NewAccountParams is signer_newAccount's first positional parameter.
type NewAccountParams struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Passphrase  string `json:"passphrase"`
}

// ImportMnemonicParams is signer_importMnemonic's first positional
// parameter. A single Passphrase field serves double duty as both the
// BIP-39 mnemonic passphrase (spec.md §3's Seed derivation) and the
// keystore encryption passphrase for the derived key, since spec.md §6's
// table names only one passphrase field for this method (see DESIGN.md).
type ImportMnemonicParams struct {
	Mnemonic    string `json:"mnemonic"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Passphrase  string `json:"passphrase"`
	HDPath      string `json:"hd_path"`
}

// TransactionParams is signer_signTransaction's transaction argument,
// using the hex-string wire encodings (hexutil.Big/Uint64/Bytes) the
// go-ethereum ecosystem's JSON-RPC surface conventionally uses.
type TransactionParams struct {
	Nonce    hexutil.Uint64  `json:"nonce"`
	GasPrice *hexutil.Big    `json:"gasPrice"`
	Gas      hexutil.Uint64  `json:"gas"`
	To       *common.Address `json:"to"`
	Value    *hexutil.Big    `json:"value"`
	Data     hexutil.Bytes   `json:"data"`
	ChainID  *hexutil.Big    `json:"chainId"`
}

func (p TransactionParams) toDomain() txsigner.Transaction {
	tx := txsigner.Transaction{
		Nonce: uint64(p.Nonce),
		Gas:   uint64(p.Gas),
		To:    p.To,
		Data:  []byte(p.Data),
	}
	if p.GasPrice != nil {
		tx.GasPrice = p.GasPrice.ToInt()
	}
	if p.Value != nil {
		tx.Value = p.Value.ToInt()
	}
	if p.ChainID != nil {
		tx.ChainID = p.ChainID.ToInt()
	}
	return tx
}

// Server implements the eleven JSON-RPC methods spec.md §6 lists, each a
// direct, unbuffered call into the service facade.
type Server struct {
	facade *service.Facade
	log    *logging.Logger
}

// New returns a Server dispatching onto facade, logging via log.
func New(facade *service.Facade, log *logging.Logger) *Server {
	return &Server{facade: facade, log: log}
}

func (s *Server) entry(method string) *logrus.Entry {
	return s.log.WithField("rpc_method", method)
}

// ListAccounts implements signer_listAccounts.
func (s *Server) ListAccounts(additional Additional) ([]service.AccountView, error) {
	log := s.entry("signer_listAccounts")
	chain, err := resolveChain(additional)
	if err != nil {
		log.WithError(err).Warn("rejected")
		return nil, asRPCError(err)
	}
	showHidden := additional.ShowHidden != nil && *additional.ShowHidden
	accounts, err := s.facade.ListAccounts(chain, showHidden)
	if err != nil {
		log.WithError(err).WithField("chain", chain).Error("failed")
		return nil, asRPCError(err)
	}
	log.WithField("chain", chain).WithField("count", len(accounts)).Debug("ok")
	return accounts, nil
}

// HideAccount implements signer_hideAccount.
func (s *Server) HideAccount(address string, additional Additional) (bool, error) {
	return s.setHidden("signer_hideAccount", address, true, additional)
}

// UnhideAccount implements signer_unhideAccount.
func (s *Server) UnhideAccount(address string, additional Additional) (bool, error) {
	return s.setHidden("signer_unhideAccount", address, false, additional)
}

func (s *Server) setHidden(method, address string, hidden bool, additional Additional) (bool, error) {
	log := s.entry(method).WithField("address", address)
	chain, err := resolveChain(additional)
	if err != nil {
		log.WithError(err).Warn("rejected")
		return false, asRPCError(err)
	}
	var found bool
	if hidden {
		found, err = s.facade.HideAccount(chain, address)
	} else {
		found, err = s.facade.UnhideAccount(chain, address)
	}
	if err != nil {
		log.WithError(err).Error("failed")
		return false, asRPCError(err)
	}
	log.WithField("found", found).Debug("ok")
	return found, nil
}

// NewAccount implements signer_newAccount.
func (s *Server) NewAccount(params NewAccountParams, additional Additional) (string, error) {
	log := s.entry("signer_newAccount")
	chain, err := resolveChain(additional)
	if err != nil {
		log.WithError(err).Warn("rejected")
		return "", asRPCError(err)
	}
	addr, err := s.facade.NewAccount(chain, params.Name, params.Description, params.Passphrase)
	if err != nil {
		log.WithError(err).Error("failed")
		return "", asRPCError(err)
	}
	log.WithField("address", addr).Info("account created")
	return addr, nil
}

// ImportAccount implements signer_importAccount.
func (s *Server) ImportAccount(keyfile json.RawMessage, additional Additional) (string, error) {
	log := s.entry("signer_importAccount")
	chain, err := resolveChain(additional)
	if err != nil {
		log.WithError(err).Warn("rejected")
		return "", asRPCError(err)
	}
	addr, err := s.facade.ImportAccount(chain, keyfile)
	if err != nil {
		log.WithError(err).Error("failed")
		return "", asRPCError(err)
	}
	log.WithField("address", addr).Info("account imported")
	return addr, nil
}

// ExportAccount implements signer_exportAccount.
func (s *Server) ExportAccount(address string, additional Additional) (json.RawMessage, error) {
	log := s.entry("signer_exportAccount").WithField("address", address)
	chain, err := resolveChain(additional)
	if err != nil {
		log.WithError(err).Warn("rejected")
		return nil, asRPCError(err)
	}
	kf, err := s.facade.ExportAccount(chain, address)
	if err != nil {
		log.WithError(err).Error("failed")
		return nil, asRPCError(err)
	}
	log.Debug("ok")
	return kf, nil
}

// GenerateMnemonic implements signer_generateMnemonic.
func (s *Server) GenerateMnemonic() (string, error) {
	log := s.entry("signer_generateMnemonic")
	phrase, err := s.facade.GenerateMnemonic()
	if err != nil {
		log.WithError(err).Error("failed")
		return "", asRPCError(err)
	}
	log.Debug("ok")
	return phrase, nil
}

// ImportMnemonic implements signer_importMnemonic.
func (s *Server) ImportMnemonic(params ImportMnemonicParams, additional Additional) (string, error) {
	log := s.entry("signer_importMnemonic")
	chain, err := resolveChain(additional)
	if err != nil {
		log.WithError(err).Warn("rejected")
		return "", asRPCError(err)
	}
	addr, err := s.facade.ImportMnemonic(chain, params.Mnemonic, params.Passphrase, params.HDPath,
		params.Name, params.Description, params.Passphrase)
	if err != nil {
		log.WithError(err).Error("failed")
		return "", asRPCError(err)
	}
	log.WithField("address", addr).Info("account imported from mnemonic")
	return addr, nil
}

// SignTransaction implements signer_signTransaction.
func (s *Server) SignTransaction(ctx context.Context, transaction TransactionParams, address, passphrase string, additional Additional) (string, error) {
	_ = ctx
	log := s.entry("signer_signTransaction").WithField("address", address)
	chain, err := resolveChain(additional)
	if err != nil {
		log.WithError(err).Warn("rejected")
		return "", asRPCError(err)
	}
	raw, err := s.facade.SignTransaction(chain, address, passphrase, transaction.toDomain())
	if err != nil {
		log.WithError(err).Error("failed")
		return "", asRPCError(err)
	}
	log.Debug("ok")
	return raw, nil
}

// Sign implements signer_sign (EIP-191 personal-message signing).
func (s *Server) Sign(data hexutil.Bytes, address, passphrase string, additional Additional) (hexutil.Bytes, error) {
	log := s.entry("signer_sign").WithField("address", address)
	chain, err := resolveChain(additional)
	if err != nil {
		log.WithError(err).Warn("rejected")
		return nil, asRPCError(err)
	}
	sig, err := s.facade.Sign(chain, address, passphrase, []byte(data))
	if err != nil {
		log.WithError(err).Error("failed")
		return nil, asRPCError(err)
	}
	log.Debug("ok")
	return hexutil.Bytes(sig[:]), nil
}

// SignTypedData implements signer_signTypedData (EIP-712).
func (s *Server) SignTypedData(address string, typedData txsigner.TypedData, passphrase string, additional Additional) (hexutil.Bytes, error) {
	log := s.entry("signer_signTypedData").WithField("address", address)
	chain, err := resolveChain(additional)
	if err != nil {
		log.WithError(err).Warn("rejected")
		return nil, asRPCError(err)
	}
	sig, err := s.facade.SignTypedData(chain, address, passphrase, typedData)
	if err != nil {
		log.WithError(err).Error("failed")
		return nil, asRPCError(err)
	}
	log.Debug("ok")
	return hexutil.Bytes(sig[:]), nil
}

// NewHTTPHandler builds the JSON-RPC-over-HTTP handler go-ethereum's
// rpc.Server already knows how to serve: register Server under the
// "signer" namespace and hand the resulting *rpc.Server back as a plain
// http.Handler.
func NewHTTPHandler(s *Server) (http.Handler, error) {
	srv := rpc.NewServer()
	if err := srv.RegisterName("signer", s); err != nil {
		return nil, jadeerr.Wrap(jadeerr.KindInternal, "register signer rpc service", err)
	}
	return srv, nil
}
