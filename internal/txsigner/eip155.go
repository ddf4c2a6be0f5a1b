package txsigner

import (
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/etclabscore/jade-signer/internal/jadeerr"
)

// SignedTx is the result of SignEIP155: the RLP-encoded wire form plus
// the three signature components the caller (RPC result/tests) needs
// without re-decoding RLP.
type SignedTx struct {
	Raw string // 0x-prefixed RLP of the signed transaction
	V   *big.Int
	R   *big.Int
	S   *big.Int
}

// SignEIP155 builds the unsigned legacy transaction, signs it with the
// EIP-155 scheme (v = recovery_id + 35 + 2*chainId), and returns the
// RLP-encoded signed transaction plus (v, r, s) (spec.md §4.5, §8
// property 4). ChainID must be non-nil and non-negative.
func SignEIP155(tx Transaction, priv *ecdsa.PrivateKey) (*SignedTx, error) {
	if tx.ChainID == nil || tx.ChainID.Sign() < 0 {
		return nil, jadeerr.New(jadeerr.KindInvalidParams, "chainId must be non-negative")
	}

	ethTx := types.NewTx(&types.LegacyTx{
		Nonce:    tx.Nonce,
		GasPrice: tx.GasPrice,
		Gas:      tx.Gas,
		To:       tx.To,
		Value:    tx.Value,
		Data:     tx.Data,
	})

	signer := types.NewEIP155Signer(tx.ChainID)
	signed, err := types.SignTx(ethTx, signer, priv)
	if err != nil {
		return nil, jadeerr.Wrap(jadeerr.KindSigningFailed, "sign eip-155 transaction", err)
	}

	raw, err := rlp.EncodeToBytes(signed)
	if err != nil {
		return nil, jadeerr.Wrap(jadeerr.KindSigningFailed, "encode signed transaction", err)
	}

	v, r, s := signed.RawSignatureValues()
	return &SignedTx{Raw: hexutil.Encode(raw), V: v, R: r, S: s}, nil
}
