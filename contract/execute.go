package contract

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pilacorp/go-userregistry-sdk/signer"
)

// Call is a state-changing invocation of a contract entrypoint.
type Call struct {
	ContractAddress string
	Entrypoint      string
	// Calldata holds the positional arguments, typed as the ABI expects them.
	Calldata []any
}

// Transaction is a signed transaction that was handed to the chain node.
type Transaction struct {
	// TxHex is the RLP encoded transaction in hex.
	TxHex string
	// TxHash is the transaction identifier.
	TxHash string
}

// Execute packs call, signs it with txSigner and broadcasts it.
//
// Nonce, gas price and gas limit are taken from the node unless GasLimit is
// configured. The call must target this contract.
func (c *Contract) Execute(ctx context.Context, txSigner signer.SignerProvider, call Call) (*Transaction, error) {
	if txSigner == nil {
		return nil, errors.New("tx signer is required")
	}
	if c.transactor == nil {
		return nil, errors.New("RPC client is not initialized, please check RPC URL and try again")
	}
	if !common.IsHexAddress(call.ContractAddress) || common.HexToAddress(call.ContractAddress) != c.addr {
		return nil, fmt.Errorf("call targets %q, client is bound to %s", call.ContractAddress, c.addr.Hex())
	}
	if _, ok := c.abi.Methods[call.Entrypoint]; !ok {
		return nil, fmt.Errorf("unknown entrypoint %q", call.Entrypoint)
	}

	auth := c.getTransactOpts(ctx, txSigner)

	tx, err := c.contract.Transact(auth, call.Entrypoint, call.Calldata...)
	if err != nil {
		return nil, fmt.Errorf("failed to send %s Tx: %w", call.Entrypoint, err)
	}

	return serializeTx(tx)
}

// getTransactOpts sets up signing through provider. Nonce and gas price are
// left nil so the bound contract fetches them from the node.
func (c *Contract) getTransactOpts(ctx context.Context, provider signer.SignerProvider) *bind.TransactOpts {
	fromAddress := common.HexToAddress(provider.GetAddress())
	chainSigner := types.LatestSignerForChainID(big.NewInt(c.cfg.ChainID))

	signerFn := func(addr common.Address, tx *types.Transaction) (*types.Transaction, error) {
		if addr != fromAddress {
			return nil, fmt.Errorf("signer %s cannot sign for %s", fromAddress.Hex(), addr.Hex())
		}
		h := chainSigner.Hash(tx)
		sig, err := provider.Sign(h.Bytes())
		if err != nil {
			return nil, err
		}
		return tx.WithSignature(chainSigner, sig)
	}

	return &bind.TransactOpts{
		From:     fromAddress,
		Value:    big.NewInt(0),
		GasLimit: c.cfg.GasLimit,
		Context:  ctx,
		Signer:   signerFn,
	}
}
