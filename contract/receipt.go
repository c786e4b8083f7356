package contract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
)

// Receipt is the chain-reported outcome of a mined transaction.
type Receipt struct {
	TxHash      string
	BlockNumber uint64
	GasUsed     uint64
	// Succeeded is false when the transaction was mined but reverted.
	Succeeded bool
}

// AwaitReceipt polls for the receipt of hash until it is mined, the lookup
// fails with anything other than "not found", or ctx is done.
func (c *Contract) AwaitReceipt(ctx context.Context, hash string) (*Receipt, error) {
	if c.receipts == nil {
		return nil, errors.New("RPC client is not initialized, please check RPC URL and try again")
	}

	txHash, err := parseHash(hash)
	if err != nil {
		return nil, err
	}

	ticker := time.NewTicker(c.cfg.PollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.receipts.TransactionReceipt(ctx, txHash)
		switch {
		case err == nil && receipt != nil:
			out := &Receipt{
				TxHash:    receipt.TxHash.Hex(),
				GasUsed:   receipt.GasUsed,
				Succeeded: receipt.Status == types.ReceiptStatusSuccessful,
			}
			if receipt.BlockNumber != nil {
				out.BlockNumber = receipt.BlockNumber.Uint64()
			}
			return out, nil
		case err != nil && !errors.Is(err, ethereum.NotFound):
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, fmt.Errorf("failed to fetch receipt: %w", err)
		}

		slog.DebugContext(ctx, "Transaction not yet mined", "hash", hash)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
