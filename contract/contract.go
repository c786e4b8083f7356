// Package contract binds the user registry smart contract.
//
// It is the chain-facing side of the bridge:
//   - Query runs read-only entrypoints and returns their decoded outputs
//   - Execute packs, signs and broadcasts a state-changing call
//   - AwaitReceipt polls for the receipt of a broadcast transaction
//
// The contract ABI is embedded at compile time.
package contract

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Entrypoints of the user registry contract.
const (
	EntrypointCreateAccount  = "create_account"
	EntrypointGetUserAccount = "get_user_account"
	EntrypointUserExists     = "user_exists"
	EntrypointGetUserCount   = "get_user_count"
)

// DefaultPollInterval is used when Config.PollInterval is not set.
const DefaultPollInterval = 2 * time.Second

//go:embed user_registry_abi.json
var smcABIJSON []byte

var (
	parsedABI    abi.ABI
	parseABIOnce sync.Once
	errParseABI  error
)

// loadABI parses the embedded artifact exactly once.
func loadABI() (abi.ABI, error) {
	parseABIOnce.Do(func() {
		type hardhatArtifact struct {
			ABI json.RawMessage `json:"abi"`
		}
		var artifact hardhatArtifact
		if err := json.Unmarshal(smcABIJSON, &artifact); err != nil {
			errParseABI = fmt.Errorf("failed to unmarshal artifact JSON: %w", err)
			return
		}
		parsedABI, errParseABI = abi.JSON(strings.NewReader(string(artifact.ABI)))
	})

	return parsedABI, errParseABI
}

// ABI returns the parsed user registry ABI.
func ABI() (abi.ABI, error) {
	return loadABI()
}

// ReceiptFetcher looks up a mined transaction receipt.
type ReceiptFetcher interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// Config holds configuration for the Contract client.
type Config struct {
	// ContractAddress is the address of the registry contract. Required.
	ContractAddress string
	// ChainID is used for transaction signing. Required for Execute.
	ChainID int64
	// GasLimit fixes the gas limit; zero estimates it.
	GasLimit uint64
	// PollInterval is the delay between receipt lookups.
	PollInterval time.Duration
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if !common.IsHexAddress(c.ContractAddress) {
		return errors.New("contract address is required")
	}
	if c.ChainID < 0 {
		return errors.New("chain ID must not be negative")
	}
	return nil
}

// Standardize sets default values for optional fields.
func (c *Config) Standardize() {
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
}

// Contract is a client for the user registry smart contract.
//
// Any of caller, transactor and receipts may be nil; the operations that
// need a missing backend fail instead of panicking.
type Contract struct {
	contract   *bind.BoundContract
	abi        abi.ABI
	addr       common.Address
	caller     bind.ContractCaller
	transactor bind.ContractTransactor
	receipts   ReceiptFetcher
	cfg        Config
}

// New creates a Contract over explicit backends.
func New(cfg Config, caller bind.ContractCaller, transactor bind.ContractTransactor, receipts ReceiptFetcher) (*Contract, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Standardize()

	contractABI, err := loadABI()
	if err != nil {
		return nil, err
	}

	addr := common.HexToAddress(cfg.ContractAddress)
	return &Contract{
		contract:   bind.NewBoundContract(addr, contractABI, caller, transactor, nil),
		abi:        contractABI,
		addr:       addr,
		caller:     caller,
		transactor: transactor,
		receipts:   receipts,
		cfg:        cfg,
	}, nil
}

// NewFromClient creates a Contract backed by a single RPC client.
func NewFromClient(cfg Config, client *ethclient.Client) (*Contract, error) {
	return New(cfg, client, client, client)
}

// Dial connects to an RPC endpoint. HTTP requests are traced with otelhttp.
func Dial(ctx context.Context, rpcURL string) (*ethclient.Client, error) {
	httpClient := &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	rc, err := rpc.DialOptions(ctx, rpcURL, rpc.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to dial RPC %s: %w", rpcURL, err)
	}
	return ethclient.NewClient(rc), nil
}

// Address returns the checksummed contract address.
func (c *Contract) Address() string {
	return c.addr.Hex()
}

// ChainID returns the configured chain id.
func (c *Contract) ChainID() *big.Int {
	return big.NewInt(c.cfg.ChainID)
}

// Query calls a read-only entrypoint and returns its unpacked outputs.
func (c *Contract) Query(ctx context.Context, entrypoint string, args ...any) ([]any, error) {
	if c.caller == nil {
		return nil, errors.New("RPC client is not initialized, please check RPC URL and try again")
	}

	var out []any
	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, entrypoint, args...); err != nil {
		return nil, fmt.Errorf("contract call %s failed: %w", entrypoint, err)
	}

	return out, nil
}
