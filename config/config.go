// Package config holds the fixed values the registry bridge treats as
// configuration: network endpoint, target contract, wallet allow-list and
// confirmation timing.
//
// Values can be set directly, through functional options, from REGISTRY_*
// environment variables or from a JSON file. Zero values fall back to the
// defaults below.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Default values
const (
	DefaultNetwork             = NetworkSepolia
	DefaultPollInterval        = 2 * time.Second
	DefaultConfirmationTimeout = 5 * time.Minute
)

// DefaultAllowedWallets are the wallet identities offered when none are configured.
var DefaultAllowedWallets = []string{"argentX", "braavos"}

// Network names.
const (
	NetworkSepolia = "sepolia"
	NetworkMainnet = "mainnet"
)

// Network is a named chain preset.
type Network struct {
	Name        string
	RPCURL      string
	ChainID     int64
	ExplorerURL string
}

// Networks lists the built-in presets.
var Networks = map[string]Network{
	NetworkSepolia: {
		Name:        "Sepolia",
		RPCURL:      "https://ethereum-sepolia-rpc.publicnode.com",
		ChainID:     11155111,
		ExplorerURL: "https://sepolia.etherscan.io",
	},
	NetworkMainnet: {
		Name:        "Mainnet",
		RPCURL:      "https://ethereum-rpc.publicnode.com",
		ChainID:     1,
		ExplorerURL: "https://etherscan.io",
	},
}

// Config holds the configuration for the registry bridge.
type Config struct {
	// Network selects a preset that fills RPCURL, ChainID and ExplorerURL when they are empty.
	Network string
	// RPCURL is the JSON-RPC endpoint of the chain node.
	RPCURL string
	// ChainID is the chain id used when signing transactions.
	ChainID int64
	// ContractAddress is the address of the user registry contract. Required.
	ContractAddress string
	// ExplorerURL is the block explorer base used for transaction links. Optional.
	ExplorerURL string
	// AllowedWallets is the allow-list of wallet identities offered on connect.
	AllowedWallets []string
	// ConfirmationTimeout bounds the wait for a receipt. Zero disables the bound.
	ConfirmationTimeout time.Duration
	// PollInterval is the delay between receipt lookups.
	PollInterval time.Duration
	// GasLimit overrides gas estimation when non-zero.
	GasLimit uint64
}

// New creates a Config from cfg, filling zero values with defaults and the
// network preset. Pass an empty Config{} to use all defaults.
func New(cfg Config, opts ...Option) *Config {
	result := cfg
	result.AllowedWallets = append([]string(nil), cfg.AllowedWallets...)
	for _, opt := range opts {
		opt(&result)
	}
	result.Standardize()
	return &result
}

// Standardize sets default values for unset optional fields.
func (c *Config) Standardize() {
	if c.Network == "" {
		c.Network = DefaultNetwork
	}
	c.Network = strings.ToLower(c.Network)

	if preset, ok := Networks[c.Network]; ok {
		if c.RPCURL == "" {
			c.RPCURL = preset.RPCURL
		}
		if c.ChainID == 0 {
			c.ChainID = preset.ChainID
		}
		if c.ExplorerURL == "" {
			c.ExplorerURL = preset.ExplorerURL
		}
	}

	if len(c.AllowedWallets) == 0 {
		c.AllowedWallets = append([]string(nil), DefaultAllowedWallets...)
	}
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.ConfirmationTimeout < 0 {
		c.ConfirmationTimeout = 0
	}
	c.ContractAddress = strings.ToLower(strings.TrimSpace(c.ContractAddress))
}

// Validate checks that required fields are present and well formed.
func (c *Config) Validate() error {
	if c.RPCURL == "" {
		return errors.New("rpc url is required")
	}
	if u, err := url.Parse(c.RPCURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid rpc url %q", c.RPCURL)
	}
	if !common.IsHexAddress(c.ContractAddress) {
		return errors.New("contract address is required and must be a hex address")
	}
	if c.ChainID <= 0 {
		return errors.New("chain ID must be greater than 0")
	}
	for _, id := range c.AllowedWallets {
		if strings.TrimSpace(id) == "" {
			return errors.New("allowed wallet ids must not be empty")
		}
	}
	return nil
}
