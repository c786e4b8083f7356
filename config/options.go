package config

import "time"

// Option is a functional option for building a Config.
type Option func(*Config)

// WithNetwork selects a network preset by name.
func WithNetwork(name string) Option {
	return func(c *Config) { c.Network = name }
}

// WithRPC sets the RPC endpoint URL.
func WithRPC(rpc string) Option {
	return func(c *Config) { c.RPCURL = rpc }
}

// WithChainID sets the chain id.
func WithChainID(chainID int64) Option {
	return func(c *Config) { c.ChainID = chainID }
}

// WithContractAddress sets the registry contract address.
func WithContractAddress(addr string) Option {
	return func(c *Config) { c.ContractAddress = addr }
}

// WithExplorerURL sets the block explorer base URL.
func WithExplorerURL(u string) Option {
	return func(c *Config) { c.ExplorerURL = u }
}

// WithAllowedWallets replaces the wallet allow-list.
func WithAllowedWallets(ids ...string) Option {
	return func(c *Config) { c.AllowedWallets = append([]string(nil), ids...) }
}

// WithConfirmationTimeout bounds the wait for a transaction receipt.
//
// Zero waits until the caller's context is done.
func WithConfirmationTimeout(d time.Duration) Option {
	return func(c *Config) { c.ConfirmationTimeout = d }
}

// WithPollInterval sets the delay between receipt lookups.
func WithPollInterval(d time.Duration) Option {
	return func(c *Config) { c.PollInterval = d }
}

// WithGasLimit fixes the gas limit instead of estimating it.
func WithGasLimit(limit uint64) Option {
	return func(c *Config) { c.GasLimit = limit }
}
