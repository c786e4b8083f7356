package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variable names
const (
	EnvNetwork             = "REGISTRY_NETWORK"
	EnvRPC                 = "REGISTRY_RPC_URL"
	EnvChainID             = "REGISTRY_CHAIN_ID"
	EnvContractAddress     = "REGISTRY_CONTRACT_ADDRESS"
	EnvExplorerURL         = "REGISTRY_EXPLORER_URL"
	EnvAllowedWallets      = "REGISTRY_ALLOWED_WALLETS"
	EnvConfirmationTimeout = "REGISTRY_CONFIRMATION_TIMEOUT"
	EnvPollInterval        = "REGISTRY_POLL_INTERVAL"
)

// FromEnv returns options for every REGISTRY_* variable that is set.
// Malformed numeric or duration values are reported as errors.
func FromEnv() ([]Option, error) {
	var opts []Option

	if v := os.Getenv(EnvNetwork); v != "" {
		opts = append(opts, WithNetwork(v))
	}
	if v := os.Getenv(EnvRPC); v != "" {
		opts = append(opts, WithRPC(v))
	}
	if v := os.Getenv(EnvChainID); v != "" {
		chainID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvChainID, err)
		}
		opts = append(opts, WithChainID(chainID))
	}
	if v := os.Getenv(EnvContractAddress); v != "" {
		opts = append(opts, WithContractAddress(v))
	}
	if v := os.Getenv(EnvExplorerURL); v != "" {
		opts = append(opts, WithExplorerURL(v))
	}
	if v := os.Getenv(EnvAllowedWallets); v != "" {
		opts = append(opts, WithAllowedWallets(splitList(v)...))
	}
	if v := os.Getenv(EnvConfirmationTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvConfirmationTimeout, err)
		}
		opts = append(opts, WithConfirmationTimeout(d))
	}
	if v := os.Getenv(EnvPollInterval); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvPollInterval, err)
		}
		opts = append(opts, WithPollInterval(d))
	}

	return opts, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
