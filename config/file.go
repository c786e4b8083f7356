package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed config_schema.json
var configSchemaJSON []byte

// fileConfig is the on-disk JSON shape.
type fileConfig struct {
	Network             string   `json:"network"`
	RPCURL              string   `json:"rpcUrl"`
	ChainID             int64    `json:"chainId"`
	ContractAddress     string   `json:"contractAddress"`
	ExplorerURL         string   `json:"explorerUrl"`
	AllowedWallets      []string `json:"allowedWallets"`
	ConfirmationTimeout string   `json:"confirmationTimeout"`
	PollInterval        string   `json:"pollInterval"`
	GasLimit            uint64   `json:"gasLimit"`
}

// LoadFile reads a JSON configuration file and returns options for the
// fields it sets. The document is validated against the embedded schema
// before decoding.
func LoadFile(path string) ([]Option, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse validates and decodes a JSON configuration document.
func Parse(data []byte) ([]Option, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(configSchemaJSON),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("config schema validation: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("config is invalid: %s", strings.Join(msgs, "; "))
	}

	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config JSON: %w", err)
	}

	var opts []Option
	if fc.Network != "" {
		opts = append(opts, WithNetwork(fc.Network))
	}
	if fc.RPCURL != "" {
		opts = append(opts, WithRPC(fc.RPCURL))
	}
	if fc.ChainID != 0 {
		opts = append(opts, WithChainID(fc.ChainID))
	}
	if fc.ContractAddress != "" {
		opts = append(opts, WithContractAddress(fc.ContractAddress))
	}
	if fc.ExplorerURL != "" {
		opts = append(opts, WithExplorerURL(fc.ExplorerURL))
	}
	if len(fc.AllowedWallets) > 0 {
		opts = append(opts, WithAllowedWallets(fc.AllowedWallets...))
	}
	if fc.ConfirmationTimeout != "" {
		d, err := time.ParseDuration(fc.ConfirmationTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid confirmationTimeout: %w", err)
		}
		opts = append(opts, WithConfirmationTimeout(d))
	}
	if fc.PollInterval != "" {
		d, err := time.ParseDuration(fc.PollInterval)
		if err != nil {
			return nil, fmt.Errorf("invalid pollInterval: %w", err)
		}
		opts = append(opts, WithPollInterval(d))
	}
	if fc.GasLimit != 0 {
		opts = append(opts, WithGasLimit(fc.GasLimit))
	}

	return opts, nil
}
