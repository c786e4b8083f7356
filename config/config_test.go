package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testContract = "0x6aD11619F8912f800A6f5CF05BD63Bb60e7ad160"

func TestNewDefaults(t *testing.T) {
	cfg := New(Config{ContractAddress: testContract})

	assert.Equal(t, NetworkSepolia, cfg.Network)
	assert.Equal(t, Networks[NetworkSepolia].RPCURL, cfg.RPCURL)
	assert.Equal(t, int64(11155111), cfg.ChainID)
	assert.Equal(t, "https://sepolia.etherscan.io", cfg.ExplorerURL)
	assert.Equal(t, []string{"argentX", "braavos"}, cfg.AllowedWallets)
	assert.Equal(t, DefaultPollInterval, cfg.PollInterval)
	assert.Equal(t, "0x6ad11619f8912f800a6f5cf05bd63bb60e7ad160", cfg.ContractAddress)
	require.NoError(t, cfg.Validate())
}

func TestNewOptionsOverridePreset(t *testing.T) {
	cfg := New(Config{},
		WithNetwork("MAINNET"),
		WithRPC("http://localhost:8545"),
		WithContractAddress(testContract),
		WithAllowedWallets("local"),
		WithConfirmationTimeout(30*time.Second),
		WithGasLimit(120000),
	)

	assert.Equal(t, NetworkMainnet, cfg.Network)
	assert.Equal(t, "http://localhost:8545", cfg.RPCURL)
	assert.Equal(t, int64(1), cfg.ChainID)
	assert.Equal(t, []string{"local"}, cfg.AllowedWallets)
	assert.Equal(t, 30*time.Second, cfg.ConfirmationTimeout)
	assert.Equal(t, uint64(120000), cfg.GasLimit)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "missing contract",
			cfg:     *New(Config{}),
			wantErr: "contract address",
		},
		{
			name:    "bad rpc",
			cfg:     *New(Config{RPCURL: "not a url", ContractAddress: testContract}),
			wantErr: "invalid rpc url",
		},
		{
			name:    "unknown network without chain id",
			cfg:     *New(Config{Network: "devnet", RPCURL: "http://localhost:8545", ContractAddress: testContract}),
			wantErr: "chain ID",
		},
		{
			name:    "blank wallet id",
			cfg:     *New(Config{ContractAddress: testContract, AllowedWallets: []string{" "}}),
			wantErr: "allowed wallet",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvContractAddress, testContract)
	t.Setenv(EnvChainID, "31337")
	t.Setenv(EnvRPC, "http://127.0.0.1:8545")
	t.Setenv(EnvAllowedWallets, "argentX, local ,")
	t.Setenv(EnvPollInterval, "250ms")

	opts, err := FromEnv()
	require.NoError(t, err)

	cfg := New(Config{}, opts...)
	assert.Equal(t, int64(31337), cfg.ChainID)
	assert.Equal(t, "http://127.0.0.1:8545", cfg.RPCURL)
	assert.Equal(t, []string{"argentX", "local"}, cfg.AllowedWallets)
	assert.Equal(t, 250*time.Millisecond, cfg.PollInterval)
	require.NoError(t, cfg.Validate())
}

func TestFromEnvInvalid(t *testing.T) {
	t.Setenv(EnvConfirmationTimeout, "soon")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvConfirmationTimeout)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	doc := `{
		"network": "mainnet",
		"contractAddress": "` + testContract + `",
		"allowedWallets": ["braavos"],
		"confirmationTimeout": "2m",
		"pollInterval": "1s"
	}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	opts, err := LoadFile(path)
	require.NoError(t, err)

	cfg := New(Config{}, opts...)
	assert.Equal(t, NetworkMainnet, cfg.Network)
	assert.Equal(t, []string{"braavos"}, cfg.AllowedWallets)
	assert.Equal(t, 2*time.Minute, cfg.ConfirmationTimeout)
	assert.Equal(t, time.Second, cfg.PollInterval)
	require.NoError(t, cfg.Validate())
}

func TestParseRejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "short address", doc: `{"contractAddress": "0x1234"}`},
		{name: "unknown field", doc: `{"walletKey": "0xabc"}`},
		{name: "bad duration", doc: `{"pollInterval": "fast"}`},
		{name: "unknown network", doc: `{"network": "goerli"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config is invalid")
		})
	}
}
