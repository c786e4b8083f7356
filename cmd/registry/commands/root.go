package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	userregistry "github.com/pilacorp/go-userregistry-sdk"
	"github.com/pilacorp/go-userregistry-sdk/config"
)

var (
	configPath   string
	network      string
	rpcURL       string
	contractAddr string
	chainID      int64
	logLevel     string
	timeout      time.Duration

	appCfg *config.Config
	logger = slog.Default()
)

// Execute runs the registry CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "registry",
		Short:         "User registry contract client",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := parseLevel(logLevel)
			if err != nil {
				return err
			}
			logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			appCfg = cfg
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "path to a JSON config file")
	flags.StringVar(&network, "network", "", "network preset (sepolia, mainnet)")
	flags.StringVar(&rpcURL, "rpc", "", "JSON-RPC endpoint of the chain node")
	flags.StringVar(&contractAddr, "contract", "", "address of the registry contract")
	flags.Int64Var(&chainID, "chain-id", 0, "chain id used for signing")
	flags.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.DurationVar(&timeout, "timeout", 0, "confirmation timeout for create (default 5m)")

	root.AddCommand(networksCmd(), keygenCmd(), countCmd(), existsCmd(), profileCmd(), createCmd())
	return root
}

// loadConfig merges the config file, the environment and explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var opts []config.Option

	if configPath != "" {
		fileOpts, err := config.LoadFile(configPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, fileOpts...)
	}

	envOpts, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	opts = append(opts, envOpts...)

	flags := cmd.Flags()
	if flags.Changed("network") {
		opts = append(opts, config.WithNetwork(network))
	}
	if flags.Changed("rpc") {
		opts = append(opts, config.WithRPC(rpcURL))
	}
	if flags.Changed("contract") {
		opts = append(opts, config.WithContractAddress(contractAddr))
	}
	if flags.Changed("chain-id") {
		opts = append(opts, config.WithChainID(chainID))
	}
	if flags.Changed("timeout") {
		opts = append(opts, config.WithConfirmationTimeout(timeout))
	}

	cfg := config.New(config.Config{}, opts...)
	if cfg.ConfirmationTimeout == 0 {
		cfg.ConfirmationTimeout = config.DefaultConfirmationTimeout
	}
	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

func newClient(ctx context.Context, opts ...userregistry.Option) (*userregistry.Client, error) {
	opts = append([]userregistry.Option{userregistry.WithLogger(logger)}, opts...)
	return userregistry.New(ctx, appCfg, opts...)
}
