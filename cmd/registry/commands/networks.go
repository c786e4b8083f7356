package commands

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/pilacorp/go-userregistry-sdk/config"
)

func networksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "networks",
		Short: "List network presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := make([]string, 0, len(config.Networks))
			for name := range config.Networks {
				names = append(names, name)
			}
			slices.Sort(names)

			out := cmd.OutOrStdout()
			for _, name := range names {
				n := config.Networks[name]
				marker := " "
				if name == appCfg.Network {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %-8s chain %-9d %s  %s\n", marker, name, n.ChainID, n.RPCURL, n.ExplorerURL)
			}
			return nil
		},
	}
}
