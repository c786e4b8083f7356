package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func existsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exists [address]",
		Short: "Report whether an address has a registry account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			defer client.Close()

			ok, err := client.Reader().Exists(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}
}
