package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func createCmd() *cobra.Command {
	var wf walletFlags

	cmd := &cobra.Command{
		Use:   "create [name] [age]",
		Short: "Create a registry account for the connected wallet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, sess, err := wf.connect(cmd)
			if err != nil {
				return err
			}
			defer client.Close()
			defer client.Disconnect(cmd.Context())

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Connected %s as %s\n", sess.WalletID, sess.Address)

			res, err := client.CreateAccount(cmd.Context(), args[0], args[1])
			if res != nil {
				fmt.Fprintf(out, "Transaction: %s\n", res.Transaction.Hash)
				if res.ExplorerURL != "" {
					fmt.Fprintf(out, "Explorer:    %s\n", res.ExplorerURL)
				}
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Account created in block %d\n", res.Transaction.BlockNumber)
			return nil
		},
	}

	wf.register(cmd)
	return cmd
}
