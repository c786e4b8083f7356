package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pilacorp/go-userregistry-sdk/address"
	"github.com/pilacorp/go-userregistry-sdk/reader"
)

func profileCmd() *cobra.Command {
	var (
		wf     walletFlags
		jsonLD bool
	)

	cmd := &cobra.Command{
		Use:   "profile [address]",
		Short: "Print a registry profile",
		Long: "Print the profile of address. Without an address the wallet is " +
			"connected and its own profile is shown.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				client, err := newClient(cmd.Context())
				if err != nil {
					return err
				}
				defer client.Close()

				p, err := client.Reader().Profile(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if p == nil {
					fmt.Fprintf(out, "%s has no account\n", address.Format(args[0]))
					return nil
				}
				printProfile(out, p)
				return nil
			}

			client, sess, err := wf.connect(cmd)
			if err != nil {
				return err
			}
			defer client.Close()
			defer client.Disconnect(cmd.Context())

			view, err := client.Profile(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Wallet:  %s (%s)\n", view.DisplayAddress, sess.WalletID)
			fmt.Fprintf(out, "Users:   %d\n", view.UserCount)
			if view.Profile == nil {
				fmt.Fprintln(out, "No account yet")
				return nil
			}

			if jsonLD {
				doc, err := client.Profiles().Document(view)
				if err != nil {
					return err
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(doc)
			}
			printProfile(out, view.Profile)
			return nil
		},
	}

	wf.register(cmd)
	cmd.Flags().BoolVar(&jsonLD, "jsonld", false, "print the profile as a JSON-LD document")
	return cmd
}

func printProfile(w io.Writer, p *reader.Profile) {
	fmt.Fprintf(w, "Name:    %s\nAge:     %d\nAccount: %s\n", p.Name, p.Age, p.AccountAddress)
}
