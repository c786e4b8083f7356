package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pilacorp/go-userregistry-sdk/signer"
)

func keygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a wallet key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := signer.GenerateKey()
			if err != nil {
				return err
			}
			provider, err := signer.NewDefaultProvider(key)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Address:     %s\nPrivate key: %s\n", provider.GetAddress(), key)
			return nil
		},
	}
}
