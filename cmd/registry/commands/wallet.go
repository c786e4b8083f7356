package commands

import (
	"context"
	"slices"

	"github.com/spf13/cobra"

	userregistry "github.com/pilacorp/go-userregistry-sdk"
	"github.com/pilacorp/go-userregistry-sdk/session"
	"github.com/pilacorp/go-userregistry-sdk/wallet"
)

type walletFlags struct {
	walletID  string
	signerURL string
	address   string
}

func (f *walletFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.walletID, "wallet", "", "wallet id to connect as (default: first allowed wallet)")
	cmd.Flags().StringVar(&f.signerURL, "signer-url", "", "remote signer endpoint; the key never leaves the signer")
	cmd.Flags().StringVar(&f.address, "address", "", "account address of the remote signer")
}

// selector picks the configured wallet id, or the first one offered.
func (f *walletFlags) selector(ctx context.Context, available []string) (string, error) {
	if f.walletID == "" {
		return wallet.FirstAvailable(ctx, available)
	}
	if slices.Contains(available, f.walletID) {
		return f.walletID, nil
	}
	return "", wallet.ErrSelectionAborted
}

// connect creates a client, installs the wallet key under the selected
// wallet id and opens a session.
func (f *walletFlags) connect(cmd *cobra.Command) (*userregistry.Client, *session.WalletSession, error) {
	provider, err := walletSigner(cmd, f.signerURL, f.address)
	if err != nil {
		return nil, nil, err
	}

	client, err := newClient(cmd.Context(), userregistry.WithSelector(f.selector))
	if err != nil {
		return nil, nil, err
	}

	walletID := f.walletID
	if walletID == "" {
		walletID = appCfg.AllowedWallets[0]
	}
	if err := client.RegisterKey(walletID, provider); err != nil {
		client.Close()
		return nil, nil, err
	}

	sess, err := client.Connect(cmd.Context())
	if err != nil {
		client.Close()
		return nil, nil, err
	}
	return client, sess, nil
}
