package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pilacorp/go-userregistry-sdk/signer"
)

// Environment variables holding signing material.
const (
	EnvWalletKey    = "REGISTRY_WALLET_KEY"
	EnvSignerAPIKey = "REGISTRY_SIGNER_API_KEY"
)

var errNoKey = errors.New("no wallet key provided")

// walletSigner returns the signer for the wallet: a remote signer when
// signerURL is set, otherwise a local key.
func walletSigner(cmd *cobra.Command, signerURL, signerAddress string) (signer.SignerProvider, error) {
	if signerURL != "" {
		if signerAddress == "" {
			return nil, errors.New("--address is required with --signer-url")
		}
		return signer.NewRemoteSigner(signerURL, os.Getenv(EnvSignerAPIKey), signerAddress)
	}

	key := strings.TrimSpace(os.Getenv(EnvWalletKey))
	if key == "" {
		var err error
		key, err = readSecret(cmd, "Wallet private key: ")
		if err != nil {
			return nil, err
		}
	}
	if key == "" {
		return nil, errNoKey
	}
	return signer.NewDefaultProvider(key)
}

// readSecret prompts on stderr and reads one line from stdin, without echo
// when stdin is a terminal.
func readSecret(cmd *cobra.Command, prompt string) (string, error) {
	in := cmd.InOrStdin()

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), prompt)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("failed to read key: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read key: %w", err)
	}
	return strings.TrimSpace(line), nil
}
