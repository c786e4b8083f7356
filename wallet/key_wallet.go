package wallet

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/pilacorp/go-userregistry-sdk/contract"
	"github.com/pilacorp/go-userregistry-sdk/signer"
)

// Sender broadcasts a call signed by txSigner.
type Sender interface {
	Execute(ctx context.Context, txSigner signer.SignerProvider, call contract.Call) (*contract.Transaction, error)
}

// Selector picks one wallet id out of available. Returning "" or
// ErrSelectionAborted means the user aborted.
type Selector func(ctx context.Context, available []string) (string, error)

// FirstAvailable selects the first offered wallet.
func FirstAvailable(_ context.Context, available []string) (string, error) {
	if len(available) == 0 {
		return "", ErrSelectionAborted
	}
	return available[0], nil
}

// KeyWallet is a Connector whose identities are signer providers.
type KeyWallet struct {
	mu         sync.Mutex
	identities map[string]signer.SignerProvider
	sender     Sender
	selector   Selector
	active     *keyAccount
}

// NewKeyWallet creates a KeyWallet sending through sender. A nil selector
// picks the first available identity.
func NewKeyWallet(sender Sender, selector Selector) *KeyWallet {
	if selector == nil {
		selector = FirstAvailable
	}
	return &KeyWallet{
		identities: make(map[string]signer.SignerProvider),
		sender:     sender,
		selector:   selector,
	}
}

// Register installs provider under walletID.
func (w *KeyWallet) Register(walletID string, provider signer.SignerProvider) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.identities[walletID] = provider
}

// RequestConnection offers the registered identities that are on the
// allow-list, in allow-list order, and enables the selected one.
func (w *KeyWallet) RequestConnection(ctx context.Context, allowedWalletIDs []string) (*Connection, error) {
	w.mu.Lock()
	available := make([]string, 0, len(allowedWalletIDs))
	for _, id := range allowedWalletIDs {
		if _, ok := w.identities[id]; ok && !slices.Contains(available, id) {
			available = append(available, id)
		}
	}
	w.mu.Unlock()

	if len(available) == 0 {
		return nil, fmt.Errorf("%w: no allowed wallet is installed", ErrSelectionAborted)
	}

	id, err := w.selector(ctx, available)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, ErrSelectionAborted
	}
	if !slices.Contains(available, id) {
		return nil, fmt.Errorf("wallet %q is not available", id)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	provider := w.identities[id]
	if provider == nil {
		return &Connection{WalletID: id}, nil
	}

	account := &keyAccount{provider: provider, sender: w.sender}
	account.connected.Store(true)
	if w.active != nil {
		w.active.connected.Store(false)
	}
	w.active = account

	return &Connection{
		WalletID:  id,
		Address:   provider.GetAddress(),
		Account:   account,
		Connected: true,
	}, nil
}

// Disconnect revokes the active account.
func (w *KeyWallet) Disconnect(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.active == nil {
		return errors.New("no wallet connected")
	}
	w.active.connected.Store(false)
	w.active = nil
	return nil
}

type keyAccount struct {
	provider  signer.SignerProvider
	sender    Sender
	connected atomic.Bool
}

func (a *keyAccount) Address() string { return a.provider.GetAddress() }

func (a *keyAccount) IsConnected() bool { return a.connected.Load() }

func (a *keyAccount) Execute(ctx context.Context, call contract.Call) (*ExecuteResult, error) {
	if !a.IsConnected() {
		return nil, errors.New("wallet not connected")
	}
	if a.sender == nil {
		return nil, errors.New("no chain sender configured")
	}

	tx, err := a.sender.Execute(ctx, a.provider, call)
	if err != nil {
		return nil, err
	}
	return &ExecuteResult{TransactionHash: tx.TxHash, RawTx: tx.TxHex}, nil
}
