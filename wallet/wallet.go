// Package wallet defines the wallet collaborator of the registry bridge and
// a key-backed implementation of it.
//
// A Connector negotiates a connection with one of an allow-list of wallet
// identities and hands back an Account, the capability handle used to send
// state-changing calls on the user's behalf.
package wallet

import (
	"context"
	"errors"

	"github.com/pilacorp/go-userregistry-sdk/contract"
)

// ErrSelectionAborted is returned by a Connector when the user closes the
// wallet picker without choosing a wallet.
var ErrSelectionAborted = errors.New("wallet selection aborted")

// Account is the capability handle of a connected wallet.
type Account interface {
	Address() string
	IsConnected() bool
	// Execute sends a state-changing call and returns once the node accepted it.
	Execute(ctx context.Context, call contract.Call) (*ExecuteResult, error)
}

// ExecuteResult identifies a call the wallet handed to the chain.
type ExecuteResult struct {
	TransactionHash string
	// RawTx is the encoded signed transaction, when the wallet exposes it.
	RawTx string
}

// Connection is the outcome of a connection request.
type Connection struct {
	WalletID  string
	Address   string
	Account   Account
	Connected bool
}

// Connector is the wallet collaborator.
type Connector interface {
	// RequestConnection asks the user to pick one of allowedWalletIDs and
	// enables it.
	RequestConnection(ctx context.Context, allowedWalletIDs []string) (*Connection, error)
	Disconnect(ctx context.Context) error
}
