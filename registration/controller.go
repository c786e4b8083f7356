package registration

import (
	"context"
	"log/slog"

	"github.com/pilacorp/go-userregistry-sdk/address"
	"github.com/pilacorp/go-userregistry-sdk/session"
	"github.com/pilacorp/go-userregistry-sdk/submitter"
)

// Submitter runs account-creation attempts.
type Submitter interface {
	Submit(ctx context.Context, in submitter.Input) (*submitter.SubmittedTransaction, error)
}

// Result is the outcome of an account creation that reached the chain.
type Result struct {
	Transaction *submitter.SubmittedTransaction
	ExplorerURL string
}

// Controller runs the connect and create-account flows.
type Controller struct {
	sessions    SessionStore
	submitter   Submitter
	profiles    *ProfileViewModel
	explorerURL string
	logger      *slog.Logger
}

// NewController creates a Controller. explorerURL may be empty.
func NewController(sessions SessionStore, sub Submitter, profiles *ProfileViewModel, explorerURL string, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		sessions:    sessions,
		submitter:   sub,
		profiles:    profiles,
		explorerURL: explorerURL,
		logger:      logger,
	}
}

// Connect opens a wallet session and drops the cached profile.
func (c *Controller) Connect(ctx context.Context) (*session.WalletSession, error) {
	sess, err := c.sessions.Connect(ctx)
	c.profiles.Invalidate()
	return sess, err
}

// Disconnect closes the wallet session and drops the cached profile.
func (c *Controller) Disconnect(ctx context.Context) {
	c.sessions.Disconnect(ctx)
	c.profiles.Invalidate()
}

// Status reports the wallet status.
func (c *Controller) Status() session.Status {
	return c.sessions.Status()
}

// CreateAccount registers name and age for the connected account and waits
// for confirmation. Input and session errors are returned with a nil Result.
// Once the wallet accepted the call the Result carries the transaction, even
// when confirmation fails.
func (c *Controller) CreateAccount(ctx context.Context, name, age string) (*Result, error) {
	tx, err := c.submitter.Submit(ctx, submitter.Input{Name: name, Age: age})

	var res *Result
	if tx != nil {
		res = &Result{Transaction: tx}
		if c.explorerURL != "" {
			res.ExplorerURL = address.TxURL(c.explorerURL, tx.Hash)
		}
	}
	if err != nil {
		return res, err
	}

	c.profiles.Invalidate()
	c.logger.InfoContext(ctx, "Account created", "hash", tx.Hash, "block", tx.BlockNumber)
	return res, nil
}
