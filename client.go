// Package userregistry is a client for an on-chain user registry.
//
// A Client connects a wallet session, reads registry profiles and creates
// accounts, tracking each creation from submission to confirmation:
//
//	cfg := config.New(config.Config{ContractAddress: addr})
//	client, err := userregistry.New(ctx, cfg)
//	provider, err := signer.NewDefaultProvider(privHex)
//	client.RegisterKey("argentX", provider)
//	client.Connect(ctx)
//	res, err := client.CreateAccount(ctx, "Alice", "30")
package userregistry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/pilacorp/go-userregistry-sdk/config"
	"github.com/pilacorp/go-userregistry-sdk/contract"
	"github.com/pilacorp/go-userregistry-sdk/reader"
	"github.com/pilacorp/go-userregistry-sdk/registration"
	"github.com/pilacorp/go-userregistry-sdk/session"
	"github.com/pilacorp/go-userregistry-sdk/signer"
	"github.com/pilacorp/go-userregistry-sdk/submitter"
	"github.com/pilacorp/go-userregistry-sdk/wallet"
)

// Backend is the chain node surface a Client needs. *ethclient.Client implements it.
type Backend interface {
	bind.ContractCaller
	bind.ContractTransactor
	contract.ReceiptFetcher
}

// ErrCustomConnector is returned by RegisterKey when the Client was built
// with its own wallet connector.
var ErrCustomConnector = errors.New("client uses a custom wallet connector")

type clientOptions struct {
	logger      *slog.Logger
	connector   wallet.Connector
	selector    wallet.Selector
	onConfirmed func(submitter.SubmittedTransaction)
}

// Option configures a Client.
type Option func(*clientOptions)

// WithLogger sets the logger shared by all components.
func WithLogger(l *slog.Logger) Option {
	return func(o *clientOptions) { o.logger = l }
}

// WithConnector replaces the key-backed wallet with connector.
func WithConnector(connector wallet.Connector) Option {
	return func(o *clientOptions) { o.connector = connector }
}

// WithSelector sets how the key-backed wallet picks among registered keys.
func WithSelector(selector wallet.Selector) Option {
	return func(o *clientOptions) { o.selector = selector }
}

// WithOnConfirmed registers a callback fired when an account creation is confirmed.
func WithOnConfirmed(fn func(submitter.SubmittedTransaction)) Option {
	return func(o *clientOptions) { o.onConfirmed = fn }
}

// Client wires the registry components together.
type Client struct {
	cfg        *config.Config
	contract   *contract.Contract
	keys       *wallet.KeyWallet
	sessions   *session.Store
	reader     *reader.Reader
	submitter  *submitter.Submitter
	profiles   *registration.ProfileViewModel
	controller *registration.Controller
	logger     *slog.Logger
	rpc        *ethclient.Client
}

// New dials cfg.RPCURL and creates a Client.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	rpcClient, err := contract.Dial(ctx, cfg.RPCURL)
	if err != nil {
		return nil, err
	}

	c, err := NewWithBackend(cfg, rpcClient, opts...)
	if err != nil {
		rpcClient.Close()
		return nil, err
	}
	c.rpc = rpcClient
	return c, nil
}

// NewWithBackend creates a Client over an existing chain backend.
func NewWithBackend(cfg *config.Config, backend Backend, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	o := &clientOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}

	registry, err := contract.New(contract.Config{
		ContractAddress: cfg.ContractAddress,
		ChainID:         cfg.ChainID,
		GasLimit:        cfg.GasLimit,
		PollInterval:    cfg.PollInterval,
	}, backend, backend, backend)
	if err != nil {
		return nil, fmt.Errorf("failed to bind registry contract: %w", err)
	}

	c := &Client{
		cfg:      cfg,
		contract: registry,
		logger:   o.logger,
	}

	connector := o.connector
	if connector == nil {
		c.keys = wallet.NewKeyWallet(registry, o.selector)
		connector = c.keys
	}

	c.sessions = session.NewStore(connector, cfg.AllowedWallets, session.WithLogger(o.logger))
	c.reader = reader.New(registry, o.logger)
	c.profiles = registration.NewProfileViewModel(c.reader, c.sessions, cfg.ChainID, o.logger)

	subOpts := []submitter.Option{submitter.WithLogger(o.logger)}
	if o.onConfirmed != nil {
		subOpts = append(subOpts, submitter.OnConfirmed(o.onConfirmed))
	}
	c.submitter = submitter.New(submitter.Config{
		ContractAddress:     cfg.ContractAddress,
		ConfirmationTimeout: cfg.ConfirmationTimeout,
	}, c.sessions, registry, subOpts...)

	c.controller = registration.NewController(c.sessions, c.submitter, c.profiles, cfg.ExplorerURL, o.logger)
	return c, nil
}

// RegisterKey offers provider as wallet identity walletID on the next Connect.
func (c *Client) RegisterKey(walletID string, provider signer.SignerProvider) error {
	if c.keys == nil {
		return ErrCustomConnector
	}
	c.keys.Register(walletID, provider)
	return nil
}

// Connect opens a wallet session.
func (c *Client) Connect(ctx context.Context) (*session.WalletSession, error) {
	return c.controller.Connect(ctx)
}

// Disconnect closes the wallet session.
func (c *Client) Disconnect(ctx context.Context) {
	c.controller.Disconnect(ctx)
}

// Status reports the wallet status.
func (c *Client) Status() session.Status {
	return c.controller.Status()
}

// CreateAccount registers name and age for the connected account.
func (c *Client) CreateAccount(ctx context.Context, name, age string) (*registration.Result, error) {
	return c.controller.CreateAccount(ctx, name, age)
}

// Profile returns the profile view of the connected account.
func (c *Client) Profile(ctx context.Context) (*registration.ProfileView, error) {
	return c.profiles.View(ctx)
}

// Config returns the client configuration.
func (c *Client) Config() *config.Config { return c.cfg }

// Contract returns the registry contract binding.
func (c *Client) Contract() *contract.Contract { return c.contract }

// Reader returns the registry reader.
func (c *Client) Reader() *reader.Reader { return c.reader }

// Sessions returns the session store.
func (c *Client) Sessions() *session.Store { return c.sessions }

// Submitter returns the account-creation submitter.
func (c *Client) Submitter() *submitter.Submitter { return c.submitter }

// Profiles returns the profile view model.
func (c *Client) Profiles() *registration.ProfileViewModel { return c.profiles }

// Close releases the RPC connection opened by New.
func (c *Client) Close() {
	if c.rpc != nil {
		c.rpc.Close()
	}
}
