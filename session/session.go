// Package session owns the single wallet session of the registry bridge.
//
// The Store is the only writer of the session slot: Connect replaces it and
// Disconnect clears it. Everything else reads through Current and
// IsConnected.
package session

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/pilacorp/go-userregistry-sdk/errdefs"
	"github.com/pilacorp/go-userregistry-sdk/wallet"
)

// WalletSession is an established wallet connection.
type WalletSession struct {
	WalletID    string
	Address     string
	Account     wallet.Account
	ConnectedAt time.Time
}

// Status is a snapshot of the session for display.
type Status struct {
	Connected  bool
	HasAccount bool
	Address    string
}

// Store holds at most one active WalletSession.
type Store struct {
	connector      wallet.Connector
	allowedWallets []string
	logger         *slog.Logger
	now            func() time.Time

	mu      sync.RWMutex
	current *WalletSession
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for absorbed failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithClock overrides the time source for ConnectedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a Store that connects through connector, offering only
// allowedWallets.
func NewStore(connector wallet.Connector, allowedWallets []string, opts ...Option) *Store {
	s := &Store{
		connector:      connector,
		allowedWallets: slices.Clone(allowedWallets),
		logger:         slog.Default(),
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Connect negotiates a wallet connection and makes it the active session.
//
// A failed attempt clears any prior session.
func (s *Store) Connect(ctx context.Context) (*WalletSession, error) {
	sess, err := s.connect(ctx)

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to connect wallet", "error", err)
		return nil, err
	}

	s.logger.InfoContext(ctx, "Wallet connected",
		"wallet", sess.WalletID,
		"address", sess.Address,
	)
	return sess, nil
}

func (s *Store) connect(ctx context.Context) (*WalletSession, error) {
	conn, err := s.connector.RequestConnection(ctx, s.allowedWallets)
	if err != nil {
		if errors.Is(err, wallet.ErrSelectionAborted) {
			return nil, errdefs.Wrap(errdefs.ErrNoWalletSelected, err)
		}
		return nil, errdefs.Wrap(errdefs.ErrCapabilityDenied, err)
	}
	if conn == nil {
		return nil, errdefs.ErrNoWalletSelected
	}
	if !slices.Contains(s.allowedWallets, conn.WalletID) {
		return nil, errdefs.Wrapf(errdefs.ErrCapabilityDenied, "wallet %q is not allowed", conn.WalletID)
	}
	if !conn.Connected {
		return nil, errdefs.ErrCapabilityDenied
	}
	if conn.Account == nil || conn.Address == "" {
		return nil, errdefs.ErrNoAccountAvailable
	}

	return &WalletSession{
		WalletID:    conn.WalletID,
		Address:     conn.Address,
		Account:     conn.Account,
		ConnectedAt: s.now(),
	}, nil
}

// Disconnect tears the session down. The slot is cleared even when the
// wallet fails to disconnect; that failure is only logged.
func (s *Store) Disconnect(ctx context.Context) {
	s.mu.Lock()
	had := s.current != nil
	s.current = nil
	s.mu.Unlock()

	if err := s.connector.Disconnect(ctx); err != nil {
		s.logger.WarnContext(ctx, "Failed to disconnect wallet", "error", err, "had_session", had)
		return
	}
	s.logger.InfoContext(ctx, "Wallet disconnected")
}

// Current returns the active session, or nil.
func (s *Store) Current() *WalletSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// IsConnected reports whether a session exists and its account is connected.
func (s *Store) IsConnected() bool {
	sess := s.Current()
	return sess != nil && sess.Account != nil && sess.Account.IsConnected()
}

// Status returns a display snapshot of the session.
func (s *Store) Status() Status {
	sess := s.Current()
	if sess == nil {
		return Status{}
	}
	st := Status{HasAccount: sess.Account != nil}
	if st.HasAccount {
		st.Connected = sess.Account.IsConnected()
	}
	if st.Connected {
		st.Address = sess.Address
	}
	return st
}
