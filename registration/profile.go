// Package registration binds the session, reader and submitter into the two
// user flows of the registry: viewing the connected account's profile and
// creating an account.
package registration

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pilacorp/go-userregistry-sdk/address"
	"github.com/pilacorp/go-userregistry-sdk/reader"
	"github.com/pilacorp/go-userregistry-sdk/session"
)

// ProfileReader is the degrading read surface of the registry.
type ProfileReader interface {
	GetProfile(ctx context.Context, address string) *reader.Profile
	UserExists(ctx context.Context, address string) bool
	UserCount(ctx context.Context) int64
}

// SessionStore is the session surface used by the flows.
type SessionStore interface {
	Connect(ctx context.Context) (*session.WalletSession, error)
	Disconnect(ctx context.Context)
	Current() *session.WalletSession
	IsConnected() bool
	Status() session.Status
}

// ProfileView is what a profile screen displays.
type ProfileView struct {
	Connected      bool
	Address        string
	DisplayAddress string
	Exists         bool
	Profile        *reader.Profile
	UserCount      int64
	LoadedAt       time.Time
}

// ProfileViewModel caches the profile of the connected account until it is
// invalidated.
type ProfileViewModel struct {
	reader   ProfileReader
	sessions SessionStore
	chainID  int64
	logger   *slog.Logger
	now      func() time.Time

	mu   sync.Mutex
	view *ProfileView
}

// NewProfileViewModel creates a view model. chainID is used to identify the
// account in rendered documents.
func NewProfileViewModel(r ProfileReader, sessions SessionStore, chainID int64, logger *slog.Logger) *ProfileViewModel {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileViewModel{
		reader:   r,
		sessions: sessions,
		chainID:  chainID,
		logger:   logger,
		now:      time.Now,
	}
}

// Load reads the profile of the current session from the chain and caches it.
// Without a session only the user count is loaded.
func (m *ProfileViewModel) Load(ctx context.Context) (*ProfileView, error) {
	view := &ProfileView{}
	if sess := m.sessions.Current(); sess != nil && m.sessions.IsConnected() {
		view.Connected = true
		view.Address = sess.Address
		view.DisplayAddress = address.Format(sess.Address)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		view.UserCount = m.reader.UserCount(gctx)
		return nil
	})
	if view.Connected {
		g.Go(func() error {
			view.Profile = m.reader.GetProfile(gctx, view.Address)
			return nil
		})
		g.Go(func() error {
			view.Exists = m.reader.UserExists(gctx, view.Address)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// Partial results of a cancelled load are not cached.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	view.LoadedAt = m.now()
	m.logger.DebugContext(ctx, "Profile loaded", "address", view.Address, "exists", view.Exists, "users", view.UserCount)

	m.mu.Lock()
	m.view = view
	m.mu.Unlock()

	out := *view
	return &out, nil
}

// View returns the cached view, loading it on first use.
func (m *ProfileViewModel) View(ctx context.Context) (*ProfileView, error) {
	m.mu.Lock()
	view := m.view
	m.mu.Unlock()

	if view != nil {
		out := *view
		return &out, nil
	}
	return m.Load(ctx)
}

// Invalidate drops the cached view.
func (m *ProfileViewModel) Invalidate() {
	m.mu.Lock()
	m.view = nil
	m.mu.Unlock()
}
