// Package submitter drives an account-creation call from raw user input to
// on-chain confirmation.
//
// One Submitter runs at most one attempt at a time:
//
//	Idle -> Validating -> Submitting -> AwaitingConfirmation -> Confirmed | Failed
//
// Validation and session checks happen before any collaborator is contacted.
// The wallet is asked to execute exactly once per attempt; there is no retry,
// since resubmitting could create the account twice.
package submitter

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pilacorp/go-userregistry-sdk/contract"
	"github.com/pilacorp/go-userregistry-sdk/errdefs"
	"github.com/pilacorp/go-userregistry-sdk/reader"
	"github.com/pilacorp/go-userregistry-sdk/session"
)

// Sessions exposes the active wallet session.
type Sessions interface {
	Current() *session.WalletSession
	IsConnected() bool
}

// ReceiptWaiter blocks until a transaction is final.
type ReceiptWaiter interface {
	AwaitReceipt(ctx context.Context, hash string) (*contract.Receipt, error)
}

// Input is the raw form input of an account creation.
type Input struct {
	Name string
	Age  string
}

// SubmittedTransaction tracks a call the wallet handed to the chain.
type SubmittedTransaction struct {
	Hash        string
	Status      Status
	SubmittedAt time.Time
	ConfirmedAt time.Time
	BlockNumber uint64
}

// Config holds the fixed values of a Submitter.
type Config struct {
	// ContractAddress is the registry contract the call is addressed to.
	ContractAddress string
	// ConfirmationTimeout bounds the receipt wait. Zero leaves it to the caller's context.
	ConfirmationTimeout time.Duration
}

// Submitter runs account-creation attempts.
type Submitter struct {
	cfg          Config
	sessions     Sessions
	receipts     ReceiptWaiter
	logger       *slog.Logger
	now          func() time.Time
	onConfirmed  func(SubmittedTransaction)
	onTransition func(from, to State)

	mu      sync.Mutex
	state   State
	last    *SubmittedTransaction
	lastErr error
}

// Option configures a Submitter.
type Option func(*Submitter)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Submitter) { s.logger = l }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Submitter) { s.now = now }
}

// OnConfirmed registers a callback fired once for each confirmed attempt.
func OnConfirmed(fn func(SubmittedTransaction)) Option {
	return func(s *Submitter) { s.onConfirmed = fn }
}

// OnTransition registers an observer of state changes. fn runs while the
// Submitter is locked and must not call back into it.
func OnTransition(fn func(from, to State)) Option {
	return func(s *Submitter) { s.onTransition = fn }
}

// New creates an idle Submitter.
func New(cfg Config, sessions Sessions, receipts ReceiptWaiter, opts ...Option) *Submitter {
	s := &Submitter{
		cfg:      cfg,
		sessions: sessions,
		receipts: receipts,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current state.
func (s *Submitter) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Last returns a snapshot of the latest attempt's transaction and its error.
// The transaction is nil when the attempt never reached the chain.
func (s *Submitter) Last() (*SubmittedTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return nil, s.lastErr
	}
	tx := *s.last
	return &tx, s.lastErr
}

// ValidateInput checks raw form input and returns the trimmed name and the age.
func ValidateInput(in Input) (string, uint8, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return "", 0, errdefs.ErrInvalidName
	}

	age, err := strconv.Atoi(strings.TrimSpace(in.Age))
	if err != nil {
		return "", 0, errdefs.Wrap(errdefs.ErrInvalidAge, err)
	}
	if age < reader.MinAge || age > reader.MaxAge {
		return "", 0, errdefs.Wrapf(errdefs.ErrInvalidAge, "got %d", age)
	}

	return name, uint8(age), nil
}

// Submit runs one attempt and blocks until it is confirmed or failed.
//
// Validation and session errors are returned before any network call. After
// the wallet accepted the call, the returned transaction is non-nil even on
// failure so the caller keeps the hash.
func (s *Submitter) Submit(ctx context.Context, in Input) (*SubmittedTransaction, error) {
	s.mu.Lock()
	if s.state.InFlight() {
		s.mu.Unlock()
		return nil, errdefs.ErrSubmissionInProgress
	}
	s.last, s.lastErr = nil, nil
	s.setStateLocked(ctx, StateValidating)
	s.mu.Unlock()

	name, age, err := ValidateInput(in)
	if err != nil {
		return nil, s.fail(ctx, err)
	}

	sess := s.sessions.Current()
	if sess == nil || sess.Account == nil || !s.sessions.IsConnected() {
		return nil, s.fail(ctx, errdefs.ErrNoActiveSession)
	}

	s.setState(ctx, StateSubmitting)
	s.logger.InfoContext(ctx, "Creating account", "name", name, "age", age, "from", sess.Address)

	res, err := sess.Account.Execute(ctx, contract.Call{
		ContractAddress: s.cfg.ContractAddress,
		Entrypoint:      contract.EntrypointCreateAccount,
		Calldata:        []any{name, age},
	})
	if err != nil {
		return nil, s.fail(ctx, errdefs.Wrap(errdefs.ErrSubmissionRejected, err))
	}
	if res == nil || res.TransactionHash == "" {
		return nil, s.fail(ctx, errdefs.Wrapf(errdefs.ErrSubmissionRejected, "wallet returned no transaction hash"))
	}

	s.mu.Lock()
	s.last = &SubmittedTransaction{
		Hash:        res.TransactionHash,
		Status:      StatusPending,
		SubmittedAt: s.now(),
	}
	s.setStateLocked(ctx, StateAwaitingConfirmation)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Transaction sent", "hash", res.TransactionHash)

	receipt, err := s.awaitReceipt(ctx, res.TransactionHash)
	if err != nil {
		return s.finish(ctx, nil, err)
	}
	if !receipt.Succeeded {
		return s.finish(ctx, receipt, errdefs.Wrapf(errdefs.ErrConfirmationFailed, "transaction %s reverted in block %d", receipt.TxHash, receipt.BlockNumber))
	}
	return s.finish(ctx, receipt, nil)
}

func (s *Submitter) awaitReceipt(ctx context.Context, hash string) (*contract.Receipt, error) {
	waitCtx := ctx
	if s.cfg.ConfirmationTimeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, s.cfg.ConfirmationTimeout)
		defer cancel()
	}

	receipt, err := s.receipts.AwaitReceipt(waitCtx, hash)
	switch {
	case err == nil && receipt == nil:
		return nil, errdefs.Wrapf(errdefs.ErrConfirmationFailed, "no receipt for %s", hash)
	case errors.Is(err, context.DeadlineExceeded):
		return nil, errdefs.Wrap(errdefs.ErrConfirmationTimeout, err)
	case err != nil:
		return nil, errdefs.Wrap(errdefs.ErrConfirmationFailed, err)
	}
	return receipt, nil
}

// finish records the terminal outcome of an attempt that reached the chain.
func (s *Submitter) finish(ctx context.Context, receipt *contract.Receipt, err error) (*SubmittedTransaction, error) {
	s.mu.Lock()
	tx := s.last
	if receipt != nil {
		tx.BlockNumber = receipt.BlockNumber
	}
	if err != nil {
		tx.Status = StatusFailed
		s.lastErr = err
		s.setStateLocked(ctx, StateFailed)
	} else {
		tx.Status = StatusConfirmed
		tx.ConfirmedAt = s.now()
		s.setStateLocked(ctx, StateConfirmed)
	}
	out := *tx
	s.mu.Unlock()

	if err != nil {
		s.logger.ErrorContext(ctx, "Account creation failed", "hash", out.Hash, "error", err)
		return &out, err
	}

	s.logger.InfoContext(ctx, "Transaction confirmed", "hash", out.Hash, "block", out.BlockNumber)
	if s.onConfirmed != nil {
		s.onConfirmed(out)
	}
	return &out, nil
}

// fail moves an attempt that never reached the chain to Failed.
func (s *Submitter) fail(ctx context.Context, err error) error {
	s.mu.Lock()
	s.lastErr = err
	s.setStateLocked(ctx, StateFailed)
	s.mu.Unlock()

	s.logger.WarnContext(ctx, "Account creation rejected", "kind", errdefs.KindOf(err).String(), "error", err)
	return err
}

func (s *Submitter) setState(ctx context.Context, to State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setStateLocked(ctx, to)
}

func (s *Submitter) setStateLocked(ctx context.Context, to State) {
	from := s.state
	s.state = to
	s.logger.DebugContext(ctx, "Submission state", "from", from.String(), "to", to.String())
	if s.onTransition != nil {
		s.onTransition(from, to)
	}
}
