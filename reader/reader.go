// Package reader runs the read-only queries of the user registry contract.
//
// Strict methods (Profile, Exists, Count) decode contract outputs exactly and
// fail with errdefs.ErrQueryFailed on any transport or shape problem. The
// degrading methods (GetProfile, UserExists, UserCount) are what display code
// calls: they log the failure and return an empty or negative result.
package reader

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pilacorp/go-userregistry-sdk/contract"
	"github.com/pilacorp/go-userregistry-sdk/errdefs"
)

// Age bounds of a registered profile.
const (
	MinAge = 1
	MaxAge = 120
)

// Profile is a registry entry snapshot.
type Profile struct {
	Name           string `json:"name"`
	Age            int    `json:"age"`
	AccountAddress string `json:"accountAddress"`
}

// Querier runs a read-only contract entrypoint.
type Querier interface {
	Query(ctx context.Context, entrypoint string, args ...any) ([]any, error)
}

// Reader queries the registry contract.
type Reader struct {
	querier Querier
	logger  *slog.Logger
}

// New creates a Reader. A nil logger uses slog.Default().
func New(querier Querier, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{querier: querier, logger: logger}
}

// Profile returns the registry entry of address, or nil when the address has
// no entry. The contract reports a missing entry with a zero account address.
func (r *Reader) Profile(ctx context.Context, address string) (*Profile, error) {
	addr, err := parseAddress(address)
	if err != nil {
		return nil, err
	}

	out, err := r.querier.Query(ctx, contract.EntrypointGetUserAccount, addr)
	if err != nil {
		return nil, errdefs.Wrap(errdefs.ErrQueryFailed, err)
	}
	if len(out) != 3 {
		return nil, errdefs.Wrapf(errdefs.ErrQueryFailed, "%s returned %d values, want 3", contract.EntrypointGetUserAccount, len(out))
	}

	name, ok := out[0].(string)
	if !ok {
		return nil, errdefs.Wrapf(errdefs.ErrQueryFailed, "unexpected name type: %T", out[0])
	}
	age, ok := out[1].(uint8)
	if !ok {
		return nil, errdefs.Wrapf(errdefs.ErrQueryFailed, "unexpected age type: %T", out[1])
	}
	account, ok := out[2].(common.Address)
	if !ok {
		return nil, errdefs.Wrapf(errdefs.ErrQueryFailed, "unexpected account_address type: %T", out[2])
	}

	if account == (common.Address{}) {
		return nil, nil
	}
	if age < MinAge || age > MaxAge {
		return nil, errdefs.Wrapf(errdefs.ErrQueryFailed, "registered age %d out of range", age)
	}
	if name == "" {
		return nil, errdefs.Wrapf(errdefs.ErrQueryFailed, "registered profile of %s has an empty name", account.Hex())
	}

	return &Profile{
		Name:           name,
		Age:            int(age),
		AccountAddress: account.Hex(),
	}, nil
}

// Exists reports whether address has a registry entry.
func (r *Reader) Exists(ctx context.Context, address string) (bool, error) {
	addr, err := parseAddress(address)
	if err != nil {
		return false, err
	}

	out, err := r.querier.Query(ctx, contract.EntrypointUserExists, addr)
	if err != nil {
		return false, errdefs.Wrap(errdefs.ErrQueryFailed, err)
	}
	if len(out) != 1 {
		return false, errdefs.Wrapf(errdefs.ErrQueryFailed, "%s returned %d values, want 1", contract.EntrypointUserExists, len(out))
	}
	exists, ok := out[0].(bool)
	if !ok {
		return false, errdefs.Wrapf(errdefs.ErrQueryFailed, "unexpected output type: %T", out[0])
	}
	return exists, nil
}

// Count returns the number of registered users.
func (r *Reader) Count(ctx context.Context) (int64, error) {
	out, err := r.querier.Query(ctx, contract.EntrypointGetUserCount)
	if err != nil {
		return 0, errdefs.Wrap(errdefs.ErrQueryFailed, err)
	}
	if len(out) != 1 {
		return 0, errdefs.Wrapf(errdefs.ErrQueryFailed, "%s returned %d values, want 1", contract.EntrypointGetUserCount, len(out))
	}
	count, ok := out[0].(*big.Int)
	if !ok || count == nil {
		return 0, errdefs.Wrapf(errdefs.ErrQueryFailed, "unexpected output type: %T", out[0])
	}
	if count.Sign() < 0 || !count.IsInt64() {
		return 0, errdefs.Wrapf(errdefs.ErrQueryFailed, "user count %s out of range", count)
	}
	return count.Int64(), nil
}

// GetProfile is Profile with failures absorbed: it returns nil and logs.
func (r *Reader) GetProfile(ctx context.Context, address string) *Profile {
	p, err := r.Profile(ctx, address)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error fetching user account", "address", address, "error", err)
		return nil
	}
	return p
}

// UserExists is Exists with failures absorbed: it returns false and logs.
func (r *Reader) UserExists(ctx context.Context, address string) bool {
	ok, err := r.Exists(ctx, address)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error checking user existence", "address", address, "error", err)
		return false
	}
	return ok
}

// UserCount is Count with failures absorbed: it returns 0 and logs.
func (r *Reader) UserCount(ctx context.Context) int64 {
	n, err := r.Count(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error checking user count", "error", err)
		return 0
	}
	return n
}

func parseAddress(address string) (common.Address, error) {
	if !common.IsHexAddress(address) {
		return common.Address{}, errdefs.Wrap(errdefs.ErrQueryFailed, fmt.Errorf("invalid address %q", address))
	}
	return common.HexToAddress(address), nil
}
