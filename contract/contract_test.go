package contract

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pilacorp/go-userregistry-sdk/signer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testContractAddr = "0x6aD11619F8912f800A6f5CF05BD63Bb60e7ad160"
	testPrivHex      = "0xa285ab66393c5fdda46d6fbad9e27fafd438254ab72ad5acb681a0e9f20f5d7b"
	testChainID      = int64(31337)
)

type fakeCaller struct {
	abi     abi.ABI
	outputs map[string][]any
	err     error
	calls   []string
}

func (f *fakeCaller) CodeAt(ctx context.Context, contract common.Address, blockNumber *big.Int) ([]byte, error) {
	return []byte{0x60}, nil
}

func (f *fakeCaller) CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	method, err := f.abi.MethodById(call.Data[:4])
	if err != nil {
		return nil, err
	}
	f.calls = append(f.calls, method.Name)
	return method.Outputs.Pack(f.outputs[method.Name]...)
}

type fakeTransactor struct {
	sent    []*types.Transaction
	sendErr error
}

func (f *fakeTransactor) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	return &types.Header{Number: big.NewInt(1)}, nil
}

func (f *fakeTransactor) PendingCodeAt(ctx context.Context, account common.Address) ([]byte, error) {
	return []byte{0x60}, nil
}

func (f *fakeTransactor) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	return 7, nil
}

func (f *fakeTransactor) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (f *fakeTransactor) SuggestGasTipCap(ctx context.Context) (*big.Int, error) {
	return big.NewInt(1), nil
}

func (f *fakeTransactor) EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error) {
	return 90000, nil
}

func (f *fakeTransactor) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, tx)
	return nil
}

type fakeReceipts struct {
	mu      sync.Mutex
	pending int
	receipt *types.Receipt
	err     error
	lookups int
}

func (f *fakeReceipts) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++
	if f.err != nil {
		return nil, f.err
	}
	if f.lookups <= f.pending {
		return nil, ethereum.NotFound
	}
	r := *f.receipt
	r.TxHash = txHash
	return &r, nil
}

func newTestContract(t *testing.T, caller *fakeCaller, tr *fakeTransactor, rc *fakeReceipts) *Contract {
	t.Helper()
	cfg := Config{ContractAddress: testContractAddr, ChainID: testChainID, PollInterval: 5 * time.Millisecond}

	var (
		c   *Contract
		err error
	)
	// Keep nil backends as untyped nil interfaces.
	switch {
	case tr == nil && rc == nil:
		c, err = New(cfg, caller, nil, nil)
	case rc == nil:
		c, err = New(cfg, caller, tr, nil)
	default:
		c, err = New(cfg, caller, tr, rc)
	}
	require.NoError(t, err)
	return c
}

func TestLoadABI(t *testing.T) {
	parsed, err := ABI()
	require.NoError(t, err)

	for _, name := range []string{EntrypointCreateAccount, EntrypointGetUserAccount, EntrypointUserExists, EntrypointGetUserCount} {
		_, ok := parsed.Methods[name]
		assert.True(t, ok, "missing method %s", name)
	}
	_, ok := parsed.Events["AccountCreated"]
	assert.True(t, ok)
}

func TestNewValidatesConfig(t *testing.T) {
	_, err := New(Config{ContractAddress: "not-an-address"}, nil, nil, nil)
	require.Error(t, err)
}

func TestQuery(t *testing.T) {
	parsed, err := ABI()
	require.NoError(t, err)

	owner := common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	caller := &fakeCaller{
		abi: parsed,
		outputs: map[string][]any{
			EntrypointGetUserAccount: {"Alice", uint8(30), owner},
			EntrypointUserExists:     {true},
			EntrypointGetUserCount:   {big.NewInt(12)},
		},
	}
	c := newTestContract(t, caller, nil, nil)
	ctx := context.Background()

	out, err := c.Query(ctx, EntrypointGetUserAccount, owner)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "Alice", out[0])
	assert.Equal(t, uint8(30), out[1])
	assert.Equal(t, owner, out[2])

	out, err = c.Query(ctx, EntrypointUserExists, owner)
	require.NoError(t, err)
	assert.Equal(t, []any{true}, out)

	out, err = c.Query(ctx, EntrypointGetUserCount)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 0, big.NewInt(12).Cmp(out[0].(*big.Int)))

	assert.Equal(t, []string{EntrypointGetUserAccount, EntrypointUserExists, EntrypointGetUserCount}, caller.calls)
}

func TestQueryTransportError(t *testing.T) {
	parsed, err := ABI()
	require.NoError(t, err)

	c := newTestContract(t, &fakeCaller{abi: parsed, err: errors.New("connection refused")}, nil, nil)
	_, err = c.Query(context.Background(), EntrypointGetUserCount)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestQueryWithoutCaller(t *testing.T) {
	c, err := New(Config{ContractAddress: testContractAddr}, nil, nil, nil)
	require.NoError(t, err)
	_, err = c.Query(context.Background(), EntrypointGetUserCount)
	require.Error(t, err)
}

func TestExecute(t *testing.T) {
	parsed, err := ABI()
	require.NoError(t, err)
	provider, err := signer.NewDefaultProvider(testPrivHex)
	require.NoError(t, err)

	tr := &fakeTransactor{}
	c := newTestContract(t, &fakeCaller{abi: parsed}, tr, nil)

	result, err := c.Execute(context.Background(), provider, Call{
		ContractAddress: testContractAddr,
		Entrypoint:      EntrypointCreateAccount,
		Calldata:        []any{"Alice", uint8(30)},
	})
	require.NoError(t, err)
	require.Len(t, tr.sent, 1)

	tx := tr.sent[0]
	assert.Equal(t, tx.Hash().Hex(), result.TxHash)
	assert.Equal(t, uint64(7), tx.Nonce())
	assert.Equal(t, common.HexToAddress(testContractAddr), *tx.To())

	from, err := types.Sender(types.LatestSignerForChainID(big.NewInt(testChainID)), tx)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(provider.GetAddress()), from)

	method, err := parsed.MethodById(tx.Data()[:4])
	require.NoError(t, err)
	assert.Equal(t, EntrypointCreateAccount, method.Name)
	args, err := method.Inputs.Unpack(tx.Data()[4:])
	require.NoError(t, err)
	assert.Equal(t, []any{"Alice", uint8(30)}, args)

	decoded, err := TxFromHex(result.TxHex)
	require.NoError(t, err)
	assert.Equal(t, tx.Hash(), decoded.Hash())
}

func TestExecuteRejects(t *testing.T) {
	parsed, err := ABI()
	require.NoError(t, err)
	provider, err := signer.NewDefaultProvider(testPrivHex)
	require.NoError(t, err)

	tests := []struct {
		name    string
		call    Call
		sendErr error
		wantErr string
	}{
		{
			name:    "other contract",
			call:    Call{ContractAddress: "0x70997970C51812dc3A010C7d01b50e0d17dc79C8", Entrypoint: EntrypointCreateAccount, Calldata: []any{"Alice", uint8(30)}},
			wantErr: "client is bound to",
		},
		{
			name:    "unknown entrypoint",
			call:    Call{ContractAddress: testContractAddr, Entrypoint: "delete_account"},
			wantErr: "unknown entrypoint",
		},
		{
			name:    "bad calldata",
			call:    Call{ContractAddress: testContractAddr, Entrypoint: EntrypointCreateAccount, Calldata: []any{"Alice", "thirty"}},
			wantErr: "create_account",
		},
		{
			name:    "node rejects",
			call:    Call{ContractAddress: testContractAddr, Entrypoint: EntrypointCreateAccount, Calldata: []any{"Alice", uint8(30)}},
			sendErr: errors.New("insufficient funds for gas"),
			wantErr: "insufficient funds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &fakeTransactor{sendErr: tt.sendErr}
			c := newTestContract(t, &fakeCaller{abi: parsed}, tr, nil)

			_, err := c.Execute(context.Background(), provider, tt.call)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Empty(t, tr.sent)
		})
	}
}

func TestAwaitReceipt(t *testing.T) {
	hash := "0x" + common.Bytes2Hex(common.LeftPadBytes([]byte{0xab}, 32))

	tests := []struct {
		name     string
		receipts *fakeReceipts
		ctx      func() (context.Context, context.CancelFunc)
		validate func(t *testing.T, r *Receipt, rc *fakeReceipts, err error)
	}{
		{
			name: "mined after polling",
			receipts: &fakeReceipts{
				pending: 2,
				receipt: &types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(99), GasUsed: 52000},
			},
			validate: func(t *testing.T, r *Receipt, rc *fakeReceipts, err error) {
				require.NoError(t, err)
				assert.True(t, r.Succeeded)
				assert.Equal(t, uint64(99), r.BlockNumber)
				assert.Equal(t, uint64(52000), r.GasUsed)
				assert.Equal(t, hash, r.TxHash)
				assert.Equal(t, 3, rc.lookups)
			},
		},
		{
			name:     "reverted",
			receipts: &fakeReceipts{receipt: &types.Receipt{Status: types.ReceiptStatusFailed, BlockNumber: big.NewInt(5)}},
			validate: func(t *testing.T, r *Receipt, rc *fakeReceipts, err error) {
				require.NoError(t, err)
				assert.False(t, r.Succeeded)
			},
		},
		{
			name:     "lookup error is terminal",
			receipts: &fakeReceipts{err: errors.New("rpc unavailable")},
			validate: func(t *testing.T, r *Receipt, rc *fakeReceipts, err error) {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "rpc unavailable")
				assert.Equal(t, 1, rc.lookups)
			},
		},
		{
			name:     "caller deadline",
			receipts: &fakeReceipts{pending: 1 << 30},
			ctx: func() (context.Context, context.CancelFunc) {
				return context.WithTimeout(context.Background(), 30*time.Millisecond)
			},
			validate: func(t *testing.T, r *Receipt, rc *fakeReceipts, err error) {
				require.ErrorIs(t, err, context.DeadlineExceeded)
				assert.Nil(t, r)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.Background(), context.CancelFunc(func() {})
			if tt.ctx != nil {
				ctx, cancel = tt.ctx()
			}
			defer cancel()

			c := newTestContract(t, nil, nil, tt.receipts)
			r, err := c.AwaitReceipt(ctx, hash)
			tt.validate(t, r, tt.receipts, err)
		})
	}
}

func TestAwaitReceiptInvalidHash(t *testing.T) {
	c := newTestContract(t, nil, nil, &fakeReceipts{})
	_, err := c.AwaitReceipt(context.Background(), "0x1234")
	require.Error(t, err)
}
