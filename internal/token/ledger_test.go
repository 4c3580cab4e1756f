package token

import (
	"context"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaymalaga/Investment-dao/internal/dao"
	"github.com/yaymalaga/Investment-dao/pkg/db/pebble"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	kv, err := pebble.NewMemKVStore()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, kv.Close())
	})
	return NewLedger(kv)
}

func account(b byte) dao.AccountID {
	var a dao.AccountID
	a[0] = b
	return a
}

func TestEmptyLedger(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()

	supply, err := ledger.TotalSupply(ctx)
	require.NoError(t, err)
	assert.True(t, supply.IsZero())

	balance, err := ledger.BalanceOf(ctx, account(0x01))
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestMint(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()
	holder := account(0x01)

	require.NoError(t, ledger.Mint(holder, uint256.NewInt(1000)))
	require.NoError(t, ledger.Mint(holder, uint256.NewInt(500)))

	supply, err := ledger.TotalSupply(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(1500), supply)

	balance, err := ledger.BalanceOf(ctx, holder)
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(1500), balance)
}

func TestTransfer(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()
	alice := account(0x01)
	bob := account(0x02)

	require.NoError(t, ledger.Mint(alice, uint256.NewInt(1000)))

	err := ledger.Transfer(alice, bob, uint256.NewInt(400))
	require.NoError(t, err)

	aliceBalance, err := ledger.BalanceOf(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(600), aliceBalance)

	bobBalance, err := ledger.BalanceOf(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(400), bobBalance)

	// Transfers never change the total supply.
	supply, err := ledger.TotalSupply(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(1000), supply)
}

func TestTransferInsufficientFunds(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()
	alice := account(0x01)
	bob := account(0x02)

	require.NoError(t, ledger.Mint(alice, uint256.NewInt(100)))

	err := ledger.Transfer(alice, bob, uint256.NewInt(101))
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	// A failed transfer leaves both balances untouched.
	aliceBalance, err := ledger.BalanceOf(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(100), aliceBalance)

	bobBalance, err := ledger.BalanceOf(ctx, bob)
	require.NoError(t, err)
	assert.True(t, bobBalance.IsZero())
}

func TestSelfTransfer(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()
	alice := account(0x01)

	require.NoError(t, ledger.Mint(alice, uint256.NewInt(100)))
	require.NoError(t, ledger.Transfer(alice, alice, uint256.NewInt(40)))

	balance, err := ledger.BalanceOf(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(100), balance)
}
