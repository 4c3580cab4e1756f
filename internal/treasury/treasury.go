// Package treasury holds the funds the DAO spends from and provides the
// atomic value-transfer primitive executed proposals go through. The debit
// of the treasury and the credit of the recipient's payout record commit
// together or not at all.
package treasury

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/holiman/uint256"

	"github.com/yaymalaga/Investment-dao/internal/dao"
	"github.com/yaymalaga/Investment-dao/pkg/db"
)

// ErrInsufficientFunds is returned by Transfer when the treasury balance
// cannot cover the amount.
var ErrInsufficientFunds = errors.New("treasury: insufficient funds")

// Key layout: [prefixBalance] holds the treasury balance, accumulated
// payouts live under [prefixPayout][account(32 bytes)]. Values are 32-byte
// big-endian.
const (
	prefixBalance byte = iota + 1
	prefixPayout
)

// Treasury is a durable fund store over a KVStore. It implements
// dao.Treasury.
type Treasury struct {
	mu sync.RWMutex
	kv db.KVStore
}

func New(kv db.KVStore) *Treasury {
	return &Treasury{kv: kv}
}

var _ dao.Treasury = (*Treasury)(nil)

// Balance returns the funds currently held.
func (t *Treasury) Balance() (*uint256.Int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.readAmount([]byte{prefixBalance})
}

// PaidOut returns the total amount ever transferred to account.
func (t *Treasury) PaidOut(account dao.AccountID) (*uint256.Int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.readAmount(payoutKey(account))
}

// Deposit adds funds to the treasury.
func (t *Treasury) Deposit(amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	balance, err := t.readAmount([]byte{prefixBalance})
	if err != nil {
		return err
	}
	return t.putAmount([]byte{prefixBalance}, new(uint256.Int).Add(balance, amount))
}

// Transfer debits amount from the treasury and credits account's payout
// record, atomically. A failed transfer has no effect.
func (t *Treasury) Transfer(to dao.AccountID, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	balance, err := t.readAmount([]byte{prefixBalance})
	if err != nil {
		return err
	}
	if balance.Cmp(amount) < 0 {
		return ErrInsufficientFunds
	}
	paid, err := t.readAmount(payoutKey(to))
	if err != nil {
		return err
	}

	batch := t.kv.NewBatch()
	defer func() {
		if err := batch.Close(); err != nil {
			log.Printf("error closing batch: %v", err)
		}
	}()

	newBalance := new(uint256.Int).Sub(balance, amount)
	raw := newBalance.Bytes32()
	if err := batch.Put([]byte{prefixBalance}, raw[:]); err != nil {
		return fmt.Errorf("put balance: %w", err)
	}
	newPaid := new(uint256.Int).Add(paid, amount)
	raw = newPaid.Bytes32()
	if err := batch.Put(payoutKey(to), raw[:]); err != nil {
		return fmt.Errorf("put payout: %w", err)
	}
	if err := batch.Commit(); err != nil {
		return fmt.Errorf("commit transfer: %w", err)
	}
	return nil
}

func (t *Treasury) readAmount(key []byte) (*uint256.Int, error) {
	ok, err := t.kv.Has(key)
	if err != nil {
		return nil, fmt.Errorf("check amount: %w", err)
	}
	if !ok {
		return uint256.NewInt(0), nil
	}
	raw, err := t.kv.Get(key)
	if err != nil {
		return nil, fmt.Errorf("get amount: %w", err)
	}
	return new(uint256.Int).SetBytes(raw), nil
}

func (t *Treasury) putAmount(key []byte, amount *uint256.Int) error {
	raw := amount.Bytes32()
	if err := t.kv.Put(key, raw[:]); err != nil {
		return fmt.Errorf("put amount: %w", err)
	}
	return nil
}

func payoutKey(account dao.AccountID) []byte {
	key := make([]byte, 1+len(account))
	key[0] = prefixPayout
	copy(key[1:], account[:])
	return key
}
