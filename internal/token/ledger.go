// Package token is the DAO's governance token: a minimal fungible-token
// ledger with a fixed set of operations (mint, transfer, balance and supply
// queries). The governor only ever consults the two read queries; mint and
// transfer exist so holders can be funded and can move influence around.
package token

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/holiman/uint256"

	"github.com/yaymalaga/Investment-dao/internal/dao"
	"github.com/yaymalaga/Investment-dao/pkg/db"
)

var (
	// ErrInsufficientFunds is returned by Transfer when the sender's
	// balance cannot cover the amount.
	ErrInsufficientFunds = errors.New("token: insufficient funds")

	// ErrSupplyOverflow is returned by Mint when the new total supply
	// would not be representable.
	ErrSupplyOverflow = errors.New("token: total supply overflow")
)

// Key layout: [prefixSupply] holds the total supply, balances live under
// [prefixBalance][account(32 bytes)]. All values are 32-byte big-endian.
const (
	prefixSupply byte = iota + 1
	prefixBalance
)

// Ledger is a durable token ledger over a KVStore. It implements
// dao.TokenLedger.
type Ledger struct {
	mu sync.RWMutex
	kv db.KVStore
}

func NewLedger(kv db.KVStore) *Ledger {
	return &Ledger{kv: kv}
}

var _ dao.TokenLedger = (*Ledger)(nil)

// TotalSupply returns the sum of all minted tokens.
func (l *Ledger) TotalSupply(_ context.Context) (*uint256.Int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.readAmount([]byte{prefixSupply})
}

// BalanceOf returns account's balance; accounts never seen before hold zero.
func (l *Ledger) BalanceOf(_ context.Context, account dao.AccountID) (*uint256.Int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.readAmount(balanceKey(account))
}

// Mint credits amount to account and grows the total supply, atomically.
func (l *Ledger) Mint(account dao.AccountID, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	supply, err := l.readAmount([]byte{prefixSupply})
	if err != nil {
		return err
	}
	newSupply := new(uint256.Int)
	if _, overflow := newSupply.AddOverflow(supply, amount); overflow {
		return ErrSupplyOverflow
	}
	balance, err := l.readAmount(balanceKey(account))
	if err != nil {
		return err
	}

	batch := l.kv.NewBatch()
	defer func() {
		if err := batch.Close(); err != nil {
			log.Printf("error closing batch: %v", err)
		}
	}()

	if err := putAmount(batch, []byte{prefixSupply}, newSupply); err != nil {
		return err
	}
	if err := putAmount(batch, balanceKey(account), new(uint256.Int).Add(balance, amount)); err != nil {
		return err
	}
	if err := batch.Commit(); err != nil {
		return fmt.Errorf("commit mint: %w", err)
	}
	return nil
}

// Transfer moves amount from one account to another, atomically.
func (l *Ledger) Transfer(from, to dao.AccountID, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	fromBalance, err := l.readAmount(balanceKey(from))
	if err != nil {
		return err
	}
	if fromBalance.Cmp(amount) < 0 {
		return ErrInsufficientFunds
	}
	toBalance, err := l.readAmount(balanceKey(to))
	if err != nil {
		return err
	}

	batch := l.kv.NewBatch()
	defer func() {
		if err := batch.Close(); err != nil {
			log.Printf("error closing batch: %v", err)
		}
	}()

	if err := putAmount(batch, balanceKey(from), new(uint256.Int).Sub(fromBalance, amount)); err != nil {
		return err
	}
	// Self-transfers must not double the balance.
	if from == to {
		toBalance = new(uint256.Int).Sub(fromBalance, amount)
	}
	if err := putAmount(batch, balanceKey(to), new(uint256.Int).Add(toBalance, amount)); err != nil {
		return err
	}
	if err := batch.Commit(); err != nil {
		return fmt.Errorf("commit transfer: %w", err)
	}
	return nil
}

func (l *Ledger) readAmount(key []byte) (*uint256.Int, error) {
	ok, err := l.kv.Has(key)
	if err != nil {
		return nil, fmt.Errorf("check amount: %w", err)
	}
	if !ok {
		return uint256.NewInt(0), nil
	}
	raw, err := l.kv.Get(key)
	if err != nil {
		return nil, fmt.Errorf("get amount: %w", err)
	}
	return new(uint256.Int).SetBytes(raw), nil
}

func putAmount(w db.Writer, key []byte, amount *uint256.Int) error {
	raw := amount.Bytes32()
	if err := w.Put(key, raw[:]); err != nil {
		return fmt.Errorf("put amount: %w", err)
	}
	return nil
}

func balanceKey(account dao.AccountID) []byte {
	key := make([]byte, 1+len(account))
	key[0] = prefixBalance
	copy(key[1:], account[:])
	return key
}
