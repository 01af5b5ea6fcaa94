// Package ledger holds player balances for wagered games.
package ledger

import (
	"context"
	"errors"
	"sync"
)

// ErrInsufficientFunds is returned when a player cannot cover a stake
var ErrInsufficientFunds = errors.New("insufficient funds")

// Account is a player's money, split between cash on hand and the bank
type Account struct {
	OnHand int
	Banked int
}

// Spendable is everything a player can put on the table
func (a Account) Spendable() int {
	return a.OnHand + a.Banked
}

// Apply returns the account after a net game delta. Losses come out of OnHand
// first and only then out of Banked, winnings always land in OnHand.
func (a Account) Apply(delta int) Account {
	switch {
	case delta >= 0:
		a.OnHand += delta
	case a.OnHand >= -delta:
		a.OnHand += delta
	default:
		a.Banked += a.OnHand + delta
		a.OnHand = 0
	}
	return a
}

// Ledger reads and mutates balances
type Ledger interface {
	Balance(ctx context.Context, playerID string) (Account, error)
	Apply(ctx context.Context, playerID string, delta int) error
}

// CanAfford checks a player's spendable balance against a stake
func CanAfford(ctx context.Context, l Ledger, playerID string, stake int) (int, error) {
	acct, err := l.Balance(ctx, playerID)
	if err != nil {
		return 0, err
	}
	if acct.Spendable() < stake {
		return acct.Spendable(), ErrInsufficientFunds
	}
	return acct.Spendable(), nil
}

// Memory is an in-process Ledger
type Memory struct {
	mu       sync.Mutex
	accounts map[string]Account
}

func NewMemory() *Memory {
	return &Memory{accounts: make(map[string]Account)}
}

// Set overwrites an account
func (m *Memory) Set(playerID string, acct Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[playerID] = acct
}

func (m *Memory) Balance(_ context.Context, playerID string) (Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.accounts[playerID], nil
}

func (m *Memory) Apply(_ context.Context, playerID string, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[playerID] = m.accounts[playerID].Apply(delta)
	return nil
}
