package models

import "github.com/shopspring/decimal"

// Account represents a client's balances.
// Total is kept equal to Available + Held by every mutation; it is never recomputed.
type Account struct {
	ID        uint16
	Available decimal.Decimal // funds usable for withdrawal
	Held      decimal.Decimal // funds locked by an active dispute
	Total     decimal.Decimal
	Frozen    bool // set by a chargeback, never cleared
}

// NewAccount returns an all-zero, unfrozen account
func NewAccount(id uint16) Account {
	return Account{
		ID:        id,
		Available: decimal.Zero,
		Held:      decimal.Zero,
		Total:     decimal.Zero,
	}
}
