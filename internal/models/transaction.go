package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionType is the operation a record performs on a client's account
type TransactionType string

const (
	Deposit    TransactionType = "deposit"
	Withdrawal TransactionType = "withdrawal"
	Dispute    TransactionType = "dispute"
	Resolve    TransactionType = "resolve"
	Chargeback TransactionType = "chargeback"
)

// ParseTransactionType maps an input column value to a TransactionType, ignoring case
func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(strings.ToLower(strings.TrimSpace(s))); t {
	case Deposit, Withdrawal, Dispute, Resolve, Chargeback:
		return t, nil
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}

// TransactionRecord represents one row of the input.
// Deposits and withdrawals carry an Amount; disputes, resolves and chargebacks
// reference an earlier deposit/withdrawal through TxID and have none.
type TransactionRecord struct {
	Type     TransactionType
	ClientID uint16
	TxID     uint32
	Amount   decimal.NullDecimal
}

// NewTransactionRecord builds a record carrying an amount
func NewTransactionRecord(t TransactionType, clientID uint16, txID uint32, amount decimal.Decimal) TransactionRecord {
	return TransactionRecord{
		Type:     t,
		ClientID: clientID,
		TxID:     txID,
		Amount:   decimal.NewNullDecimal(amount),
	}
}

// NewReferenceRecord builds an amount-less record pointing at a prior TxID
func NewReferenceRecord(t TransactionType, clientID uint16, txID uint32) TransactionRecord {
	return TransactionRecord{Type: t, ClientID: clientID, TxID: txID}
}
