package interfaces

import (
	"errors"

	"github.com/sheikh-saqib/payments-engine/internal/models"
)

// ErrTransactionExists is returned by SaveTransaction when the tx id is already taken.
// The stored record is left as it was.
var ErrTransactionExists = errors.New("transaction id already stored")

// LedgerStore holds the ledger's keyed state: accounts, transaction history,
// the disputed set and the charged-back set.
type LedgerStore interface {
	GetAccount(clientID uint16) (models.Account, bool)
	SaveAccount(account models.Account)
	GetAccounts() []models.Account

	GetTransaction(txID uint32) (models.TransactionRecord, bool)
	SaveTransaction(record models.TransactionRecord) error

	IsDisputed(txID uint32) bool
	SetDisputed(txID uint32, disputed bool)

	IsChargedBack(txID uint32) bool
	MarkChargedBack(txID uint32)
}
