package ledger

import (
	"errors"
	"fmt"

	"github.com/sheikh-saqib/payments-engine/internal/models"
)

// Error kinds returned (wrapped in *RecordError) by Ledger.Apply.
// Classify with errors.Is.
var (
	ErrMissingAmount          = errors.New("missing amount")
	ErrInvalidAmount          = errors.New("amount must not be negative")
	ErrAccountFrozen          = errors.New("account frozen")
	ErrUnknownAccount         = errors.New("unknown account")
	ErrInsufficientFunds      = errors.New("insufficient available funds")
	ErrDuplicateTransactionID = errors.New("duplicate transaction id")
	ErrUnknownTransaction     = errors.New("unknown transaction")
	ErrNotDisputed            = errors.New("transaction not under dispute")
	ErrAlreadyDisputed        = errors.New("transaction already under dispute")
	ErrAlreadyChargedBack     = errors.New("transaction already charged back")
	ErrClientMismatch         = errors.New("client does not own referenced transaction")
	ErrUnknownTransactionType = errors.New("unknown transaction type")
)

// RecordError reports why a single record was rejected
type RecordError struct {
	Type     models.TransactionType
	ClientID uint16
	TxID     uint32
	Err      error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s client=%d tx=%d: %v", e.Type, e.ClientID, e.TxID, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

func reject(r models.TransactionRecord, err error) *RecordError {
	return &RecordError{Type: r.Type, ClientID: r.ClientID, TxID: r.TxID, Err: err}
}
