package ledger

import (
	"fmt"

	interfaces "github.com/sheikh-saqib/payments-engine/internal/interfaces"
	"github.com/sheikh-saqib/payments-engine/internal/models"
	"github.com/shopspring/decimal"
)

// OwnershipPolicy decides which account a dispute, resolve or chargeback acts on
type OwnershipPolicy int

const (
	// OwnershipStrict acts on the client that owns the stored transaction and
	// rejects records naming any other client.
	OwnershipStrict OwnershipPolicy = iota
	// OwnershipTrustRecord acts on the client named by the current record.
	OwnershipTrustRecord
)

func (p OwnershipPolicy) String() string {
	switch p {
	case OwnershipStrict:
		return "strict"
	case OwnershipTrustRecord:
		return "trust"
	default:
		return fmt.Sprintf("OwnershipPolicy(%d)", int(p))
	}
}

// ParseOwnershipPolicy accepts "strict" or "trust"
func ParseOwnershipPolicy(s string) (OwnershipPolicy, error) {
	switch s {
	case "strict":
		return OwnershipStrict, nil
	case "trust":
		return OwnershipTrustRecord, nil
	}
	return 0, fmt.Errorf("invalid ownership policy %q", s)
}

// Option configures a Ledger
type Option func(*Ledger)

// WithOwnershipPolicy overrides the default OwnershipStrict policy
func WithOwnershipPolicy(p OwnershipPolicy) Option {
	return func(l *Ledger) {
		l.ownership = p
	}
}

// Ledger applies transaction records to client accounts.
// Every handler validates before it mutates, so a rejected record leaves the store untouched.
type Ledger struct {
	store     interfaces.LedgerStore
	ownership OwnershipPolicy
}

// NewLedger is a constructor function that creates a new Ledger instance
// over the given store (MemoryLedgerStore in practice).
func NewLedger(store interfaces.LedgerStore, opts ...Option) *Ledger {
	l := &Ledger{store: store, ownership: OwnershipStrict}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Apply is the single entry point: it dispatches the record to its handler.
// A non-nil error is always a *RecordError.
func (l *Ledger) Apply(r models.TransactionRecord) error {
	var err error
	switch r.Type {
	case models.Deposit:
		err = l.deposit(r)
	case models.Withdrawal:
		err = l.withdrawal(r)
	case models.Dispute:
		err = l.dispute(r)
	case models.Resolve:
		err = l.resolve(r)
	case models.Chargeback:
		err = l.chargeback(r)
	default:
		err = ErrUnknownTransactionType
	}
	if err != nil {
		return reject(r, err)
	}
	return nil
}

// Account returns a copy of the client's account
func (l *Ledger) Account(clientID uint16) (models.Account, bool) {
	return l.store.GetAccount(clientID)
}

// Accounts returns copies of all accounts ordered by client id
func (l *Ledger) Accounts() []models.Account {
	return l.store.GetAccounts()
}

func (l *Ledger) deposit(r models.TransactionRecord) error {
	amount, err := expectAmount(r)
	if err != nil {
		return err
	}
	if err := l.expectNewTxID(r.TxID); err != nil {
		return err
	}

	// Get or init account; it is only saved once the deposit is accepted
	account, ok := l.store.GetAccount(r.ClientID)
	if !ok {
		account = models.NewAccount(r.ClientID)
	}
	if account.Frozen {
		return ErrAccountFrozen
	}

	account.Available = account.Available.Add(amount)
	account.Total = account.Total.Add(amount)

	return l.commit(account, r)
}

func (l *Ledger) withdrawal(r models.TransactionRecord) error {
	amount, err := expectAmount(r)
	if err != nil {
		return err
	}
	if err := l.expectNewTxID(r.TxID); err != nil {
		return err
	}

	account, ok := l.store.GetAccount(r.ClientID)
	if !ok {
		return ErrUnknownAccount
	}
	if account.Frozen {
		return ErrAccountFrozen
	}
	if account.Available.LessThan(amount) {
		return fmt.Errorf("%w: available %s, requested %s", ErrInsufficientFunds, account.Available, amount)
	}

	account.Available = account.Available.Sub(amount)
	account.Total = account.Total.Sub(amount)

	return l.commit(account, r)
}

func (l *Ledger) dispute(r models.TransactionRecord) error {
	stored, account, err := l.referenced(r)
	if err != nil {
		return err
	}
	amount, err := expectAmount(stored)
	if err != nil {
		return err
	}
	if l.store.IsDisputed(r.TxID) {
		return ErrAlreadyDisputed
	}
	if l.store.IsChargedBack(r.TxID) {
		return ErrAlreadyChargedBack
	}

	// Funds move from available to held; total is unchanged
	account.Available = account.Available.Sub(amount)
	account.Held = account.Held.Add(amount)

	l.store.SetDisputed(r.TxID, true)
	l.store.SaveAccount(account)
	return nil
}

func (l *Ledger) resolve(r models.TransactionRecord) error {
	stored, account, err := l.referenced(r)
	if err != nil {
		return err
	}
	amount, err := expectAmount(stored)
	if err != nil {
		return err
	}
	if !l.store.IsDisputed(r.TxID) {
		return ErrNotDisputed
	}

	account.Held = account.Held.Sub(amount)
	account.Available = account.Available.Add(amount)

	l.store.SetDisputed(r.TxID, false)
	l.store.SaveAccount(account)
	return nil
}

func (l *Ledger) chargeback(r models.TransactionRecord) error {
	stored, account, err := l.referenced(r)
	if err != nil {
		return err
	}
	amount, err := expectAmount(stored)
	if err != nil {
		return err
	}
	if !l.store.IsDisputed(r.TxID) {
		return ErrNotDisputed
	}

	// Held funds leave the ledger entirely
	account.Held = account.Held.Sub(amount)
	account.Total = account.Total.Sub(amount)
	account.Frozen = true

	l.store.SetDisputed(r.TxID, false)
	l.store.MarkChargedBack(r.TxID)
	l.store.SaveAccount(account)
	return nil
}

// referenced looks up the stored transaction a dispute/resolve/chargeback points at
// and the account it acts on under the ledger's ownership policy.
func (l *Ledger) referenced(r models.TransactionRecord) (models.TransactionRecord, models.Account, error) {
	stored, ok := l.store.GetTransaction(r.TxID)
	if !ok {
		return models.TransactionRecord{}, models.Account{}, ErrUnknownTransaction
	}

	owner := r.ClientID
	if l.ownership == OwnershipStrict {
		if stored.ClientID != r.ClientID {
			return models.TransactionRecord{}, models.Account{}, fmt.Errorf("%w: tx %d belongs to client %d", ErrClientMismatch, stored.TxID, stored.ClientID)
		}
		owner = stored.ClientID
	}

	account, ok := l.store.GetAccount(owner)
	if !ok {
		return models.TransactionRecord{}, models.Account{}, ErrUnknownAccount
	}
	return stored, account, nil
}

func (l *Ledger) expectNewTxID(txID uint32) error {
	if _, exists := l.store.GetTransaction(txID); exists {
		return ErrDuplicateTransactionID
	}
	return nil
}

// commit stores the history record first so the account is never updated for a record that was not kept
func (l *Ledger) commit(account models.Account, r models.TransactionRecord) error {
	if err := l.store.SaveTransaction(r); err != nil {
		return ErrDuplicateTransactionID
	}
	l.store.SaveAccount(account)
	return nil
}

func expectAmount(r models.TransactionRecord) (decimal.Decimal, error) {
	if !r.Amount.Valid {
		return decimal.Zero, ErrMissingAmount
	}
	if r.Amount.Decimal.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	return r.Amount.Decimal, nil
}
