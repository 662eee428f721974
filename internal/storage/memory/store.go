package memory

import (
	"cmp"
	"slices"

	interfaces "github.com/sheikh-saqib/payments-engine/internal/interfaces"
	"github.com/sheikh-saqib/payments-engine/internal/models"
)

// MemoryLedgerStore is an in-memory implementation of interfaces.LedgerStore.
// It is owned by a single ledger and is not safe for concurrent use.
type MemoryLedgerStore struct {
	accounts     map[uint16]models.Account           // client id -> account
	transactions map[uint32]models.TransactionRecord // tx id -> first deposit/withdrawal stored under it
	disputed     map[uint32]struct{}                 // tx ids under active dispute
	chargedBack  map[uint32]struct{}                 // tx ids settled by chargeback
}

// NewMemoryLedgerStore creates and returns an empty MemoryLedgerStore
func NewMemoryLedgerStore() *MemoryLedgerStore {
	return &MemoryLedgerStore{
		accounts:     make(map[uint16]models.Account),
		transactions: make(map[uint32]models.TransactionRecord),
		disputed:     make(map[uint32]struct{}),
		chargedBack:  make(map[uint32]struct{}),
	}
}

func (m *MemoryLedgerStore) GetAccount(clientID uint16) (models.Account, bool) {
	account, ok := m.accounts[clientID]
	return account, ok
}

func (m *MemoryLedgerStore) SaveAccount(account models.Account) {
	m.accounts[account.ID] = account
}

// GetAccounts returns a copy of every account, ordered by client id
func (m *MemoryLedgerStore) GetAccounts() []models.Account {
	out := make([]models.Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b models.Account) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

func (m *MemoryLedgerStore) GetTransaction(txID uint32) (models.TransactionRecord, bool) {
	record, ok := m.transactions[txID]
	return record, ok
}

// SaveTransaction stores the record under its TxID, keeping the first one on collision
func (m *MemoryLedgerStore) SaveTransaction(record models.TransactionRecord) error {
	if _, exists := m.transactions[record.TxID]; exists {
		return interfaces.ErrTransactionExists
	}
	m.transactions[record.TxID] = record
	return nil
}

func (m *MemoryLedgerStore) IsDisputed(txID uint32) bool {
	_, ok := m.disputed[txID]
	return ok
}

func (m *MemoryLedgerStore) SetDisputed(txID uint32, disputed bool) {
	if disputed {
		m.disputed[txID] = struct{}{}
		return
	}
	delete(m.disputed, txID)
}

func (m *MemoryLedgerStore) IsChargedBack(txID uint32) bool {
	_, ok := m.chargedBack[txID]
	return ok
}

func (m *MemoryLedgerStore) MarkChargedBack(txID uint32) {
	m.chargedBack[txID] = struct{}{}
}

// Compile-time check: ensure MemoryLedgerStore implements LedgerStore interface
var _ interfaces.LedgerStore = (*MemoryLedgerStore)(nil)
