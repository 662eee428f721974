package memory

import (
	"testing"

	interfaces "github.com/sheikh-saqib/payments-engine/internal/interfaces"
	"github.com/sheikh-saqib/payments-engine/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveTransactionKeepsFirst(t *testing.T) {
	m := NewMemoryLedgerStore()
	first := models.NewTransactionRecord(models.Deposit, 1, 7, decimal.NewFromInt(1))
	second := models.NewTransactionRecord(models.Withdrawal, 2, 7, decimal.NewFromInt(9))

	require.NoError(t, m.SaveTransaction(first))
	require.ErrorIs(t, m.SaveTransaction(second), interfaces.ErrTransactionExists)

	got, ok := m.GetTransaction(7)
	require.True(t, ok)
	assert.Equal(t, first, got)
}

func TestAccountsAreCopiesInClientOrder(t *testing.T) {
	m := NewMemoryLedgerStore()
	for _, id := range []uint16{30, 1, 65535, 7} {
		m.SaveAccount(models.NewAccount(id))
	}

	accounts := m.GetAccounts()
	require.Len(t, accounts, 4)
	assert.Equal(t, []uint16{1, 7, 30, 65535}, []uint16{accounts[0].ID, accounts[1].ID, accounts[2].ID, accounts[3].ID})

	accounts[0].Frozen = true
	a, _ := m.GetAccount(1)
	assert.False(t, a.Frozen)
}

func TestDisputedAndChargedBackSets(t *testing.T) {
	m := NewMemoryLedgerStore()
	assert.False(t, m.IsDisputed(3))

	m.SetDisputed(3, true)
	assert.True(t, m.IsDisputed(3))
	m.SetDisputed(3, false)
	assert.False(t, m.IsDisputed(3))

	assert.False(t, m.IsChargedBack(3))
	m.MarkChargedBack(3)
	assert.True(t, m.IsChargedBack(3))
}
