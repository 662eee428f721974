package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/sheikh-saqib/payments-engine/internal/csvio"
	"github.com/sheikh-saqib/payments-engine/internal/ledger"
	"github.com/sheikh-saqib/payments-engine/internal/models"
	"github.com/sheikh-saqib/payments-engine/internal/models/events"
	"github.com/sheikh-saqib/payments-engine/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type published struct {
	topic string
	event any
}

type recordingPublisher struct {
	events []published
}

func (p *recordingPublisher) Publish(topic string, event any) error {
	p.events = append(p.events, published{topic: topic, event: event})
	return nil
}

type failingSource struct {
	err error
}

func (s failingSource) Read() (models.TransactionRecord, error) {
	return models.TransactionRecord{}, s.err
}

const sample = `type, client, tx, amount
deposit, 1, 1, 1.0
deposit, 2, 2, 2.0
deposit, 1, 3, 2.0
withdrawal, 1, 4, 1.5
withdrawal, 2, 5, 3.0
bogus, 1, 6, 1.0
dispute, 1, 1,
`

func TestRunContinuesPastRejections(t *testing.T) {
	l := ledger.NewLedger(memory.NewMemoryLedgerStore())
	pub := &recordingPublisher{}

	stats, err := Run(csvio.NewReader(strings.NewReader(sample)), l, WithPublisher(pub))
	require.NoError(t, err)
	assert.Equal(t, Stats{Applied: 5, Rejected: 1, Skipped: 1}, stats)

	a1, _ := l.Account(1)
	assert.Equal(t, "0.5000", a1.Available.StringFixed(4))
	assert.Equal(t, "1.0000", a1.Held.StringFixed(4))
	assert.Equal(t, "1.5000", a1.Total.StringFixed(4))

	a2, _ := l.Account(2)
	assert.Equal(t, "2.0000", a2.Available.StringFixed(4))

	require.Len(t, pub.events, 2)
	assert.Equal(t, events.TopicRecordRejected, pub.events[0].topic)
	assert.Equal(t, events.RecordRejected{
		Sequence: 5, Type: "withdrawal", ClientID: 2, TxID: 5,
		Reason: "insufficient available funds: available 2, requested 3",
	}, pub.events[0].event)
	assert.Equal(t, events.TopicRowSkipped, pub.events[1].topic)
	assert.Equal(t, 7, pub.events[1].event.(events.RowSkipped).Line)
}

func TestRunAbortStopsAtFirstRejection(t *testing.T) {
	l := ledger.NewLedger(memory.NewMemoryLedgerStore())

	stats, err := Run(csvio.NewReader(strings.NewReader(sample)), l, WithErrorPolicy(PolicyAbort))
	require.ErrorIs(t, err, ledger.ErrInsufficientFunds)
	assert.Equal(t, Stats{Applied: 4, Rejected: 1}, stats)

	// the dispute after the failing row was never applied
	a1, _ := l.Account(1)
	assert.True(t, a1.Held.IsZero())
}

func TestRunSourceFailureIsFatal(t *testing.T) {
	l := ledger.NewLedger(memory.NewMemoryLedgerStore())
	ioErr := errors.New("disk on fire")

	_, err := Run(failingSource{err: ioErr}, l)
	require.ErrorIs(t, err, ErrSourceUnreadable)
	require.ErrorIs(t, err, ioErr)
}

func TestRunBadHeaderIsFatal(t *testing.T) {
	l := ledger.NewLedger(memory.NewMemoryLedgerStore())
	_, err := Run(csvio.NewReader(strings.NewReader("a,b,c\n")), l)
	require.ErrorIs(t, err, csvio.ErrBadHeader)
}

func TestRunLogsSummary(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := ledger.NewLedger(memory.NewMemoryLedgerStore())

	_, err := Run(csvio.NewReader(strings.NewReader(sample)), l, WithLogger(zap.New(core)))
	require.NoError(t, err)

	summary := logs.FilterMessage("run complete").All()
	require.Len(t, summary, 1)
	fields := summary[0].ContextMap()
	assert.Equal(t, int64(5), fields["applied"])
	assert.Equal(t, int64(1), fields["rejected"])
	assert.Equal(t, int64(1), fields["skipped"])
	assert.Equal(t, "continue", fields["policy"])
}

func TestParseErrorPolicy(t *testing.T) {
	p, err := ParseErrorPolicy("abort")
	require.NoError(t, err)
	assert.Equal(t, PolicyAbort, p)

	p, err = ParseErrorPolicy("continue")
	require.NoError(t, err)
	assert.Equal(t, PolicyContinue, p)

	_, err = ParseErrorPolicy("panic")
	assert.Error(t, err)
}
