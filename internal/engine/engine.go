// Package engine folds a stream of transaction records into a ledger, strictly in order.
package engine

import (
	"errors"
	"fmt"
	"io"

	"github.com/sheikh-saqib/payments-engine/internal/csvio"
	interfaces "github.com/sheikh-saqib/payments-engine/internal/interfaces"
	"github.com/sheikh-saqib/payments-engine/internal/ledger"
	"github.com/sheikh-saqib/payments-engine/internal/models"
	"github.com/sheikh-saqib/payments-engine/internal/models/events"
	"go.uber.org/zap"
)

// ErrSourceUnreadable wraps any failure of the record stream other than a malformed row
var ErrSourceUnreadable = errors.New("record source unreadable")

// ErrorPolicy says what happens when the ledger rejects a record
type ErrorPolicy int

const (
	// PolicyContinue reports the rejection and moves on to the next record.
	PolicyContinue ErrorPolicy = iota
	// PolicyAbort stops the run at the first rejection.
	PolicyAbort
)

func (p ErrorPolicy) String() string {
	switch p {
	case PolicyContinue:
		return "continue"
	case PolicyAbort:
		return "abort"
	default:
		return fmt.Sprintf("ErrorPolicy(%d)", int(p))
	}
}

// ParseErrorPolicy accepts "continue" or "abort"
func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch s {
	case "continue":
		return PolicyContinue, nil
	case "abort":
		return PolicyAbort, nil
	}
	return 0, fmt.Errorf("invalid error policy %q", s)
}

// RecordSource produces records in input order; see csvio.Reader
type RecordSource interface {
	Read() (models.TransactionRecord, error)
}

// Applier is the ledger's single entry point
type Applier interface {
	Apply(models.TransactionRecord) error
}

// Stats counts what happened to every input row
type Stats struct {
	Applied  int
	Rejected int
	Skipped  int
}

type runner struct {
	policy    ErrorPolicy
	logger    *zap.Logger
	publisher interfaces.EventPublisher
}

// Option configures Run
type Option func(*runner)

func WithErrorPolicy(p ErrorPolicy) Option {
	return func(r *runner) { r.policy = p }
}

func WithLogger(l *zap.Logger) Option {
	return func(r *runner) { r.logger = l }
}

// WithPublisher sets where RecordRejected and RowSkipped events go
func WithPublisher(p interfaces.EventPublisher) Option {
	return func(r *runner) { r.publisher = p }
}

// Run applies every record from src to the applier, one at a time and in order.
// Malformed rows are skipped and published as RowSkipped. Rejected records are
// published as RecordRejected or, under PolicyAbort, end the run:
// the rejection is returned with the stats so far.
func Run(src RecordSource, applier Applier, opts ...Option) (Stats, error) {
	r := &runner{policy: PolicyContinue, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}

	var stats Stats
	for seq := 1; ; seq++ {
		rec, err := src.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var rowErr *csvio.RowError
			if !errors.As(err, &rowErr) {
				return stats, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
			}
			stats.Skipped++
			r.logger.Debug("skipping malformed row", zap.Int("line", rowErr.Line), zap.Error(rowErr.Err))
			r.publish(events.TopicRowSkipped, events.RowSkipped{Line: rowErr.Line, Reason: rowErr.Err.Error()})
			continue
		}

		if err := applier.Apply(rec); err != nil {
			stats.Rejected++
			if r.policy == PolicyAbort {
				return stats, err
			}
			r.logger.Debug("record rejected",
				zap.Int("sequence", seq),
				zap.String("type", string(rec.Type)),
				zap.Uint16("client", rec.ClientID),
				zap.Uint32("tx", rec.TxID),
				zap.Error(err),
			)
			r.publish(events.TopicRecordRejected, events.RecordRejected{
				Sequence: seq,
				Type:     string(rec.Type),
				ClientID: rec.ClientID,
				TxID:     rec.TxID,
				Reason:   reason(err),
			})
			continue
		}

		stats.Applied++
		r.logger.Debug("record applied",
			zap.Int("sequence", seq),
			zap.String("type", string(rec.Type)),
			zap.Uint16("client", rec.ClientID),
			zap.Uint32("tx", rec.TxID),
		)
	}

	r.logger.Info("run complete",
		zap.Int("applied", stats.Applied),
		zap.Int("rejected", stats.Rejected),
		zap.Int("skipped", stats.Skipped),
		zap.String("policy", r.policy.String()),
	)
	return stats, nil
}

func (r *runner) publish(topic string, event any) {
	if r.publisher == nil {
		return
	}
	if err := r.publisher.Publish(topic, event); err != nil {
		r.logger.Error("failed to publish event", zap.String("topic", topic), zap.Error(err))
	}
}

// reason drops the record prefix a *ledger.RecordError carries, since the event has its own fields
func reason(err error) string {
	var recErr *ledger.RecordError
	if errors.As(err, &recErr) {
		return recErr.Err.Error()
	}
	return err.Error()
}
