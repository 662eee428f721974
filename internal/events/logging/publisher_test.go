package logging

import (
	"encoding/json"
	"testing"

	"github.com/sheikh-saqib/payments-engine/internal/models/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestPublishLogsEvent(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	p := NewPublisher(zap.New(core))

	err := p.Publish(events.TopicRecordRejected, events.RecordRejected{
		Sequence: 3, Type: "withdrawal", ClientID: 2, TxID: 9, Reason: "insufficient available funds",
	})
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "events", entries[0].LoggerName)

	fields := entries[0].ContextMap()
	assert.Equal(t, events.TopicRecordRejected, fields["topic"])

	raw, ok := fields["event"].(json.RawMessage)
	require.True(t, ok)
	assert.JSONEq(t, `{"sequence":3,"type":"withdrawal","client":2,"tx":9,"reason":"insufficient available funds"}`, string(raw))
}

func TestPublishRejectsUnencodableEvent(t *testing.T) {
	p := NewPublisher(zap.NewNop())
	assert.Error(t, p.Publish("bad", make(chan int)))
}
