package events

const (
	TopicRecordRejected = "record_rejected"
	TopicRowSkipped     = "row_skipped"
)

// RecordRejected is emitted when the ledger refuses a well-formed record
type RecordRejected struct {
	Sequence int    `json:"sequence"`
	Type     string `json:"type"`
	ClientID uint16 `json:"client"`
	TxID     uint32 `json:"tx"`
	Reason   string `json:"reason"`
}

// RowSkipped is emitted when an input row cannot be parsed into a record
type RowSkipped struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}
