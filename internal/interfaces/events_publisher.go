package interfaces

// EventPublisher delivers ledger events to whoever observes the run
type EventPublisher interface {
	Publish(topic string, event any) error
}
