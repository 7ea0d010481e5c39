package queue

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Message pairs a decoded job with its delivery so the consumer can ack or
// nack after processing.
type Message struct {
	Job          *Job
	DeliveryTag  uint64
	Acknowledger amqp.Acknowledger
}

// Ack acknowledges successful processing
func (m *Message) Ack() error {
	return m.Acknowledger.Ack(m.DeliveryTag, false)
}

// Nack rejects the message, optionally requeueing it
func (m *Message) Nack(requeue bool) error {
	return m.Acknowledger.Nack(m.DeliveryTag, false, requeue)
}

// JobQueue is the interface for job queues
type JobQueue interface {
	// Enqueue adds a job to the queue
	Enqueue(ctx context.Context, job *Job) error

	// Consume returns a channel of messages delivered as they arrive.
	// The caller must ack or nack every message. Prefetch bounds how many
	// unacknowledged messages this consumer holds at once. The returned
	// channels close when the context is cancelled or the connection drops.
	Consume(ctx context.Context, prefetchCount int) (<-chan *Message, <-chan error, error)

	// Close closes the queue connection
	Close() error

	// HealthCheck verifies the queue connection is healthy
	HealthCheck(ctx context.Context) error
}
