package rabbit

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/glbter/portfolio-dashboard/entities"
)

const (
	SNAPSHOT_QUEUE = "portfolio_snapshots"
)

// Channel is the part of *amqp.Channel the snapshot client needs.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

func NewSnapshotClient(channel Channel, queue string) *SnapshotClient {
	if queue == "" {
		queue = SNAPSHOT_QUEUE
	}
	return &SnapshotClient{
		channel: channel,
		queue:   queue,
	}
}

type SnapshotClient struct {
	channel Channel
	queue   string
}

func (c *SnapshotClient) DeclareQueue() error {
	if _, err := c.channel.QueueDeclare(
		c.queue, // name
		false,   // durable
		false,   // delete when unused
		false,   // exclusive
		false,   // noWait
		nil,     // arguments
	); err != nil {
		return fmt.Errorf("declare a queue for snapshots: %w", err)
	}
	return nil
}

func (c *SnapshotClient) Publish(ctx context.Context, snap entities.Snapshot) error {
	body, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	return c.channel.PublishWithContext(ctx,
		"",      // exchange
		c.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:   "application/json",
			CorrelationId: snap.ID.String(),
			Timestamp:     snap.FetchedAt,
			Body:          body,
		})
}

func (c *SnapshotClient) Receive() (<-chan amqp.Delivery, error) {
	msgs, err := c.channel.Consume(
		c.queue, // queue
		"",      // consumer
		false,   // auto-ack
		false,   // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // args
	)
	if err != nil {
		return nil, fmt.Errorf("consume snapshots: %w", err)
	}

	return msgs, nil
}

func Decode(body []byte) (entities.Snapshot, error) {
	var snap entities.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return entities.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}
