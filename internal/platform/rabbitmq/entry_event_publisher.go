package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"echome-server/internal/model"
)

// EntryEventPublisher pushes entry lifecycle events onto a durable queue
// for the background persist worker.
type EntryEventPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewEntryEventPublisher(conn *amqp.Connection, queueName string) *EntryEventPublisher {
	return &EntryEventPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *EntryEventPublisher) Publish(ctx context.Context, event model.EntryEvent) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		p.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue failed: %w", err)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal entry event failed: %w", err)
	}

	if err := ch.PublishWithContext(
		ctx,
		"",
		p.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         payload,
			DeliveryMode: amqp.Persistent,
		},
	); err != nil {
		return fmt.Errorf("publish entry event failed: %w", err)
	}
	return nil
}
