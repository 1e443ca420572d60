package messaging

import (
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	orderExchange        = "orders"
	orderWaitQueue       = "order.payment_wait"
	orderExpiredExchange = "orders.expired"
	orderExpiredQueue    = "order.expired"
)

// RabbitMQ wraps the broker connection and channel
type RabbitMQ struct {
	Conn    *amqp.Connection
	Channel *amqp.Channel
}

// NewRabbitMQ connects to the broker and opens a channel
func NewRabbitMQ(url string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	return &RabbitMQ{Conn: conn, Channel: ch}, nil
}

// SetupQueues declares the order expiry topology. Placed orders sit in a
// wait queue with a message TTL equal to the payment window; when the TTL
// lapses the message dead-letters into the expired queue, where the
// consumer cancels orders still unpaid.
func (r *RabbitMQ) SetupQueues(paymentWindow time.Duration) error {
	if err := r.Channel.ExchangeDeclare(
		orderExchange,
		"direct",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return err
	}

	if err := r.Channel.ExchangeDeclare(
		orderExpiredExchange,
		"direct",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return err
	}

	_, err := r.Channel.QueueDeclare(
		orderWaitQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		amqp.Table{
			"x-message-ttl":             paymentWindow.Milliseconds(),
			"x-dead-letter-exchange":    orderExpiredExchange,
			"x-dead-letter-routing-key": orderExpiredQueue,
		},
	)
	if err != nil {
		return err
	}

	if err := r.Channel.QueueBind(
		orderWaitQueue,
		orderWaitQueue,
		orderExchange,
		false,
		nil,
	); err != nil {
		return err
	}

	_, err = r.Channel.QueueDeclare(
		orderExpiredQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return err
	}

	return r.Channel.QueueBind(
		orderExpiredQueue,
		orderExpiredQueue,
		orderExpiredExchange,
		false,
		nil,
	)
}

// Close shuts down the channel and connection
func (r *RabbitMQ) Close() error {
	if r.Channel != nil {
		if err := r.Channel.Close(); err != nil {
			return err
		}
	}
	if r.Conn != nil {
		return r.Conn.Close()
	}
	return nil
}
