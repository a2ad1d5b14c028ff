package rabbitmq

import (
	"context"
	e "proposalai/internal/core/domain/errors"
	"proposalai/internal/core/domain/logging"
	"sync/atomic"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const reconnectDelay = 3 * time.Second

// Connection re-dials the broker whenever the underlying connection drops.
type Connection struct {
	*amqp.Connection
	url string
	log logging.Logger
}

func Dial(url string, log logging.Logger) (*Connection, error) {
	if log == nil {
		return nil, e.NewNilArgumentError("log")
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	connection := &Connection{Connection: conn, url: url, log: log}
	go connection.watch()
	return connection, nil
}

func (c *Connection) watch() {
	ctx := context.Background()
	for {
		reason, ok := <-c.Connection.NotifyClose(make(chan *amqp.Error, 1))
		if !ok || reason == nil {
			c.log.Info(ctx, "RabbitMQ connection closed.")
			return
		}

		c.log.Warning(ctx, "RabbitMQ connection lost.", logging.Entry("reason", reason.Error()))
		for {
			time.Sleep(reconnectDelay)
			conn, err := amqp.Dial(c.url)
			if err != nil {
				c.log.Error(ctx, "RabbitMQ reconnect failed.", logging.Entry("err", err))
				continue
			}
			c.Connection = conn
			c.log.Info(ctx, "RabbitMQ reconnected.")
			break
		}
	}
}

// Channel opens a channel that is reopened after broker-side closes until
// Close is called on it.
func (c *Connection) Channel() (*Channel, error) {
	ch, err := c.Connection.Channel()
	if err != nil {
		return nil, err
	}

	channel := &Channel{Channel: ch, log: c.log}
	go channel.watch(c)
	return channel, nil
}

type Channel struct {
	*amqp.Channel
	closed int32
	log    logging.Logger
}

func (ch *Channel) watch(c *Connection) {
	ctx := context.Background()
	for {
		reason, ok := <-ch.Channel.NotifyClose(make(chan *amqp.Error, 1))
		if !ok || reason == nil || ch.IsClosed() {
			// Marks the channel closed when the connection went away first.
			ch.Close()
			return
		}

		ch.log.Warning(ctx, "RabbitMQ channel lost.", logging.Entry("reason", reason.Error()))
		for {
			time.Sleep(reconnectDelay)
			reopened, err := c.Connection.Channel()
			if err != nil {
				ch.log.Error(ctx, "RabbitMQ channel reopen failed.", logging.Entry("err", err))
				continue
			}
			ch.Channel = reopened
			ch.log.Info(ctx, "RabbitMQ channel reopened.")
			break
		}
	}
}

// IsClosed reports whether Close has been called.
func (ch *Channel) IsClosed() bool {
	return atomic.LoadInt32(&ch.closed) == 1
}

func (ch *Channel) Close() error {
	if !atomic.CompareAndSwapInt32(&ch.closed, 0, 1) {
		return amqp.ErrClosed
	}
	return ch.Channel.Close()
}

// DeclareDurableQueue declares a durable, non-exclusive queue that survives
// broker restarts. Publishers and consumers both declare it, so either side
// may start first.
func (ch *Channel) DeclareDurableQueue(name string) error {
	_, err := ch.Channel.QueueDeclare(name, true, false, false, false, nil)
	return err
}

// Consume keeps delivering from queue across channel reopens and stops only
// once the channel is closed by Close.
func (ch *Channel) Consume(
	queue, consumer string,
	autoAck, exclusive, noLocal, noWait bool,
	args amqp.Table,
) (<-chan amqp.Delivery, error) {
	deliveries := make(chan amqp.Delivery)

	go func() {
		defer close(deliveries)
		ctx := context.Background()
		for {
			d, err := ch.Channel.Consume(queue, consumer, autoAck, exclusive, noLocal, noWait, args)
			if err != nil {
				if ch.IsClosed() {
					return
				}
				ch.log.Error(ctx, "Could not consume.", logging.Entry("err", err), logging.Entry("queue", queue))
				time.Sleep(reconnectDelay)
				continue
			}

			for msg := range d {
				deliveries <- msg
			}

			// The closed flag may be set shortly after the delivery channel ends.
			time.Sleep(reconnectDelay)
			if ch.IsClosed() {
				ch.log.Info(ctx, "Channel is closed, stopped consuming.", logging.Entry("queue", queue))
				return
			}
		}
	}()

	return deliveries, nil
}
