package emailreadyforsending

import (
	"context"
	"errors"

	"linkea/internal/core/domain/common"
	e "linkea/internal/core/domain/errors"
	"linkea/internal/core/domain/logging"
	"linkea/internal/core/domain/user"
	"linkea/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

type consumer interface {
	Consume(
		queue, consumer string,
		autoAck, exclusive, noLocal, noWait bool,
		args amqp091.Table,
	) (<-chan amqp091.Delivery, error)
}

// Consumer delivers queued emails through a mail transport. A failed send is
// requeued once and dropped on the second failure.
type Consumer struct {
	log     logging.Logger
	channel consumer
	queue   string
	sender  user.MailSender
}

func New(
	log logging.Logger,
	channel consumer,
	queue string,
	sender user.MailSender,
) *Consumer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}

	return &Consumer{log: log, channel: channel, queue: queue, sender: sender}
}

// Consume handles deliveries until ctx is done or the channel is closed.
func (c *Consumer) Consume(ctx context.Context) error {
	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		c.log.Error(ctx, "Could not start consuming.", logging.Entry("err", err))
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case delivery, ok := <-deliveries:
			if !ok {
				return nil
			}
			c.handle(ctx, delivery)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, delivery amqp091.Delivery) {
	email := &schema.Email{}
	if err := email.Unmarshal(delivery.Body); err != nil {
		c.log.Error(
			ctx,
			"Could not unmarshal email.",
			logging.Entry("err", err),
			logging.Entry("deliveryTag", delivery.DeliveryTag),
		)
		c.ack(ctx, delivery)
		return
	}

	err := c.sender.Send(ctx, user.Message{
		To:       common.NewEmail(email.To),
		Subject:  email.Subject,
		HTMLBody: email.HTMLBody,
	})
	if errors.Is(err, context.Canceled) {
		c.nack(ctx, delivery, true)
		return
	}
	if err != nil && !delivery.Redelivered {
		c.log.Warning(
			ctx,
			"Could not send email, message is requeued.",
			logging.Entry("subject", email.Subject),
			logging.Entry("err", err),
		)
		c.nack(ctx, delivery, true)
		return
	}
	if err != nil {
		c.log.Error(
			ctx,
			"Could not send email, message is dropped.",
			logging.Entry("subject", email.Subject),
			logging.Entry("err", err),
		)
		c.nack(ctx, delivery, false)
		return
	}

	c.log.Info(ctx, "Email has been sent.", logging.Entry("subject", email.Subject))
	c.ack(ctx, delivery)
}

func (c *Consumer) ack(ctx context.Context, delivery amqp091.Delivery) {
	if err := delivery.Ack(false); err != nil {
		c.log.Error(ctx, "Could not ACK AMQP message.", logging.Entry("err", err))
	}
}

func (c *Consumer) nack(ctx context.Context, delivery amqp091.Delivery, requeue bool) {
	if err := delivery.Nack(false, requeue); err != nil {
		c.log.Error(ctx, "Could not NACK AMQP message.", logging.Entry("err", err))
	}
}
