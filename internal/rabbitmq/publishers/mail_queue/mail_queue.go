package mailqueue

import (
	"context"
	"errors"

	e "linkea/internal/core/domain/errors"
	"linkea/internal/core/domain/logging"
	"linkea/internal/core/domain/user"
	"linkea/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

type publisher interface {
	PublishWithContext(
		ctx context.Context,
		exchange string,
		key string,
		mandatory bool,
		immediate bool,
		msg amqp091.Publishing,
	) error
}

// RabbitMQ is a user.MailSender that enqueues messages for the mail worker.
type RabbitMQ struct {
	log     logging.Logger
	channel publisher
	queue   string
}

func NewRabbitMQ(log logging.Logger, channel publisher, queue string) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	return &RabbitMQ{log: log, channel: channel, queue: queue}
}

func (s *RabbitMQ) Send(ctx context.Context, message user.Message) error {
	if message.To == "" {
		return errors.New("message recipient is not defined")
	}
	email := schema.Email{
		To:       string(message.To),
		Subject:  message.Subject,
		HTMLBody: message.HTMLBody,
	}
	body, err := email.Marshal()
	if err != nil {
		return err
	}

	err = s.channel.PublishWithContext(ctx, "", s.queue, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Body:         body,
	})
	if err != nil {
		s.log.Error(
			ctx,
			"Could not publish email to the mail queue.",
			logging.Entry("queue", s.queue),
			logging.Entry("err", err),
		)
		return err
	}
	s.log.Info(
		ctx,
		"AMQP message has been successfully published.",
		logging.Entry("queue", s.queue),
		logging.Entry("subject", message.Subject),
	)
	return nil
}
