package smtp

import (
	"context"
	"errors"

	"linkea/internal/core/domain/user"

	"gopkg.in/gomail.v2"
)

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailSender struct {
	dialer dialer
	sender string
}

func NewEmailSender(host string, port int, username string, password string, sender string) *EmailSender {
	return &EmailSender{
		dialer: gomail.NewDialer(host, port, username, password),
		sender: sender,
	}
}

func (s *EmailSender) Send(ctx context.Context, message user.Message) error {
	if message.To == "" {
		return errors.New("message recipient is not defined")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.dialer.DialAndSend(s.newMessage(message))
}

func (s *EmailSender) newMessage(message user.Message) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.sender)
	msg.SetHeader("To", string(message.To))
	msg.SetHeader("Subject", message.Subject)
	msg.SetBody("text/html", message.HTMLBody)
	return msg
}
