package user

import (
	"context"

	c "linkea/internal/core/domain/common"
)

type Message struct {
	To       c.Email
	Subject  string
	HTMLBody string
}

type MailSender interface {
	Send(ctx context.Context, message Message) error
}
