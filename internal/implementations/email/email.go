package email

import (
	"context"
	"errors"

	"linkea/internal/core/domain/user"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const charset = "UTF-8"

type sesClient interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type EmailSender struct {
	ses sesClient
	// This address must be verified with Amazon SES.
	sender string
}

func NewEmailSender(awsConfig aws.Config, sender string) *EmailSender {
	return &EmailSender{
		ses:    ses.NewFromConfig(awsConfig),
		sender: sender,
	}
}

func (s *EmailSender) Send(ctx context.Context, message user.Message) error {
	if message.To == "" {
		return errors.New("message recipient is not defined")
	}
	_, err := s.ses.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(s.sender),
		Destination: &types.Destination{
			CcAddresses: []string{},
			ToAddresses: []string{string(message.To)},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(message.Subject), Charset: aws.String(charset)},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(message.HTMLBody), Charset: aws.String(charset)},
			},
		},
	})
	return err
}
