package sendpasswordresettoken

import (
	"context"
	"errors"
	"net/url"
	"time"

	c "linkea/internal/core/domain/common"
	e "linkea/internal/core/domain/errors"
	"linkea/internal/core/domain/logging"
	"linkea/internal/core/domain/user"
	"linkea/internal/core/services"
)

type Input struct {
	Email c.Email
}

type Result struct{}

type service struct {
	log             logging.Logger
	userRepository  user.UserRepository
	tokenGenerator  user.PasswordResetTokenGenerator
	mailSender      user.MailSender
	frontendBaseURL url.URL
	now             func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	tokenGenerator user.PasswordResetTokenGenerator,
	mailSender user.MailSender,
	frontendBaseURL url.URL,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if tokenGenerator == nil {
		panic(e.NewNilArgumentError("tokenGenerator"))
	}
	if mailSender == nil {
		panic(e.NewNilArgumentError("mailSender"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:             log,
		userRepository:  userRepository,
		tokenGenerator:  tokenGenerator,
		mailSender:      mailSender,
		frontendBaseURL: frontendBaseURL,
		now:             now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	email := c.NewEmail(string(input.Email))
	u, err := s.userRepository.GetByEmail(ctx, email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "Password reset requested for unknown email.", logging.Entry("email", email))
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user for password reset.",
			logging.Entry("email", email),
			logging.Entry("err", err),
		)
		return result, err
	}

	token := s.tokenGenerator.GeneratePasswordResetToken()
	u.RequestPasswordReset(token, s.tokenGenerator.GenerateExpiration(s.now()))
	saved, err := s.userRepository.Save(ctx, u)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not save password reset token.",
			logging.Entry("userId", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	u = saved

	message, err := newMessage(u, ResetURL(s.frontendBaseURL, token))
	if err != nil {
		s.log.Error(ctx, "Could not render password reset email.", logging.Entry("err", err))
		return result, err
	}
	err = s.mailSender.Send(ctx, message)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not send password reset email.",
			logging.Entry("userId", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"Password reset email has been sent.",
		logging.Entry("userId", u.ID),
		logging.Entry("expiresAt", u.PasswordReset.Value.ExpiresAt),
	)
	return result, nil
}
