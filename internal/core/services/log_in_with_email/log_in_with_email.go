package loginwithemail

import (
	"context"
	"errors"

	c "linkea/internal/core/domain/common"
	e "linkea/internal/core/domain/errors"
	"linkea/internal/core/domain/logging"
	"linkea/internal/core/domain/user"
	"linkea/internal/core/services"
)

type Input struct {
	Email    c.Email
	Password user.RawPassword
}

type Result struct {
	User       user.User
	Credential user.SessionCredential
}

type service struct {
	log              logging.Logger
	userRepository   user.UserRepository
	passwordHasher   user.PasswordHasher
	credentialIssuer user.CredentialIssuer
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	passwordHasher user.PasswordHasher,
	credentialIssuer user.CredentialIssuer,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if credentialIssuer == nil {
		panic(e.NewNilArgumentError("credentialIssuer"))
	}
	return &service{
		log:              log,
		userRepository:   userRepository,
		passwordHasher:   passwordHasher,
		credentialIssuer: credentialIssuer,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	email := c.NewEmail(string(input.Email))
	u, err := s.userRepository.GetByEmail(ctx, email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		// Spend one hash computation so unknown e-mails take as long as wrong passwords.
		s.passwordHasher.HashPassword(input.Password)
		s.log.Info(ctx, "User with the email does not exist.", logging.Entry("email", email))
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user by email.",
			logging.Entry("email", email),
			logging.Entry("err", err),
		)
		return result, err
	}

	if !s.passwordHasher.ValidatePassword(input.Password, u.PasswordHash) {
		s.log.Info(ctx, "Invalid password.", logging.Entry("userId", u.ID))
		return result, user.ErrInvalidCredentials
	}

	credential, err := s.credentialIssuer.IssueCredential(u.ID)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not issue session credential for user.",
			logging.Entry("userId", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"User successfully authenticated, session credential issued.",
		logging.Entry("userId", u.ID),
	)
	return Result{User: u, Credential: credential}, nil
}
