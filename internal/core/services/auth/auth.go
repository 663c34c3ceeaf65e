package auth

import (
	"context"
	"errors"

	e "linkea/internal/core/domain/errors"
	"linkea/internal/core/domain/logging"
	"linkea/internal/core/domain/user"
	"linkea/internal/core/services"
)

type contextCredential string

const CONTEXT_CREDENTIAL_KEY = contextCredential("credential")

// WithCredential returns a copy of ctx carrying the presented session credential.
func WithCredential(ctx context.Context, credential user.SessionCredential) context.Context {
	return context.WithValue(ctx, CONTEXT_CREDENTIAL_KEY, credential)
}

type Input interface {
	WithAuthenticatedUser(u user.User) Input
}

type service[T Input, S any] struct {
	log                logging.Logger
	credentialVerifier user.CredentialVerifier
	userRepository     user.UserRepository
	inner              services.Service[T, S]
}

func WithAuthentication[T Input, S any](
	log logging.Logger,
	credentialVerifier user.CredentialVerifier,
	userRepository user.UserRepository,
	inner services.Service[T, S],
) services.Service[T, S] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if credentialVerifier == nil {
		panic(e.NewNilArgumentError("credentialVerifier"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &service[T, S]{
		log:                log,
		credentialVerifier: credentialVerifier,
		userRepository:     userRepository,
		inner:              inner,
	}
}

func (s *service[T, S]) Run(ctx context.Context, input T) (result S, err error) {
	credential, ok := ctx.Value(CONTEXT_CREDENTIAL_KEY).(user.SessionCredential)
	if !ok || credential == "" {
		return result, user.ErrInvalidCredentials
	}
	userID, err := s.credentialVerifier.VerifyCredential(credential)
	if err != nil {
		s.log.Info(ctx, "Session credential is not valid.", logging.Entry("err", err))
		return result, user.ErrInvalidCredentials
	}
	u, err := s.userRepository.GetByID(ctx, userID)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "Session credential subject does not exist.", logging.Entry("userId", userID))
		return result, user.ErrInvalidCredentials
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get authenticated user.",
			logging.Entry("userId", userID),
			logging.Entry("err", err),
		)
		return result, err
	}
	return s.inner.Run(ctx, input.WithAuthenticatedUser(u).(T))
}
