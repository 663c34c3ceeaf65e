package getuserbyhandle

import (
	"context"
	"errors"

	e "linkea/internal/core/domain/errors"
	"linkea/internal/core/domain/logging"
	"linkea/internal/core/domain/user"
	"linkea/internal/core/services"
)

type Input struct {
	Handle string
}

type Result struct {
	Profile user.PublicProfile
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	handle := user.NewHandle(input.Handle)
	if handle == "" {
		return result, user.ErrUserDoesNotExist
	}
	u, err := s.userRepository.GetByHandle(ctx, handle)
	if errors.Is(err, context.Canceled) || errors.Is(err, user.ErrUserDoesNotExist) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user by handle.",
			logging.Entry("handle", handle),
			logging.Entry("err", err),
		)
		return result, err
	}
	return Result{Profile: u.PublicProfile()}, nil
}
