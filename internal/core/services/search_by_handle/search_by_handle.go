package searchbyhandle

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
	Handle      user.Handle
	IsAvailable bool
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
		return result, e.NewInvalidStateError("handle is empty after normalization")
	}
	_, err = s.userRepository.GetByHandle(ctx, handle)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return Result{Handle: handle, IsAvailable: true}, nil
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
	return Result{Handle: handle, IsAvailable: false}, nil
}
