package updateprofile

import (
	"context"
	"errors"

	e "linkea/internal/core/domain/errors"
	"linkea/internal/core/domain/logging"
	"linkea/internal/core/domain/user"
	"linkea/internal/core/services"
	"linkea/internal/core/services/auth"
)

type Input struct {
	User        user.User
	Handle      string
	Description string
	Links       string
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct {
	User user.User
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	profileCache   user.ProfileCache
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	profileCache user.ProfileCache,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if profileCache == nil {
		panic(e.NewNilArgumentError("profileCache"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		profileCache:   profileCache,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u := input.User
	handle := user.NewHandle(input.Handle)
	if handle == "" {
		return result, e.NewInvalidStateError("handle is empty after normalization")
	}

	owner, err := s.userRepository.GetByHandle(ctx, handle)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err == nil && owner.ID != u.ID {
		s.log.Info(
			ctx,
			"Handle belongs to another user.",
			logging.Entry("userId", u.ID),
			logging.Entry("handle", handle),
		)
		return result, user.ErrHandleAlreadyExists
	}
	if err != nil && !errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Error(
			ctx,
			"Could not get user by handle.",
			logging.Entry("handle", handle),
			logging.Entry("err", err),
		)
		return result, err
	}

	oldHandle := u.Handle
	u.Handle = handle
	u.Description = input.Description
	u.Links = input.Links
	updatedUser, err := s.userRepository.Save(ctx, u)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrHandleAlreadyExists) {
		s.log.Info(ctx, "Handle has been taken concurrently.", logging.Entry("handle", handle))
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not update user profile.",
			logging.Entry("userId", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}
	s.profileCache.Invalidate(ctx, oldHandle, handle)

	s.log.Info(
		ctx,
		"User profile successfully updated.",
		logging.Entry("userId", updatedUser.ID),
		logging.Entry("handle", updatedUser.Handle),
	)
	return Result{User: updatedUser}, nil
}
