package uploadimage

import (
	"context"
	"errors"
	"io"

	e "linkea/internal/core/domain/errors"
	"linkea/internal/core/domain/logging"
	"linkea/internal/core/domain/user"
	"linkea/internal/core/services"
	"linkea/internal/core/services/auth"
)

type Input struct {
	User        user.User
	ContentType string
	Body        io.Reader
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct {
	Image string
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	imageStore     user.ImageStore
	profileCache   user.ProfileCache
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	imageStore user.ImageStore,
	profileCache user.ProfileCache,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if imageStore == nil {
		panic(e.NewNilArgumentError("imageStore"))
	}
	if profileCache == nil {
		panic(e.NewNilArgumentError("profileCache"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		imageStore:     imageStore,
		profileCache:   profileCache,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if input.Body == nil {
		return result, e.NewInvalidStateError("image body is not set")
	}
	u := input.User
	imageURL, err := s.imageStore.Upload(ctx, input.ContentType, input.Body)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not upload profile image.",
			logging.Entry("userId", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	u.Image = imageURL
	_, err = s.userRepository.Save(ctx, u)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not save profile image.",
			logging.Entry("userId", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}
	s.profileCache.Invalidate(ctx, u.Handle)

	s.log.Info(
		ctx,
		"Profile image has been uploaded.",
		logging.Entry("userId", u.ID),
		logging.Entry("image", imageURL),
	)
	return Result{Image: imageURL}, nil
}
