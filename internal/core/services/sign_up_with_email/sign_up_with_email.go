package signupwithemail

import (
	"context"
	"errors"
	"time"

	c "linkea/internal/core/domain/common"
	e "linkea/internal/core/domain/errors"
	"linkea/internal/core/domain/logging"
	uow "linkea/internal/core/domain/unit_of_work"
	"linkea/internal/core/domain/user"
	"linkea/internal/core/services"
)

type Input struct {
	Name     string
	Email    c.Email
	Handle   string
	Password user.RawPassword
}

type Result struct {
	User user.User
}

type service struct {
	log            logging.Logger
	unitOfWork     uow.UnitOfWork
	passwordHasher user.PasswordHasher
	now            func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	passwordHasher user.PasswordHasher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		unitOfWork:     unitOfWork,
		passwordHasher: passwordHasher,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	email := c.NewEmail(string(input.Email))
	handle := user.NewHandle(input.Handle)
	if handle == "" {
		return result, e.NewInvalidStateError("handle is empty after normalization")
	}

	uow, err := s.unitOfWork.Begin(ctx)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not begin unit of work.",
			logging.Entry("email", email),
			logging.Entry("err", err),
		)
		return result, err
	}
	defer uow.Rollback(ctx)

	if err := s.ensureAvailable(ctx, uow.Users(), email, handle); err != nil {
		return result, err
	}

	passwordHash, err := s.passwordHasher.HashPassword(input.Password)
	if err != nil {
		s.log.Error(ctx, "Could not hash password.", logging.Entry("err", err))
		return result, user.NewHashingFailure(err)
	}

	createdUser, err := uow.Users().Create(ctx, user.CreateUserInput{
		Email:        email,
		Handle:       handle,
		Name:         input.Name,
		PasswordHash: passwordHash,
		CreatedAt:    s.now(),
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrEmailAlreadyExists) || errors.Is(err, user.ErrHandleAlreadyExists) {
		s.log.Info(
			ctx,
			"User with the email or handle has been created concurrently.",
			logging.Entry("email", email),
			logging.Entry("handle", handle),
		)
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not create new user.",
			logging.Entry("email", email),
			logging.Entry("err", err),
		)
		return result, err
	}

	err = uow.Commit(ctx)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not commit unit of work.",
			logging.Entry("email", email),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"New user has been created.",
		logging.Entry("userId", createdUser.ID),
		logging.Entry("handle", createdUser.Handle),
	)
	return Result{User: createdUser}, nil
}

func (s *service) ensureAvailable(
	ctx context.Context,
	users user.UserRepository,
	email c.Email,
	handle user.Handle,
) error {
	_, err := users.GetByEmail(ctx, email)
	if err == nil {
		s.log.Info(ctx, "User with the email already exists.", logging.Entry("email", email))
		return user.ErrEmailAlreadyExists
	}
	if !errors.Is(err, user.ErrUserDoesNotExist) {
		if !errors.Is(err, context.Canceled) {
			s.log.Error(ctx, "Could not get user by email.", logging.Entry("email", email), logging.Entry("err", err))
		}
		return err
	}

	_, err = users.GetByHandle(ctx, handle)
	if err == nil {
		s.log.Info(ctx, "User with the handle already exists.", logging.Entry("handle", handle))
		return user.ErrHandleAlreadyExists
	}
	if !errors.Is(err, user.ErrUserDoesNotExist) {
		if !errors.Is(err, context.Canceled) {
			s.log.Error(ctx, "Could not get user by handle.", logging.Entry("handle", handle), logging.Entry("err", err))
		}
		return err
	}
	return nil
}
