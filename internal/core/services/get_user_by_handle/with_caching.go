package getuserbyhandle

import (
	"context"

	e "linkea/internal/core/domain/errors"
	"linkea/internal/core/domain/logging"
	"linkea/internal/core/domain/user"
	"linkea/internal/core/services"
)

type serviceWithCaching struct {
	log   logging.Logger
	cache user.ProfileCache
	inner services.Service[Input, Result]
}

func NewWithCaching(
	log logging.Logger,
	cache user.ProfileCache,
	inner services.Service[Input, Result],
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if cache == nil {
		panic(e.NewNilArgumentError("cache"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &serviceWithCaching{
		log:   log,
		cache: cache,
		inner: inner,
	}
}

func (s *serviceWithCaching) Run(ctx context.Context, input Input) (result Result, err error) {
	handle := user.NewHandle(input.Handle)
	if profile, ok := s.cache.Get(ctx, handle); ok {
		s.log.Debug(ctx, "Public profile served from cache.", logging.Entry("handle", handle))
		return Result{Profile: profile}, nil
	}

	result, err = s.inner.Run(ctx, input)
	if err != nil {
		return result, err
	}
	s.cache.Set(ctx, result.Profile)
	return result, nil
}
