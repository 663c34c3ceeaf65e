package getuserbyhandle

import (
	"context"
	"testing"
	"time"

	"linkea/internal/core/domain/logging"
	"linkea/internal/core/domain/user"
	"linkea/internal/core/services"

	"github.com/stretchr/testify/suite"
)

type testSuite struct {
	suite.Suite
	Logger         *logging.FakeLogger
	UserRepository *user.FakeUserRepository
	ProfileCache   *user.FakeProfileCache
	Service        services.Service[Input, Result]
	User           user.User
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UserRepository = user.NewFakeUserRepository()
	suite.ProfileCache = user.NewFakeProfileCache()
	suite.Service = NewWithCaching(
		suite.Logger,
		suite.ProfileCache,
		New(suite.Logger, suite.UserRepository),
	)

	u, err := suite.UserRepository.Create(context.Background(), user.CreateUserInput{
		Email:        "a@x.com",
		Handle:       "alice",
		Name:         "Alice",
		PasswordHash: "secret-hash",
		CreatedAt:    time.Now().UTC(),
	})
	suite.Require().Nil(err)
	u.Description = "Singer"
	u.RequestPasswordReset("token", time.Now().Add(time.Hour))
	suite.User, err = suite.UserRepository.Save(context.Background(), u)
	suite.Require().Nil(err)
}

func TestGetUserByHandleService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestPublicProfile() {
	result, err := suite.Service.Run(context.Background(), Input{Handle: "Alice"})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(user.PublicProfile{
		Handle:      "alice",
		Name:        "Alice",
		Description: "Singer",
	}, result.Profile)
}

func (suite *testSuite) TestCacheHitSkipsStore() {
	ctx := context.Background()
	_, err := suite.Service.Run(ctx, Input{Handle: "alice"})
	suite.Require().Nil(err)
	suite.Require().Equal(1, suite.UserRepository.GetCalls)
	suite.Require().Contains(suite.ProfileCache.Profiles, user.Handle("alice"))

	result, err := suite.Service.Run(ctx, Input{Handle: "alice"})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(1, suite.UserRepository.GetCalls)
	assert.Equal(user.Handle("alice"), result.Profile.Handle)
}

func (suite *testSuite) TestNotFound() {
	_, err := suite.Service.Run(context.Background(), Input{Handle: "nobody"})

	suite.Require().ErrorIs(err, user.ErrUserDoesNotExist)
	suite.Require().Empty(suite.ProfileCache.Profiles)
}

func (suite *testSuite) TestEmptyHandle() {
	_, err := suite.Service.Run(context.Background(), Input{Handle: "--"})

	suite.Require().ErrorIs(err, user.ErrUserDoesNotExist)
	suite.Require().Equal(0, suite.UserRepository.GetCalls)
}
