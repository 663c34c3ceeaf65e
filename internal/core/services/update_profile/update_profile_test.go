package updateprofile

import (
	"context"
	"testing"
	"time"

	c "linkea/internal/core/domain/common"
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
	Alice          user.User
	Bob            user.User
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UserRepository = user.NewFakeUserRepository()
	suite.ProfileCache = user.NewFakeProfileCache()
	suite.Service = New(suite.Logger, suite.UserRepository, suite.ProfileCache)

	suite.Alice = suite.create("a@x.com", "alice")
	suite.Bob = suite.create("b@x.com", "bob")
}

func (suite *testSuite) create(email c.Email, handle user.Handle) user.User {
	u, err := suite.UserRepository.Create(context.Background(), user.CreateUserInput{
		Email:        email,
		Handle:       handle,
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	})
	suite.Require().Nil(err)
	return u
}

func TestUpdateProfileService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestSuccess() {
	suite.ProfileCache.Set(context.Background(), suite.Alice.PublicProfile())

	result, err := suite.Service.Run(context.Background(), Input{
		User:        suite.Alice,
		Handle:      "Alice Cooper",
		Description: "Singer",
		Links:       `[{"name":"youtube","url":"https://youtube.com/alice"}]`,
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(user.Handle("alicecooper"), result.User.Handle)
	assert.Equal("Singer", result.User.Description)
	stored := suite.UserRepository.MustGet("a@x.com")
	assert.Equal(result.User, stored)
	assert.Equal(suite.Alice.PasswordHash, stored.PasswordHash)
	assert.ElementsMatch([]user.Handle{"alice", "alicecooper"}, suite.ProfileCache.Invalidated)
	assert.Empty(suite.ProfileCache.Profiles)
}

func (suite *testSuite) TestKeepOwnHandle() {
	result, err := suite.Service.Run(context.Background(), Input{
		User:        suite.Alice,
		Handle:      "ALICE",
		Description: "New description",
	})

	suite.Require().Nil(err)
	suite.Require().Equal(user.Handle("alice"), result.User.Handle)
}

func (suite *testSuite) TestHandleOfAnotherUser() {
	_, err := suite.Service.Run(context.Background(), Input{
		User:   suite.Alice,
		Handle: "b-o-b",
	})

	assert := suite.Require()
	assert.ErrorIs(err, user.ErrHandleAlreadyExists)
	assert.Equal(0, suite.UserRepository.SaveCalls)
	assert.Equal(user.Handle("alice"), suite.UserRepository.MustGet("a@x.com").Handle)
	assert.Empty(suite.ProfileCache.Invalidated)
}

func (suite *testSuite) TestStoreFailure() {
	suite.UserRepository.ReturnError = true

	_, err := suite.Service.Run(context.Background(), Input{User: suite.Alice, Handle: "alice"})

	suite.Require().ErrorIs(err, user.ErrStoreFailure)
	suite.Require().Empty(suite.ProfileCache.Invalidated)
}
