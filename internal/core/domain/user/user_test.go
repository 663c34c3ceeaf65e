package user

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var NOW = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func TestNewHandle(t *testing.T) {
	cases := []struct {
		raw      string
		expected Handle
	}{
		{raw: "Alice", expected: "alice"},
		{raw: "alice", expected: "alice"},
		{raw: "A-l_i ce", expected: "alice"},
		{raw: "John Doe", expected: "johndoe"},
		{raw: "  mr--smith__42 ", expected: "mrsmith42"},
	}
	for _, testcase := range cases {
		t.Run(testcase.raw, func(t *testing.T) {
			require.Equal(t, testcase.expected, NewHandle(testcase.raw))
		})
	}
}

func TestPasswordResetStateMachine(t *testing.T) {
	assert := require.New(t)
	u := User{ID: "1", Handle: "alice", PasswordHash: "old-hash"}

	assert.False(u.HasPendingPasswordReset())
	assert.False(u.MatchesPasswordReset("t1"))

	u.RequestPasswordReset("t1", NOW.Add(time.Hour))
	assert.True(u.HasPendingPasswordReset())
	assert.True(u.MatchesPasswordReset("t1"))
	assert.False(u.MatchesPasswordReset("t2"))
	assert.False(u.MatchesPasswordReset(""))

	u.RequestPasswordReset("t2", NOW.Add(2*time.Hour))
	assert.False(u.MatchesPasswordReset("t1"))
	assert.True(u.MatchesPasswordReset("t2"))
	assert.Equal(NOW.Add(2*time.Hour), u.PasswordReset.Value.ExpiresAt)

	u.CompletePasswordReset("new-hash")
	assert.False(u.HasPendingPasswordReset())
	assert.False(u.MatchesPasswordReset("t2"))
	assert.Equal(PasswordHash("new-hash"), u.PasswordHash)
	assert.NoError(u.Validate())
}

func TestValidate(t *testing.T) {
	u := User{ID: "1", Handle: "alice"}
	require.Error(t, u.Validate())

	u = User{ID: "1", PasswordHash: "hash"}
	require.Error(t, u.Validate())

	u = User{ID: "1", Handle: "alice", PasswordHash: "hash"}
	u.RequestPasswordReset("", NOW)
	require.Error(t, u.Validate())
}

func TestSecretsAreRedacted(t *testing.T) {
	assert := require.New(t)
	assert.Equal("***", fmt.Sprint(RawPassword("secret")))
	assert.Equal("***", fmt.Sprint(PasswordHash("hash")))
	assert.Equal("***", fmt.Sprint(PasswordResetToken("token")))
	assert.Equal("***", fmt.Sprint(SessionCredential("jwt")))
}

func TestErrorKinds(t *testing.T) {
	assert := require.New(t)
	cause := errors.New("connection refused")

	storeErr := NewStoreFailure(cause)
	assert.ErrorIs(storeErr, ErrStoreFailure)
	assert.ErrorIs(storeErr, cause)
	assert.NotErrorIs(storeErr, ErrUserDoesNotExist)
	assert.Equal(KindStoreFailure, KindOf(storeErr))

	wrapped := fmt.Errorf("register: %w", ErrHandleAlreadyExists)
	assert.ErrorIs(wrapped, ErrHandleAlreadyExists)
	assert.Equal(KindDuplicateHandle, KindOf(wrapped))

	assert.Equal(KindUnknown, KindOf(cause))
	assert.Equal("invalid_or_expired_token", KindInvalidOrExpiredToken.String())
	assert.Equal("unknown", ErrorKind(100).String())
}
