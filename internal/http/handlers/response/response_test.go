package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"linkea/internal/core/domain/user"

	"github.com/stretchr/testify/require"
)

func TestRenderDomainError(t *testing.T) {
	cases := []struct {
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{err: user.ErrEmailAlreadyExists, expectedStatus: http.StatusConflict, expectedCode: "duplicate_email"},
		{err: user.ErrHandleAlreadyExists, expectedStatus: http.StatusConflict, expectedCode: "duplicate_handle"},
		{err: user.ErrUserDoesNotExist, expectedStatus: http.StatusNotFound, expectedCode: "user_not_found"},
		{err: user.ErrInvalidCredentials, expectedStatus: http.StatusUnauthorized, expectedCode: "invalid_credential"},
		{
			err:            user.ErrInvalidPasswordResetToken,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "invalid_or_expired_token",
		},
		{
			err:            user.NewHashingFailure(fmt.Errorf("bcrypt: boom")),
			expectedStatus: http.StatusInternalServerError,
		},
		{
			err:            user.NewStoreFailure(fmt.Errorf("connection refused")),
			expectedStatus: http.StatusInternalServerError,
		},
		{err: fmt.Errorf("anything"), expectedStatus: http.StatusInternalServerError},
	}

	for _, testcase := range cases {
		t.Run(testcase.err.Error(), func(t *testing.T) {
			assert := require.New(t)
			rw := httptest.NewRecorder()

			RenderDomainError(rw, testcase.err)

			assert.Equal(testcase.expectedStatus, rw.Code)
			assert.Equal("application/json", rw.Header().Get("Content-Type"))
			body := errorResponse{}
			assert.Nil(json.Unmarshal(rw.Body.Bytes(), &body))
			assert.Equal(testcase.expectedCode, body.Code)
			assert.NotEmpty(body.Error)
			assert.NotContains(body.Error, "boom")
			assert.NotContains(body.Error, "connection refused")
		})
	}
}
