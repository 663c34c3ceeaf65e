package resetpassword

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"linkea/internal/core/domain/user"
	service "linkea/internal/core/services/reset_password"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	s.input = &input
	return result, s.err
}

var TOKEN = strings.Repeat("0f", 32)

func serve(handler http.Handler, token string, body string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Method(http.MethodPost, "/auth/reset-password/{token}", handler)
	rw := httptest.NewRecorder()
	router.ServeHTTP(rw, httptest.NewRequest(http.MethodPost, "/auth/reset-password/"+token, strings.NewReader(body)))
	return rw
}

func TestResetPasswordHandler(t *testing.T) {
	cases := []struct {
		name           string
		token          string
		body           string
		serviceErr     error
		expectedStatus int
		serviceCalled  bool
	}{
		{
			name:           "updated",
			token:          TOKEN,
			body:           `{"password": "new password"}`,
			expectedStatus: http.StatusOK,
			serviceCalled:  true,
		},
		{
			name:           "expired or unknown token",
			token:          TOKEN,
			body:           `{"password": "new password"}`,
			serviceErr:     user.ErrInvalidPasswordResetToken,
			expectedStatus: http.StatusBadRequest,
			serviceCalled:  true,
		},
		{
			name:           "malformed token",
			token:          "not-a-token",
			body:           `{"password": "new password"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "short password",
			token:          TOKEN,
			body:           `{"password": "short"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "store failure",
			token:          TOKEN,
			body:           `{"password": "new password"}`,
			serviceErr:     user.ErrStoreFailure,
			expectedStatus: http.StatusInternalServerError,
			serviceCalled:  true,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.name, func(t *testing.T) {
			assert := require.New(t)
			stub := &stubService{err: testcase.serviceErr}

			rw := serve(New(stub), testcase.token, testcase.body)

			assert.Equal(testcase.expectedStatus, rw.Code)
			assert.Equal(testcase.serviceCalled, stub.input != nil)
			if testcase.serviceCalled {
				assert.Equal(user.PasswordResetToken(TOKEN), stub.input.Token)
				assert.Equal(user.RawPassword("new password"), stub.input.NewPassword)
			}
		})
	}
}
