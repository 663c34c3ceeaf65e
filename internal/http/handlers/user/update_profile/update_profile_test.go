package updateprofile

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"linkea/internal/core/domain/user"
	service "linkea/internal/core/services/update_profile"

	"github.com/stretchr/testify/require"
)

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	s.input = &input
	if s.err != nil {
		return result, s.err
	}
	return service.Result{User: user.User{ID: "1", Handle: user.NewHandle(input.Handle)}}, nil
}

func TestUpdateProfileHandler(t *testing.T) {
	cases := []struct {
		name           string
		body           string
		serviceErr     error
		expectedStatus int
		serviceCalled  bool
	}{
		{
			name:           "updated",
			body:           `{"handle": "Alice", "description": "hi", "links": "[{\"name\":\"x\"}]"}`,
			expectedStatus: http.StatusOK,
			serviceCalled:  true,
		},
		{
			name:           "empty links",
			body:           `{"handle": "alice", "description": "", "links": ""}`,
			expectedStatus: http.StatusOK,
			serviceCalled:  true,
		},
		{
			name:           "handle taken",
			body:           `{"handle": "bob"}`,
			serviceErr:     user.ErrHandleAlreadyExists,
			expectedStatus: http.StatusConflict,
			serviceCalled:  true,
		},
		{
			name:           "unauthenticated",
			body:           `{"handle": "alice"}`,
			serviceErr:     user.ErrInvalidCredentials,
			expectedStatus: http.StatusUnauthorized,
			serviceCalled:  true,
		},
		{name: "missing handle", body: `{"description": "hi"}`, expectedStatus: http.StatusBadRequest},
		{name: "links not json", body: `{"handle": "alice", "links": "[oops"}`, expectedStatus: http.StatusBadRequest},
	}

	for _, testcase := range cases {
		t.Run(testcase.name, func(t *testing.T) {
			assert := require.New(t)
			stub := &stubService{err: testcase.serviceErr}

			rw := httptest.NewRecorder()
			New(stub).ServeHTTP(rw, httptest.NewRequest(http.MethodPatch, "/user", strings.NewReader(testcase.body)))

			assert.Equal(testcase.expectedStatus, rw.Code)
			assert.Equal(testcase.serviceCalled, stub.input != nil)
		})
	}
}
