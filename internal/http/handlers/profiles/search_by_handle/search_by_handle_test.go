package searchbyhandle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"linkea/internal/core/domain/user"
	service "linkea/internal/core/services/search_by_handle"

	"github.com/stretchr/testify/require"
)

type stubService struct {
	taken map[user.Handle]bool
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	handle := user.NewHandle(input.Handle)
	return service.Result{Handle: handle, IsAvailable: !s.taken[handle]}, nil
}

func TestSearchByHandleHandler(t *testing.T) {
	cases := []struct {
		name           string
		body           string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "available",
			body:           `{"handle": "Bob"}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message": "bob is available"}`,
		},
		{
			name:           "taken",
			body:           `{"handle": "A-lice"}`,
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error": "alice is already registered", "code": "duplicate_handle"}`,
		},
		{
			name:           "empty",
			body:           `{"handle": ""}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.name, func(t *testing.T) {
			assert := require.New(t)
			handler := New(&stubService{taken: map[user.Handle]bool{"alice": true}})

			rw := httptest.NewRecorder()
			handler.ServeHTTP(rw, httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(testcase.body)))

			assert.Equal(testcase.expectedStatus, rw.Code)
			if testcase.expectedBody != "" {
				assert.JSONEq(testcase.expectedBody, rw.Body.String())
			}
		})
	}
}
