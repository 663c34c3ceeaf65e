package me

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"linkea/internal/core/domain/user"
	service "linkea/internal/core/services/get_user"

	"github.com/stretchr/testify/require"
)

type stubService struct {
	user user.User
	err  error
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	if s.err != nil {
		return result, s.err
	}
	return service.Result{User: s.user}, nil
}

func TestMeHandler(t *testing.T) {
	assert := require.New(t)
	handler := New(&stubService{user: user.User{
		ID:           "0b1c6f5e-4f6e-4a4e-9d0c-2f1e0b9a7c11",
		Email:        "alice@example.com",
		Handle:       "alice",
		Name:         "Alice",
		PasswordHash: "$2a$10$secret",
		CreatedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}})

	rw := httptest.NewRecorder()
	handler.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/user", nil))

	assert.Equal(http.StatusOK, rw.Code)
	assert.NotContains(rw.Body.String(), "secret")
	body := map[string]interface{}{}
	assert.Nil(json.Unmarshal(rw.Body.Bytes(), &body))
	assert.Equal("alice", body["handle"])
	assert.Equal("alice@example.com", body["email"])
	assert.NotContains(body, "password_hash")
}

func TestMeHandlerUnauthenticated(t *testing.T) {
	handler := New(&stubService{err: user.ErrInvalidCredentials})

	rw := httptest.NewRecorder()
	handler.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/user", nil))

	require.Equal(t, http.StatusUnauthorized, rw.Code)
}
