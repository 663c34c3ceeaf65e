package auth

import (
	"net/http"
	"strings"

	"linkea/internal/core/domain/user"
	"linkea/internal/core/services/auth"
)

const (
	AUTH_TOKEN_PREFIX  = "Bearer "
	AUTH_TOKEN_MAX_LEN = 2048
)

func ParseCredential(r *http.Request) (credential user.SessionCredential, ok bool) {
	header := r.Header.Get("authorization")
	if header == "" {
		return credential, false
	}
	token, found := strings.CutPrefix(header, AUTH_TOKEN_PREFIX)
	if !found || token == "" {
		return credential, false
	}
	if len(token) > AUTH_TOKEN_MAX_LEN {
		return credential, false
	}
	return user.SessionCredential(token), true
}

func SetCredentialToContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		credential, ok := ParseCredential(r)
		if ok {
			r = r.WithContext(auth.WithCredential(r.Context(), credential))
		}
		next.ServeHTTP(w, r)
	})
}
