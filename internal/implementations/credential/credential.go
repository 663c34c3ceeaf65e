package credential

import (
	"fmt"
	"time"

	"linkea/internal/core/domain/user"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTTL = 24 * time.Hour

// JWT issues and verifies HS256 signed session credentials. The signing key
// and lifetime are fixed at construction.
type JWT struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
	parser    *jwt.Parser
}

func NewJWT(secretKey string, ttl time.Duration, now func() time.Time) *JWT {
	if secretKey == "" {
		panic("JWT secret key must not be empty.")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &JWT{
		secretKey: []byte(secretKey),
		ttl:       ttl,
		now:       now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithTimeFunc(now),
		),
	}
}

func (j *JWT) IssueCredential(id user.ID) (user.SessionCredential, error) {
	if id == "" {
		return user.SessionCredential(""), fmt.Errorf("could not issue credential for an empty user id")
	}
	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   string(id),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
	})
	signed, err := token.SignedString(j.secretKey)
	if err != nil {
		return user.SessionCredential(""), fmt.Errorf("could not sign credential: %w", err)
	}
	return user.SessionCredential(signed), nil
}

func (j *JWT) VerifyCredential(credential user.SessionCredential) (user.ID, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := j.parser.ParseWithClaims(string(credential), claims, func(t *jwt.Token) (interface{}, error) {
		return j.secretKey, nil
	})
	if err != nil || !token.Valid {
		return user.ID(""), user.ErrInvalidCredentials
	}
	if claims.Subject == "" {
		return user.ID(""), user.ErrInvalidCredentials
	}
	return user.ID(claims.Subject), nil
}
