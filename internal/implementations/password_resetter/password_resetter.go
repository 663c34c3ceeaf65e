package passwordresetter

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"time"

	"linkea/internal/core/domain/user"
)

const (
	TokenBytes           = 32
	DefaultValidDuration = time.Hour
)

type Random struct {
	validDuration time.Duration
	source        io.Reader
}

func NewRandom(validDuration time.Duration) *Random {
	if validDuration <= 0 {
		validDuration = DefaultValidDuration
	}
	return &Random{validDuration: validDuration, source: rand.Reader}
}

// GeneratePasswordResetToken returns 32 bytes from the system CSPRNG as
// 64 lower-case hex characters.
func (r *Random) GeneratePasswordResetToken() user.PasswordResetToken {
	b := make([]byte, TokenBytes)
	if _, err := io.ReadFull(r.source, b); err != nil {
		panic("could not read from the system random source: " + err.Error())
	}
	return user.PasswordResetToken(hex.EncodeToString(b))
}

func (r *Random) GenerateExpiration(now time.Time) time.Time {
	return now.Add(r.validDuration)
}

// IsExpired reports whether now is strictly after expiration. A token is
// still valid at the exact expiration instant.
func (r *Random) IsExpired(expiration time.Time, now time.Time) bool {
	return now.After(expiration)
}
