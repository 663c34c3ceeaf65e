package passwordhasher

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"

	"linkea/internal/core/domain/user"

	"golang.org/x/crypto/bcrypt"
)

// Bcrypt hashes HMAC-SHA256(secret, password) with bcrypt. The HMAC step
// peppers the password with the server secret and keeps the bcrypt input
// below its 72 byte limit for any password length.
type Bcrypt struct {
	secret []byte
	cost   int
}

func NewBcrypt(secret string, cost int) *Bcrypt {
	return &Bcrypt{secret: []byte(secret), cost: cost}
}

func (h *Bcrypt) HashPassword(password user.RawPassword) (hash user.PasswordHash, err error) {
	bcryptHash, err := bcrypt.GenerateFromPassword(h.pepper(password), h.cost)
	if err != nil {
		return hash, user.NewHashingFailure(err)
	}
	return user.PasswordHash(bcryptHash), nil
}

func (h *Bcrypt) ValidatePassword(password user.RawPassword, hash user.PasswordHash) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), h.pepper(password))
	return err == nil
}

func (h *Bcrypt) pepper(password user.RawPassword) []byte {
	mac := hmac.New(sha256.New, h.secret)
	mac.Write([]byte(password))
	sum := mac.Sum(nil)
	encoded := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(encoded, sum)
	return encoded
}
