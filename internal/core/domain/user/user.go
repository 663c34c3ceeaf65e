package user

import (
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	c "linkea/internal/core/domain/common"
	e "linkea/internal/core/domain/errors"

	"github.com/gosimple/slug"
)

type ID string

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

// Handle is a lower-cased URL-safe slug without separator characters.
type Handle string

var handleSeparators = strings.NewReplacer("-", "", "_", "")

func NewHandle(rawHandle string) Handle {
	return Handle(handleSeparators.Replace(slug.Make(rawHandle)))
}

type PasswordResetToken string

func (t PasswordResetToken) String() string {
	return "***"
}

type PasswordReset struct {
	Token     PasswordResetToken
	ExpiresAt time.Time
}

type User struct {
	ID            ID
	Email         c.Email
	Handle        Handle
	Name          string
	PasswordHash  PasswordHash
	Description   string
	Image         string
	Links         string
	CreatedAt     time.Time
	PasswordReset c.Optional[PasswordReset]
}

func (u *User) Validate() error {
	if u.PasswordHash == "" {
		return e.NewInvalidStateError(fmt.Sprintf("password hash is not set for user %s", u.ID))
	}
	if u.Handle == "" {
		return e.NewInvalidStateError(fmt.Sprintf("handle is not set for user %s", u.ID))
	}
	if u.PasswordReset.IsPresent && u.PasswordReset.Value.Token == "" {
		return e.NewInvalidStateError(fmt.Sprintf("empty password reset token for user %s", u.ID))
	}
	return nil
}

func (u *User) HasPendingPasswordReset() bool {
	return u.PasswordReset.IsPresent
}

// RequestPasswordReset moves the user into the pending reset state.
// Any previously issued token is replaced and can no longer be used.
func (u *User) RequestPasswordReset(token PasswordResetToken, expiresAt time.Time) {
	u.PasswordReset = c.NewOptional(PasswordReset{Token: token, ExpiresAt: expiresAt}, true)
}

// MatchesPasswordReset reports whether token equals the pending reset token.
func (u *User) MatchesPasswordReset(token PasswordResetToken) bool {
	if !u.PasswordReset.IsPresent || token == "" {
		return false
	}
	stored := []byte(u.PasswordReset.Value.Token)
	return subtle.ConstantTimeCompare(stored, []byte(token)) == 1
}

// CompletePasswordReset sets the new password hash and leaves the pending
// reset state in the same change, so both are persisted by one write.
func (u *User) CompletePasswordReset(hash PasswordHash) {
	u.PasswordHash = hash
	u.PasswordReset = c.NewOptional(PasswordReset{}, false)
}

type PublicProfile struct {
	Handle      Handle
	Name        string
	Description string
	Image       string
	Links       string
}

func (u *User) PublicProfile() PublicProfile {
	return PublicProfile{
		Handle:      u.Handle,
		Name:        u.Name,
		Description: u.Description,
		Image:       u.Image,
		Links:       u.Links,
	}
}
