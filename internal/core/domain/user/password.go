package user

import "time"

type PasswordHasher interface {
	HashPassword(password RawPassword) (PasswordHash, error)
	ValidatePassword(password RawPassword, hash PasswordHash) bool
}

type PasswordResetTokenGenerator interface {
	GeneratePasswordResetToken() PasswordResetToken
	GenerateExpiration(now time.Time) time.Time
	IsExpired(expiration time.Time, now time.Time) bool
}
