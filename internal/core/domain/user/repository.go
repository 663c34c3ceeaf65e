package user

import (
	"context"
	"time"

	c "linkea/internal/core/domain/common"
)

type CreateUserInput struct {
	Email        c.Email
	Handle       Handle
	Name         string
	PasswordHash PasswordHash
	CreatedAt    time.Time
}

type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByID(ctx context.Context, id ID) (User, error)
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	GetByHandle(ctx context.Context, handle Handle) (User, error)
	// GetByPasswordResetToken returns the user holding token whose reset
	// has not expired as of asOf.
	GetByPasswordResetToken(ctx context.Context, token PasswordResetToken, asOf time.Time) (User, error)
	// Save overwrites the stored user (last writer wins).
	Save(ctx context.Context, u User) (User, error)
}
