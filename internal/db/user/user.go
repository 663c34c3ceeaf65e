package user

import (
	"context"
	"errors"
	"time"

	c "linkea/internal/core/domain/common"
	e "linkea/internal/core/domain/errors"
	"linkea/internal/core/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

const (
	EMAIL_CONSTRAINT_NAME  = "user_email_key"
	HANDLE_CONSTRAINT_NAME = "user_handle_key"
)

const columns = `id::text, email, handle, name, password_hash, description, image, links,
	created_at, reset_password_token, reset_password_expires`

// DBTX is satisfied by both pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type PgxUserRepository struct {
	db  DBTX
	newID func() uuid.UUID
}

func NewPgxRepository(db DBTX) *PgxUserRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxUserRepository{db: db, newID: uuid.New}
}

func (r *PgxUserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO "user" (id, email, handle, name, password_hash, created_at)
		VALUES ($1::uuid, $2, $3, $4, $5, $6)
		RETURNING `+columns,
		r.newID().String(),
		string(input.Email),
		string(input.Handle),
		input.Name,
		string(input.PasswordHash),
		input.CreatedAt,
	)
	return decodeUser(row)
}

func (r *PgxUserRepository) GetByID(ctx context.Context, id user.ID) (u user.User, err error) {
	if _, err := uuid.Parse(string(id)); err != nil {
		return u, user.ErrUserDoesNotExist
	}
	row := r.db.QueryRow(ctx, `SELECT `+columns+` FROM "user" WHERE id = $1::uuid`, string(id))
	return decodeUser(row)
}

func (r *PgxUserRepository) GetByEmail(ctx context.Context, email c.Email) (u user.User, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+columns+` FROM "user" WHERE email = $1`, string(email))
	return decodeUser(row)
}

func (r *PgxUserRepository) GetByHandle(ctx context.Context, handle user.Handle) (u user.User, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+columns+` FROM "user" WHERE handle = $1`, string(handle))
	return decodeUser(row)
}

func (r *PgxUserRepository) GetByPasswordResetToken(
	ctx context.Context,
	token user.PasswordResetToken,
	asOf time.Time,
) (u user.User, err error) {
	if token == "" {
		return u, user.ErrUserDoesNotExist
	}
	row := r.db.QueryRow(
		ctx,
		`SELECT `+columns+` FROM "user"
		WHERE reset_password_token = $1 AND reset_password_expires >= $2`,
		string(token),
		asOf,
	)
	return decodeUser(row)
}

// Save writes every field of u. The last writer wins.
func (r *PgxUserRepository) Save(ctx context.Context, u user.User) (user.User, error) {
	if err := u.Validate(); err != nil {
		return user.User{}, err
	}
	token, expires := encodePasswordReset(u.PasswordReset)
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO "user" (
			id, email, handle, name, password_hash, description, image, links,
			created_at, reset_password_token, reset_password_expires
		)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			handle = EXCLUDED.handle,
			name = EXCLUDED.name,
			password_hash = EXCLUDED.password_hash,
			description = EXCLUDED.description,
			image = EXCLUDED.image,
			links = EXCLUDED.links,
			reset_password_token = EXCLUDED.reset_password_token,
			reset_password_expires = EXCLUDED.reset_password_expires
		RETURNING `+columns,
		string(u.ID),
		string(u.Email),
		string(u.Handle),
		u.Name,
		string(u.PasswordHash),
		u.Description,
		u.Image,
		u.Links,
		u.CreatedAt,
		token,
		expires,
	)
	return decodeUser(row)
}

func encodePasswordReset(reset c.Optional[user.PasswordReset]) (string, pgtype.Timestamptz) {
	if !reset.IsPresent {
		return "", pgtype.Timestamptz{Status: pgtype.Null}
	}
	return string(reset.Value.Token), pgtype.Timestamptz{Time: reset.Value.ExpiresAt, Status: pgtype.Present}
}

func decodeUser(row pgx.Row) (u user.User, err error) {
	var (
		id, email, handle, passwordHash, resetToken string
		createdAt                                   time.Time
		resetExpires                                pgtype.Timestamptz
	)
	err = row.Scan(
		&id,
		&email,
		&handle,
		&u.Name,
		&passwordHash,
		&u.Description,
		&u.Image,
		&u.Links,
		&createdAt,
		&resetToken,
		&resetExpires,
	)
	if err != nil {
		return user.User{}, mapError(err)
	}
	u.ID = user.ID(id)
	u.Email = c.Email(email)
	u.Handle = user.Handle(handle)
	u.PasswordHash = user.PasswordHash(passwordHash)
	u.CreatedAt = createdAt.UTC()
	if resetToken != "" && resetExpires.Status == pgtype.Present {
		u.PasswordReset = c.NewOptional(user.PasswordReset{
			Token:     user.PasswordResetToken(resetToken),
			ExpiresAt: resetExpires.Time.UTC(),
		}, true)
	}
	if err := u.Validate(); err != nil {
		return user.User{}, err
	}
	return u, nil
}

func mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return user.ErrUserDoesNotExist
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		switch pgErr.ConstraintName {
		case EMAIL_CONSTRAINT_NAME:
			return user.ErrEmailAlreadyExists
		case HANDLE_CONSTRAINT_NAME:
			return user.ErrHandleAlreadyExists
		}
	}
	return user.NewStoreFailure(err)
}
