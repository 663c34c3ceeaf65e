package user

import (
	"errors"
)

type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindDuplicateEmail
	KindDuplicateHandle
	KindUserNotFound
	KindInvalidCredential
	KindInvalidOrExpiredToken
	KindHashingFailure
	KindStoreFailure
)

var kindNames = map[ErrorKind]string{
	KindUnknown:               "unknown",
	KindDuplicateEmail:        "duplicate_email",
	KindDuplicateHandle:       "duplicate_handle",
	KindUserNotFound:          "user_not_found",
	KindInvalidCredential:     "invalid_credential",
	KindInvalidOrExpiredToken: "invalid_or_expired_token",
	KindHashingFailure:        "hashing_failure",
	KindStoreFailure:          "store_failure",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnknown]
}

// Error is a user domain error. Two errors are equal for errors.Is when
// their kinds match, so wrapped causes do not affect matching.
type Error struct {
	Kind ErrorKind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrEmailAlreadyExists        = &Error{Kind: KindDuplicateEmail, msg: "email already exists"}
	ErrHandleAlreadyExists       = &Error{Kind: KindDuplicateHandle, msg: "handle already exists"}
	ErrUserDoesNotExist          = &Error{Kind: KindUserNotFound, msg: "user does not exist"}
	ErrInvalidCredentials        = &Error{Kind: KindInvalidCredential, msg: "invalid credentials"}
	ErrInvalidPasswordResetToken = &Error{Kind: KindInvalidOrExpiredToken, msg: "invalid or expired password reset token"}
	ErrHashingFailure            = &Error{Kind: KindHashingFailure, msg: "could not hash password"}
	ErrStoreFailure              = &Error{Kind: KindStoreFailure, msg: "user store failure"}
)

func NewHashingFailure(err error) error {
	return &Error{Kind: KindHashingFailure, msg: ErrHashingFailure.msg, err: err}
}

func NewStoreFailure(err error) error {
	return &Error{Kind: KindStoreFailure, msg: ErrStoreFailure.msg, err: err}
}

// KindOf returns the kind of the first user domain error in err's chain.
func KindOf(err error) ErrorKind {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return KindUnknown
}
