package user

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	c "linkea/internal/core/domain/common"
)

type FakePasswordHasher struct {
	ReturnError bool
	Calls       int
	lock        sync.Mutex
}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	h.lock.Lock()
	h.Calls++
	h.lock.Unlock()
	if h.ReturnError {
		return PasswordHash(""), fmt.Errorf("could not hash password")
	}
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}

type FakePasswordResetTokenGenerator struct {
	Tokens []PasswordResetToken
	next   int
	lock   sync.Mutex
}

func NewFakePasswordResetTokenGenerator(tokens ...string) *FakePasswordResetTokenGenerator {
	g := &FakePasswordResetTokenGenerator{}
	for _, token := range tokens {
		g.Tokens = append(g.Tokens, PasswordResetToken(token))
	}
	return g
}

func (g *FakePasswordResetTokenGenerator) GeneratePasswordResetToken() PasswordResetToken {
	g.lock.Lock()
	defer g.lock.Unlock()
	if g.next >= len(g.Tokens) {
		panic("no more fake password reset tokens")
	}
	token := g.Tokens[g.next]
	g.next++
	return token
}

func (g *FakePasswordResetTokenGenerator) GenerateExpiration(now time.Time) time.Time {
	return now.Add(time.Hour)
}

func (g *FakePasswordResetTokenGenerator) IsExpired(expiration time.Time, now time.Time) bool {
	return now.After(expiration)
}

type FakeCredentialIssuer struct {
	ReturnError bool
}

func NewFakeCredentialIssuer() *FakeCredentialIssuer {
	return &FakeCredentialIssuer{}
}

func (i *FakeCredentialIssuer) IssueCredential(id ID) (SessionCredential, error) {
	if i.ReturnError {
		return SessionCredential(""), fmt.Errorf("could not issue credential")
	}
	return SessionCredential("credential-" + string(id)), nil
}

func (i *FakeCredentialIssuer) VerifyCredential(credential SessionCredential) (ID, error) {
	id, ok := strings.CutPrefix(string(credential), "credential-")
	if !ok || id == "" {
		return ID(""), ErrInvalidCredentials
	}
	return ID(id), nil
}

type FakeMailSender struct {
	Sent        []Message
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeMailSender() *FakeMailSender {
	return &FakeMailSender{}
}

func (s *FakeMailSender) Send(ctx context.Context, message Message) error {
	if s.ReturnError {
		return fmt.Errorf("could not send message to %s", message.To)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, message)
	return nil
}

func (s *FakeMailSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}

func (s *FakeMailSender) LastSent() Message {
	s.lock.Lock()
	defer s.lock.Unlock()
	l := len(s.Sent)
	if l == 0 {
		panic("Sent count is 0.")
	}
	return s.Sent[l-1]
}

type FakeImageStore struct {
	Uploaded    [][]byte
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeImageStore() *FakeImageStore {
	return &FakeImageStore{}
}

func (s *FakeImageStore) Upload(ctx context.Context, contentType string, body io.Reader) (string, error) {
	if s.ReturnError {
		return "", fmt.Errorf("could not upload image")
	}
	content, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Uploaded = append(s.Uploaded, content)
	return fmt.Sprintf("https://images.test/%d", len(s.Uploaded)), nil
}

type FakeProfileCache struct {
	Profiles    map[Handle]PublicProfile
	Invalidated []Handle
	lock        sync.Mutex
}

func NewFakeProfileCache() *FakeProfileCache {
	return &FakeProfileCache{Profiles: make(map[Handle]PublicProfile)}
}

func (pc *FakeProfileCache) Get(ctx context.Context, handle Handle) (PublicProfile, bool) {
	pc.lock.Lock()
	defer pc.lock.Unlock()
	profile, ok := pc.Profiles[handle]
	return profile, ok
}

func (pc *FakeProfileCache) Set(ctx context.Context, profile PublicProfile) {
	pc.lock.Lock()
	defer pc.lock.Unlock()
	pc.Profiles[profile.Handle] = profile
}

func (pc *FakeProfileCache) Invalidate(ctx context.Context, handles ...Handle) {
	pc.lock.Lock()
	defer pc.lock.Unlock()
	for _, handle := range handles {
		delete(pc.Profiles, handle)
		pc.Invalidated = append(pc.Invalidated, handle)
	}
}

type FakeUserRepository struct {
	Users       []User
	SaveCalls   int
	GetCalls    int
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{Users: make([]User, 0, 10)}
}

func (r *FakeUserRepository) Create(ctx context.Context, input CreateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, NewStoreFailure(fmt.Errorf("could not create user %s", input.Email))
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	u = User{
		ID:           ID(fmt.Sprintf("user-%d", len(r.Users)+1)),
		Email:        input.Email,
		Handle:       input.Handle,
		Name:         input.Name,
		PasswordHash: input.PasswordHash,
		CreatedAt:    input.CreatedAt,
	}
	if err := r.checkUnique(u); err != nil {
		return User{}, err
	}
	r.Users = append(r.Users, u)
	return u, nil
}

func (r *FakeUserRepository) GetByID(ctx context.Context, id ID) (u User, err error) {
	return r.find(func(u User) bool { return u.ID == id })
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email c.Email) (u User, err error) {
	return r.find(func(u User) bool { return u.Email == email })
}

func (r *FakeUserRepository) GetByHandle(ctx context.Context, handle Handle) (u User, err error) {
	return r.find(func(u User) bool { return u.Handle == handle })
}

func (r *FakeUserRepository) GetByPasswordResetToken(
	ctx context.Context,
	token PasswordResetToken,
	asOf time.Time,
) (u User, err error) {
	return r.find(func(u User) bool {
		return u.PasswordReset.IsPresent &&
			u.PasswordReset.Value.Token == token &&
			!asOf.After(u.PasswordReset.Value.ExpiresAt)
	})
}

func (r *FakeUserRepository) Save(ctx context.Context, u User) (User, error) {
	if r.ReturnError {
		return User{}, NewStoreFailure(fmt.Errorf("could not save user %s", u.ID))
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.SaveCalls++
	if err := r.checkUnique(u); err != nil {
		return User{}, err
	}
	for ix := range r.Users {
		if r.Users[ix].ID == u.ID {
			r.Users[ix] = u
			return u, nil
		}
	}
	r.Users = append(r.Users, u)
	return u, nil
}

// MustGet returns the stored user with the given email, panicking if absent.
func (r *FakeUserRepository) MustGet(email c.Email) User {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Email == email {
			return u
		}
	}
	panic(fmt.Sprintf("user %s does not exist", email))
}

func (r *FakeUserRepository) find(match func(User) bool) (u User, err error) {
	if r.ReturnError {
		return u, NewStoreFailure(fmt.Errorf("could not get user"))
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.GetCalls++
	for _, u := range r.Users {
		if match(u) {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) checkUnique(u User) error {
	for _, existing := range r.Users {
		if existing.ID == u.ID {
			continue
		}
		if existing.Email == u.Email {
			return ErrEmailAlreadyExists
		}
		if existing.Handle == u.Handle {
			return ErrHandleAlreadyExists
		}
	}
	return nil
}
