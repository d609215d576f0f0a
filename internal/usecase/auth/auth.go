package usecase_auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/moviehistory/core/internal/model"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrLoginTaken         = errors.New("login already registered")
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrUnauthenticated    = errors.New("no authenticated user")
	ErrInternal           = errors.New("internal error")
)

type UserRepository interface {
	// Create persists a new user. Returns ErrLoginTaken when the login
	// is already registered.
	Create(ctx context.Context, u model.User) error
	ByLogin(ctx context.Context, login string) (model.User, error)
	ByID(ctx context.Context, id uuid.UUID) (model.User, error)
}

// SessionCache holds the id of every live session so tokens can be
// revoked before they expire.
type SessionCache interface {
	Set(key string, value string, ttl time.Duration) error
	Get(key string) (string, error)
	Delete(key string) error
}

type Usecase struct {
	users    UserRepository
	sessions SessionCache
	secret   []byte
	ttl      time.Duration
}

func New(users UserRepository, sessions SessionCache, secret string, ttl time.Duration) *Usecase {
	return &Usecase{
		users:    users,
		sessions: sessions,
		secret:   []byte(secret),
		ttl:      ttl,
	}
}

type claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

func (u *Usecase) Register(ctx context.Context, login, name, password string) (model.User, error) {
	if login == "" || password == "" {
		return model.User{}, fmt.Errorf("%w: login and password are required", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	user := model.User{
		ID:       uuid.New(),
		Login:    login,
		Name:     name,
		Password: hash,
	}

	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrLoginTaken) {
			return model.User{}, err
		}
		return model.User{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	return user, nil
}

// Login verifies credentials and issues a signed token whose session
// id is cached for revocation.
func (u *Usecase) Login(ctx context.Context, login, password string) (string, model.User, error) {
	user, err := u.users.ByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return "", model.User{}, err
		}
		return "", model.User{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.Password, []byte(password)); err != nil {
		return "", model.User{}, ErrInvalidCredentials
	}

	sessionID := uuid.NewString()
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID: user.ID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(u.ttl)),
		},
	})

	signed, err := token.SignedString(u.secret)
	if err != nil {
		return "", model.User{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	if err := u.sessions.Set(sessionID, user.ID.String(), u.ttl); err != nil {
		return "", model.User{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	return signed, user, nil
}

// CurrentUser resolves the user behind a token. Anything short of a
// valid, unexpired, unrevoked session is ErrUnauthenticated.
func (u *Usecase) CurrentUser(ctx context.Context, token string) (model.User, error) {
	if token == "" {
		return model.User{}, ErrUnauthenticated
	}

	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return u.secret, nil
	})
	if err != nil || !parsed.Valid {
		return model.User{}, ErrUnauthenticated
	}

	cached, err := u.sessions.Get(c.ID)
	if err != nil {
		return model.User{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	if cached == "" || cached != c.UserID {
		return model.User{}, ErrUnauthenticated
	}

	userID, err := uuid.Parse(c.UserID)
	if err != nil {
		return model.User{}, ErrUnauthenticated
	}

	user, err := u.users.ByID(ctx, userID)
	if err != nil {
		return model.User{}, ErrUnauthenticated
	}

	return user, nil
}

func (u *Usecase) Logout(ctx context.Context, token string) error {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		return u.secret, nil
	})
	if err != nil || !parsed.Valid {
		return ErrUnauthenticated
	}

	if err := u.sessions.Delete(c.ID); err != nil {
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return nil
}
