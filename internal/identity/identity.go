// Package identity registers users, checks passwords and issues the signed
// session tokens that carry an authenticated user id.
package identity

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/orbitrest/internal/apperr"
	"github.com/abhisek/orbitrest/internal/store"
)

const (
	// MinPasswordLength is the shortest accepted password.
	MinPasswordLength = 8

	// MaxPasswordLength is bcrypt's input limit in bytes.
	MaxPasswordLength = 72

	// DefaultTokenTTL matches the lifetime of the session cookie.
	DefaultTokenTTL = 30 * 24 * time.Hour

	maxUsernameLength = 64
	issuer            = "orbitrest"
)

// Config holds token and hashing settings.
type Config struct {
	Secret     []byte
	TokenTTL   time.Duration
	BcryptCost int
}

// User is the public view of an account.
type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Claims are the JWT claims of a session token. The subject is the user id.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim.
func (c *Claims) UserID() (int, error) {
	id, err := strconv.Atoi(c.Subject)
	if err != nil {
		return 0, fmt.Errorf("parse subject %q: %w", c.Subject, apperr.ErrUnauthorized)
	}
	return id, nil
}

// Service implements registration, login and token verification.
type Service struct {
	users store.UserRepo
	cfg   Config
	now   func() time.Time
}

// NewService creates an identity service. The secret must not be empty.
func NewService(users store.UserRepo, cfg Config) (*Service, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("identity: token secret is required")
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &Service{users: users, cfg: cfg, now: time.Now}, nil
}

// Register creates an account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, username, email, password string) (*User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	switch {
	case username == "":
		return nil, apperr.Invalid("username is required")
	case len(username) > maxUsernameLength:
		return nil, apperr.Invalid("username is longer than %d characters", maxUsernameLength)
	case len(password) < MinPasswordLength:
		return nil, apperr.Invalid("password must be at least %d characters", MinPasswordLength)
	case len(password) > MaxPasswordLength:
		return nil, apperr.Invalid("password must be at most %d bytes", MaxPasswordLength)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return nil, apperr.Invalid("malformed email %q", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	rec := &store.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Create(ctx, rec); err != nil {
		return nil, apperr.Storage("create user", err)
	}
	u := fromRecord(rec)
	return &u, nil
}

// Authenticate checks a username and password. Unknown users and wrong
// passwords fail with the same Unauthorized error.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	rec, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, apperr.Storage("get user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); err != nil {
		return nil, errInvalidCredentials
	}
	u := fromRecord(rec)
	return &u, nil
}

var errInvalidCredentials = fmt.Errorf("invalid username or password: %w", apperr.ErrUnauthorized)

// User returns the account with id.
func (s *Service) User(ctx context.Context, id int) (*User, error) {
	rec, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, apperr.Storage("get user", err)
	}
	u := fromRecord(rec)
	return &u, nil
}

// IssueToken signs a session token for u and returns it with its expiry.
func (s *Service) IssueToken(u *User) (string, time.Time, error) {
	now := s.now()
	expires := now.Add(s.cfg.TokenTTL)
	claims := Claims{
		Username: u.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.Itoa(u.ID),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expires, nil
}

// VerifyToken checks the signature and expiry of token. Any failure is
// reported as Unauthorized.
func (s *Service) VerifyToken(token string) (*Claims, error) {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	if token == "" {
		return nil, fmt.Errorf("missing token: %w", apperr.ErrUnauthorized)
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.cfg.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("verify token: %v: %w", err, apperr.ErrUnauthorized)
	}
	if _, err := claims.UserID(); err != nil {
		return nil, err
	}
	return claims, nil
}

func fromRecord(r *store.User) User {
	return User{
		ID:        r.ID,
		Username:  r.Username,
		Email:     r.Email,
		CreatedAt: r.CreatedAt,
	}
}
