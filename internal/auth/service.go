// Package auth registers users, checks passwords and issues the bearer
// tokens that identify callers of the HTTP API.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fjacquet/mocktest/internal/logging"
	"fjacquet/mocktest/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const issuer = "mocktest"

var (
	// ErrInvalidCredentials hides whether the username or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken covers missing, malformed, expired and forged tokens.
	ErrInvalidToken = errors.New("invalid token")
	// ErrMissingFields is returned by Register for a blank username or password.
	ErrMissingFields = errors.New("username and password are required")
	// ErrNoSecret is returned when tokens are requested without a signing key.
	ErrNoSecret = errors.New("jwt secret is not configured")
)

// UserStore is the part of the record store auth reads and writes.
type UserStore interface {
	CreateUser(ctx context.Context, username, email, passwordHash, role string) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	GetUser(ctx context.Context, id int64) (models.User, error)
}

// Claims are the JWT claims carried by a bearer token. The subject is the
// user id.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Service implements registration, login and token handling.
type Service struct {
	users  UserStore
	secret []byte
	ttl    time.Duration
	cost   int
	logger logging.Logger
	now    func() time.Time
}

// NewService returns a Service signing tokens with secret. Tokens expire
// after ttl.
func NewService(users UserStore, secret string, ttl time.Duration, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		cost:   bcrypt.DefaultCost,
		logger: logger.WithField(logging.FieldComponent, "auth"),
		now:    time.Now,
	}
}

// Register creates an account with a bcrypt hash of password.
func (s *Service) Register(ctx context.Context, username, email, password, role string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.User{}, ErrMissingFields
	}
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleUser && role != models.RoleAdmin {
		return models.User{}, fmt.Errorf("unknown role %q", role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	return s.users.CreateUser(ctx, username, strings.TrimSpace(email), string(hash), role)
}

// Authenticate checks username and password and returns the account.
func (s *Service) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	u, err := s.users.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		s.logger.Debug("Login for unknown user", logging.F("username", username))
		return models.User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		s.logger.Debug("Login with wrong password", logging.F(logging.FieldUserID, u.ID))
		return models.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// Login authenticates and returns a signed token for the account.
func (s *Service) Login(ctx context.Context, username, password string) (string, models.User, error) {
	u, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", models.User{}, err
	}
	tok, err := s.IssueToken(u)
	if err != nil {
		return "", models.User{}, err
	}
	s.logger.Info("User logged in", logging.F(logging.FieldUserID, u.ID))
	return tok, u, nil
}

// IssueToken signs an HS256 token for u.
func (s *Service) IssueToken(u models.User) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrNoSecret
	}
	now := s.now()
	claims := &Claims{
		Username: u.Username,
		Role:     u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// ParseToken validates tokenStr and returns the identity it carries.
func (s *Service) ParseToken(tokenStr string) (Identity, error) {
	if len(s.secret) == 0 {
		return Identity{}, ErrNoSecret
	}
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	c, ok := token.Claims.(*Claims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: subject %q", ErrInvalidToken, c.Subject)
	}
	return Identity{UserID: id, Username: c.Username, Role: c.Role}, nil
}
