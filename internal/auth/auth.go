package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/felixonline247/opolo-cbt-app/internal"
	"github.com/felixonline247/opolo-cbt-app/internal/permission"
)

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (AuthTokens, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	SessionFor(ctx context.Context, claims *Claims) (*SessionUser, error)
}

// Member is the slice of a staff row the auth flow reads. It is defined here
// rather than borrowed from the staff package so that feature handlers can
// import auth for the context accessors without forming a cycle.
type Member struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	IsActive     bool
}

// StaffDirectory is the credential lookup auth needs.
type StaffDirectory interface {
	GetByEmail(email string) (*Member, error)
}

type TokenGeneratorAPI interface {
	GenerateAccessToken(userID string, email string) (token string, err error)
	GenerateRefreshToken(userID string, email string) (token string, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

// SessionUser is the authenticated identity attached to each request. Its
// permission resolution may still be pending; Permissions surfaces that as
// ErrUnresolved so gated handlers suspend instead of denying.
type SessionUser struct {
	ID     int64                  `json:"id"`
	Email  string                 `json:"email"`
	Name   string                 `json:"name"`
	Access *permission.Resolution `json:"-"`
}

func (u *SessionUser) Permissions() (permission.Set, error) {
	if u.Access == nil || !u.Access.Resolved() {
		return permission.Empty(), internal.ErrUnresolved
	}
	return u.Access.Set(), nil
}

// Can answers a single permission query through the resolution.
func (u *SessionUser) Can(id string) (bool, error) {
	if u.Access == nil {
		return false, internal.ErrUnresolved
	}
	return u.Access.Allowed(id)
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Claims represents JWT token claims
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

type ctxKey string

const ContextUserKey ctxKey = "user"

func UserFromContext(ctx context.Context) (*SessionUser, bool) {
	u, ok := ctx.Value(ContextUserKey).(*SessionUser)
	return u, ok
}

func ContextWithUser(ctx context.Context, user *SessionUser) context.Context {
	return context.WithValue(ctx, ContextUserKey, user)
}
