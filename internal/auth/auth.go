package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/frahmantamala/commerce-management/internal"
)

// Role is the closed set of authorization roles. Policy checks are plain
// membership tests; there is no ordering or hierarchy between roles beyond
// what each call site spells out.
type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// TokenType distinguishes the two token classes signed with the same secret.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims is the JWT payload carried by both token classes.
type Claims struct {
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	TokenType TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

// Principal is the authenticated identity resolved from a bearer token for
// one request. It is re-resolved against the store on every request; there
// is no session cache.
type Principal struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	IsActive bool   `json:"is_active"`
}

// HasRole reports whether the principal's role is in the required set.
func (p *Principal) HasRole(required ...Role) bool {
	for _, r := range required {
		if p.Role == r {
			return true
		}
	}
	return false
}

// CanAccess implements the ownership rule: admins pass regardless of
// ownership, everyone else only for their own resources.
func (p *Principal) CanAccess(ownerID int64) bool {
	return p.Role == RoleAdmin || p.ID == ownerID
}

// UserInfo is the auth-facing view of a user row returned by login/register.
type UserInfo struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       Role      `json:"role"`
	Department string    `json:"department,omitempty"`
	Position   string    `json:"position,omitempty"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// ErrPrincipalNotFound signals a structurally valid token whose subject no
// longer exists; kept distinct from invalid-token failures.
var ErrPrincipalNotFound = internal.NewUnauthorizedError("User not found", internal.ErrCodeUserNotFound)

type ctxKey string

const ContextUserKey ctxKey = "principal"

// UserFromContext returns the principal resolved by the auth middleware.
func UserFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(ContextUserKey).(*Principal)
	return p, ok
}

func ContextWithUser(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ContextUserKey, p)
}
