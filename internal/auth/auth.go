package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sobrinN/DASH.rh/internal/company"
)

// User is the identity shape exposed to API clients. The password hash never
// leaves the repository layer.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is the result of resolving a bearer token: the verified identity
// plus the company it owns. Handlers downstream of the middleware only ever
// see tenant data through Session.Company.
type Session struct {
	User        User
	Company     *company.Company
	AccessToken string
}

// Claims embedded in every session token. Validity is determined purely by
// signature and expiry; there is no server-side session state.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenGenerator issues and verifies session tokens.
type TokenGenerator interface {
	GenerateToken(userID, email string) (token string, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

// ServiceAPI is what the HTTP handler needs from the auth service.
type ServiceAPI interface {
	SignUp(dto SignUpDTO) (*Session, error)
	SignIn(dto SignInDTO) (*Session, error)
	ResolveSession(token string) (*Session, error)
	RenameCompany(userID, name string) (*company.Company, error)
	ChangeCompanyPlan(userID, plan string) (*company.Company, error)
}

type ctxKey string

const ContextSessionKey ctxKey = "session"

// SessionFromContext returns the resolved session placed by AuthMiddleware.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ContextSessionKey).(*Session)
	return s, ok
}

func ContextWithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ContextSessionKey, s)
}

// ExpiresAt reports the token expiry carried in claims, zero when absent.
func (c *Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}
