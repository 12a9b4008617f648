package auth

import (
	"regexp"
	"strings"

	"github.com/sobrinN/DASH.rh/internal/company"
)

const MinPasswordLength = 8

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SignUpDTO is the transport shape for account creation. Email is normalized
// to lower case before any lookup or insert.
type SignUpDTO struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	CompanyName string `json:"companyName"`
}

type SignInDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdatePlanDTO struct {
	Plan string `json:"plan"`
}

type UpdateNameDTO struct {
	Name string `json:"name"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d *SignUpDTO) Validate() error {
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	if d.Email == "" {
		return ValidationError{Msg: "email is required"}
	}
	if !emailRegex.MatchString(d.Email) {
		return ValidationError{Msg: "email format is invalid"}
	}
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	if len(d.Password) < MinPasswordLength {
		return ValidationError{Msg: "password must be at least 8 characters"}
	}
	if strings.TrimSpace(d.CompanyName) == "" {
		return ValidationError{Msg: "companyName is required"}
	}
	return nil
}

func (d *SignInDTO) Validate() error {
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	if d.Email == "" {
		return ValidationError{Msg: "email is required"}
	}
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	return nil
}

// ----------------- RESPONSES -----------------

type TokenPayload struct {
	AccessToken string `json:"access_token"`
}

// AuthResponse is returned by signup and signin.
type AuthResponse struct {
	User    User             `json:"user"`
	Company *company.Company `json:"company"`
	Session TokenPayload     `json:"session"`
}

type SessionPayload struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}

// SessionResponse is returned by GET /session. Session is null when the
// presented token is absent or invalid; that case is not an error status.
type SessionResponse struct {
	Session *SessionPayload  `json:"session"`
	Company *company.Company `json:"company,omitempty"`
}

func (s *Session) ToAuthResponse() AuthResponse {
	return AuthResponse{
		User:    s.User,
		Company: s.Company,
		Session: TokenPayload{AccessToken: s.AccessToken},
	}
}

func (s *Session) ToSessionResponse() SessionResponse {
	return SessionResponse{
		Session: &SessionPayload{User: s.User, AccessToken: s.AccessToken},
		Company: s.Company,
	}
}
