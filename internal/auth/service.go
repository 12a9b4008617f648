package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sobrinN/DASH.rh/internal"
	"github.com/sobrinN/DASH.rh/internal/company"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is the credential store: identities keyed by a globally
// unique, lower-cased email.
type UserRepository interface {
	// CreateWithCompany inserts the user and its company in one transaction.
	// Returns internal.ErrEmailTaken when the normalized email exists.
	CreateWithCompany(user *StoredUser, comp *company.Company) error
	GetByEmail(email string) (*StoredUser, error)
	GetByID(id string) (*StoredUser, error)
	// UpdatePasswordHash is reserved for hash rotation; no handler calls it yet.
	UpdatePasswordHash(userID, hash string) error
}

// CompanyService resolves and mutates the tenant owned by a user.
type CompanyService interface {
	GetByOwner(userID string) (*company.Company, error)
	Rename(userID, name string) (*company.Company, error)
	ChangePlan(userID, plan string) (*company.Company, error)
}

// StoredUser is the repository-level identity record. The hash stays inside
// the auth package.
type StoredUser struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Service is the main auth service with dependencies.
type Service struct {
	userRepo       UserRepository
	companies      CompanyService
	tokenGenerator TokenGenerator
	bcryptCost     int
	logger         *slog.Logger
}

func NewService(userRepo UserRepository, companies CompanyService, tokenGen TokenGenerator, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		userRepo:       userRepo,
		companies:      companies,
		tokenGenerator: tokenGen,
		bcryptCost:     bcryptCost,
		logger:         logger,
	}
}

// SignUp registers a new identity and creates its company atomically. The
// company starts on the free plan.
func (s *Service) SignUp(dto SignUpDTO) (*Session, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	now := time.Now()
	user := &StoredUser{
		ID:           uuid.NewString(),
		Email:        dto.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	comp := &company.Company{
		ID:        uuid.NewString(),
		Name:      dto.CompanyName,
		OwnerID:   user.ID,
		Plan:      company.PlanFree,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.userRepo.CreateWithCompany(user, comp); err != nil {
		if appErr, ok := internal.IsAppError(err); ok && appErr.Code == internal.ErrCodeEmailTaken {
			return nil, err
		}
		s.logger.Error("signup failed", "error", err, "email", dto.Email)
		return nil, internal.NewInternalError("failed to create account", err)
	}

	token, err := s.tokenGenerator.GenerateToken(user.ID, user.Email)
	if err != nil {
		s.logger.Error("token generation failed after signup", "error", err, "user_id", user.ID)
		return nil, internal.NewInternalError("failed to issue session token", err)
	}

	s.logger.Info("account created", "user_id", user.ID, "company_id", comp.ID)

	return &Session{
		User:        User{ID: user.ID, Email: user.Email},
		Company:     comp,
		AccessToken: token,
	}, nil
}

// SignIn validates credentials and returns a fresh session. Unknown email and
// wrong password produce the same error.
func (s *Service) SignIn(dto SignInDTO) (*Session, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(dto.Email)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, internal.ErrInvalidCredentials
		}
		return nil, internal.NewInternalError("failed to look up credentials", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(dto.Password)); err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	comp, err := s.companies.GetByOwner(user.ID)
	if err != nil {
		// A verified identity without a tenant cannot be authorized.
		s.logger.Error("signin: no company for user", "error", err, "user_id", user.ID)
		return nil, internal.ErrInvalidCredentials
	}

	token, err := s.tokenGenerator.GenerateToken(user.ID, user.Email)
	if err != nil {
		s.logger.Error("token generation failed", "error", err, "user_id", user.ID)
		return nil, internal.NewInternalError("failed to issue session token", err)
	}

	return &Session{
		User:        User{ID: user.ID, Email: user.Email},
		Company:     comp,
		AccessToken: token,
	}, nil
}

// ResolveSession verifies a presented token and resolves its tenant. Every
// authenticated request pays one store read here, which keeps the session
// stateless while always reflecting the company's current plan.
func (s *Service) ResolveSession(tokenString string) (*Session, error) {
	claims, err := s.tokenGenerator.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, internal.ErrInvalidToken
		}
		// Store failure is an internal fault, not an authentication verdict.
		return nil, internal.NewInternalError("failed to resolve session", err)
	}

	comp, err := s.companies.GetByOwner(user.ID)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, internal.ErrInvalidToken
		}
		return nil, internal.NewInternalError("failed to resolve session", err)
	}

	return &Session{
		User:        User{ID: user.ID, Email: user.Email},
		Company:     comp,
		AccessToken: tokenString,
	}, nil
}

func (s *Service) RenameCompany(userID, name string) (*company.Company, error) {
	return s.companies.Rename(userID, name)
}

func (s *Service) ChangeCompanyPlan(userID, plan string) (*company.Company, error) {
	return s.companies.ChangePlan(userID, plan)
}

// JWTTokenGenerator issues HS256 tokens from a single server-wide secret.
type JWTTokenGenerator struct {
	Secret   []byte
	TokenTTL time.Duration
}

func NewJWTTokenGenerator(secret string, ttl time.Duration) *JWTTokenGenerator {
	if ttl <= 0 {
		ttl = internal.DefaultTokenDuration
	}
	return &JWTTokenGenerator{
		Secret:   []byte(secret),
		TokenTTL: ttl,
	}
}

// GenerateToken creates a signed session token embedding identity and an
// absolute expiry. Issuance is a pure function of the inputs and the secret.
func (j *JWTTokenGenerator) GenerateToken(userID, email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.Secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken verifies signature and expiry and returns the claims.
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, internal.ErrInvalidToken
}
