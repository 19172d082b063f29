package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spinwin/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login and JWT verification.
type AuthService struct {
	jwtSecret     string
	staffUsername string
	staffEmail    string
	staffPassword string
	accounts      AccountStore
	validate      *validator.Validate
}

// NewAuthService creates a new AuthService.
func NewAuthService(jwtSecret, staffUsername, staffEmail, staffPassword string, accounts AccountStore) *AuthService {
	return &AuthService{
		jwtSecret:     jwtSecret,
		staffUsername: staffUsername,
		staffEmail:    staffEmail,
		staffPassword: staffPassword,
		accounts:      accounts,
		validate:      validator.New(),
	}
}

// SeedStaff creates the default staff account if it doesn't exist.
func (s *AuthService) SeedStaff(ctx context.Context) error {
	exists, err := s.accounts.EmailExists(ctx, s.staffEmail)
	if err != nil {
		return fmt.Errorf("failed to check staff existence: %w", err)
	}
	if exists {
		log.Printf("✅ Staff account already exists (%s)", s.staffEmail)
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(s.staffPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash staff password: %w", err)
	}

	now := time.Now()
	staff := &domain.Account{
		ID:        domain.NewAccountID(),
		Username:  s.staffUsername,
		Email:     s.staffEmail,
		Password:  string(hashed),
		Role:      domain.RoleStaff,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.accounts.Create(ctx, staff); err != nil {
		return fmt.Errorf("failed to create staff account: %w", err)
	}

	log.Printf("✅ Staff account created (%s)", s.staffEmail)
	return nil
}

// Register creates an account with its shop-owner profile and an inert
// subscription. Username and email uniqueness are case-insensitive.
func (s *AuthService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.AccountResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	taken, err := s.accounts.UsernameExists(ctx, req.Username)
	if err != nil {
		return nil, domain.ErrInternal("failed to check username", err)
	}
	if taken {
		return nil, domain.ErrConflict("username already exists")
	}

	taken, err = s.accounts.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, domain.ErrInternal("failed to check email", err)
	}
	if taken {
		return nil, domain.ErrConflict("email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.ErrInternal("failed to hash password", err)
	}

	now := time.Now()
	account := &domain.Account{
		ID:        domain.NewAccountID(),
		Username:  req.Username,
		Email:     req.Email,
		Password:  string(hashed),
		Role:      domain.RoleOwner,
		CreatedAt: now,
		UpdatedAt: now,
	}
	owner := &domain.ShopOwner{
		ID:        domain.NewAccountID(),
		AccountID: account.ID,
		ImageURL:  req.ImageURL,
		CreatedAt: now,
	}

	if err := s.accounts.CreateOwner(ctx, account, owner); err != nil {
		// The unique indexes close the TOCTOU window left by the checks above.
		return nil, domain.ErrConflict("username or email already registered")
	}

	return &domain.AccountResponse{
		ID:        account.ID,
		Username:  account.Username,
		Email:     account.Email,
		Role:      account.Role,
		CreatedAt: account.CreatedAt,
	}, nil
}

// Login validates credentials and returns a signed JWT.
func (s *AuthService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	account, err := s.accounts.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, domain.ErrInternal("failed to find account", err)
	}
	if account == nil {
		return nil, domain.ErrUnauthorized("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)); err != nil {
		return nil, domain.ErrUnauthorized("invalid email or password")
	}

	claims := jwt.MapClaims{
		"sub":   account.ID,
		"email": account.Email,
		"role":  account.Role,
		"exp":   time.Now().Add(7 * 24 * time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, domain.ErrInternal("failed to sign token", err)
	}

	return &domain.LoginResponse{
		Token: signed,
		User: domain.LoginUser{
			ID:       account.ID,
			Username: account.Username,
			Email:    account.Email,
			Role:     account.Role,
		},
	}, nil
}

// VerifyToken validates a JWT and returns its claims.
func (s *AuthService) VerifyToken(tokenStr string) (*domain.JWTClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, domain.ErrUnauthorized("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrUnauthorized("invalid token claims")
	}

	return &domain.JWTClaims{
		Sub:   getClaimString(claims, "sub"),
		Email: getClaimString(claims, "email"),
		Role:  getClaimString(claims, "role"),
	}, nil
}

func getClaimString(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

// GetAccountByID returns an account view by ID (for /api/auth/me).
func (s *AuthService) GetAccountByID(ctx context.Context, id string) (*domain.AccountResponse, error) {
	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return nil, domain.ErrInternal("failed to find account", err)
	}
	if account == nil {
		return nil, domain.ErrNotFound("account not found")
	}
	return &domain.AccountResponse{
		ID:        account.ID,
		Username:  account.Username,
		Email:     account.Email,
		Role:      account.Role,
		CreatedAt: account.CreatedAt,
	}, nil
}
