package domain

import (
	"time"

	"github.com/google/uuid"
)

// Roles assignable to an account.
const (
	RoleOwner = "owner"
	RoleStaff = "staff"
)

// Account is a registered person. Username and email are unique
// case-insensitively, enforced at creation.
type Account struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewAccountID generates a unique account identifier.
func NewAccountID() string {
	return uuid.New().String()
}

// RegisterRequest is the input for account registration.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	ImageURL string `json:"imageUrl" validate:"omitempty,max=500"`
}

// LoginRequest is the input for email/password login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginUser is the public account view embedded in a login response.
type LoginUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// LoginResponse carries the signed token and the account it belongs to.
type LoginResponse struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

// JWTClaims are the verified claims extracted from a bearer token.
type JWTClaims struct {
	Sub   string
	Email string
	Role  string
}

// AccountResponse is the account view returned to staff listings and /me.
type AccountResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}
