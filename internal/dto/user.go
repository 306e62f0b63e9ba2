package dto

import (
	"time"

	"github.com/SscSPs/vault_ledger/internal/core/domain"
)

// RegisterUserRequest defines the data needed to register a user.
type RegisterUserRequest struct {
	FullName     string `json:"fullName" binding:"required,max=100"`
	MobileNumber string `json:"mobileNumber" binding:"required,mobile"`
	Email        string `json:"email" binding:"omitempty,email"`
	PIN          string `json:"pin" binding:"required,pin6"`
}

// LoginRequest carries mobile number and PIN credentials.
type LoginRequest struct {
	MobileNumber string `json:"mobileNumber" binding:"required,mobile"`
	PIN          string `json:"pin" binding:"required,pin6"`
}

// ChangePINRequest replaces the login PIN.
type ChangePINRequest struct {
	CurrentPIN string `json:"currentPin" binding:"required,pin6"`
	NewPIN     string `json:"newPin" binding:"required,pin6"`
}

// UserResponse defines the user data returned to callers.
type UserResponse struct {
	UserID       string    `json:"userID"`
	FullName     string    `json:"fullName"`
	MobileNumber string    `json:"mobileNumber"`
	Email        string    `json:"email,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RegisterUserResponse adds the advisory weak PIN flag.
type RegisterUserResponse struct {
	User    UserResponse `json:"user"`
	WeakPIN bool         `json:"weakPin"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:       u.UserID,
		FullName:     u.FullName,
		MobileNumber: u.MobileNumber,
		Email:        u.Email,
		CreatedAt:    u.CreatedAt,
	}
}
