package dto

import "github.com/AriaGT/sistema-libreria/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"Bearer"`
	ExpiresIn   int64  `json:"expires_in"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	Message string        `json:"message" example:"Login successful"`
	User    *models.User  `json:"user"`
	Token   TokenResponse `json:"token"`
}
