package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID           int64     `json:"id" db:"id" example:"1"`                                     // Unique identifier for the user
	FullName     string    `json:"full_name" db:"full_name" example:"Ana Torres"`              // Display name
	Email        string    `json:"email" db:"email" example:"ana@school.edu"`                  // Unique login email
	PasswordHash string    `json:"-" db:"password_hash"`                                       // bcrypt digest (excluded from JSON)
	Role         Role      `json:"role" db:"role" example:"teacher"`                           // Open role string
	CreatedAt    time.Time `json:"created_at" db:"created_at" example:"2024-01-01T10:00:00Z"` // Set by the store
}
