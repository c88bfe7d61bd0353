package dto

// CreateUserRequest represents the payload for creating a user
type CreateUserRequest struct {
	FullName string `json:"full_name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Role     string `json:"role" binding:"required,max=50"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest represents a partial user update; nil fields are left untouched
type UpdateUserRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,min=1,max=255"`
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Role     *string `json:"role" binding:"omitempty,min=1,max=50"`
	Password *string `json:"password" binding:"omitempty,min=1"`
}
