package dto

// CreateBookRequest represents the payload for creating a book
type CreateBookRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Author      string  `json:"author" binding:"required,max=255"`
	Description *string `json:"description"`
	FileURL     string  `json:"file_url" binding:"required,max=500"`
	Category    *string `json:"category" binding:"omitempty,max=150"`
	CourseID    *int64  `json:"course_id"`
	CreatedBy   int64   `json:"created_by" binding:"required,gt=0"`
}

// UpdateBookRequest represents a partial book update.
// Description and category accept an explicit null to clear the column.
type UpdateBookRequest struct {
	Title       *string          `json:"title" binding:"omitempty,min=1,max=255"`
	Author      *string          `json:"author" binding:"omitempty,min=1,max=255"`
	Description Nullable[string] `json:"description" swaggertype:"string"`
	FileURL     *string          `json:"file_url" binding:"omitempty,min=1,max=500"`
	Category    Nullable[string] `json:"category" binding:"omitempty,max=150" swaggertype:"string"`
	CourseID    *int64           `json:"course_id"`
	CreatedBy   *int64           `json:"created_by" binding:"omitempty,gt=0"`
}
