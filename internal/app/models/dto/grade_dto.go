package dto

// CreateGradeRequest represents the payload for creating a grade
type CreateGradeRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// UpdateGradeRequest represents a partial grade update
type UpdateGradeRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=100"`
}

// CreateSectionRequest represents the payload for creating a section.
// GradeID is optional; when present it must match the path.
type CreateSectionRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	GradeID *int64 `json:"grade_id"`
}

// UpdateSectionRequest represents a partial section update
type UpdateSectionRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=100"`
	GradeID *int64  `json:"grade_id"`
}
