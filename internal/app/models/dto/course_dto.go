package dto

// CreateCourseRequest represents the payload for creating a course
type CreateCourseRequest struct {
	Name      string `json:"name" binding:"required,max=150"`
	SectionID *int64 `json:"section_id"`
	TeacherID int64  `json:"teacher_id" binding:"required,gt=0"`
}

// UpdateCourseRequest represents a partial course update
type UpdateCourseRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=150"`
	SectionID *int64  `json:"section_id"`
	TeacherID *int64  `json:"teacher_id" binding:"omitempty,gt=0"`
}
