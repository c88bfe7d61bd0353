package dto

// EnrollRequest represents the payload for enrolling a student in a section
type EnrollRequest struct {
	StudentID int64 `json:"student_id" binding:"required,gt=0"`
}

// UpdateEnrollmentRequest reassigns an enrollment to another student
type UpdateEnrollmentRequest struct {
	StudentID *int64 `json:"student_id" binding:"omitempty,gt=0"`
}
