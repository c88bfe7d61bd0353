package models

// Enrollment links a student User to a Section ('student_sections' table).
// A (StudentID, SectionID) pair appears at most once.
type Enrollment struct {
	ID        int64 `json:"id" db:"id" example:"1"`
	StudentID int64 `json:"student_id" db:"student_id" example:"3"`
	SectionID int64 `json:"section_id" db:"section_id" example:"1"`
}
