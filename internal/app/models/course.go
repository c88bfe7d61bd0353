package models

import "time"

// Course belongs to a Section and is taught by a User ('courses' table)
type Course struct {
	ID        int64  `json:"id" db:"id" example:"1"`
	Name      string `json:"name" db:"name" example:"Matemáticas"`
	SectionID int64  `json:"section_id" db:"section_id" example:"1"`
	TeacherID int64  `json:"teacher_id" db:"teacher_id" example:"2"`
}

// Book belongs to a Course ('books' table)
type Book struct {
	ID          int64     `json:"id" db:"id" example:"1"`
	Title       string    `json:"title" db:"title" example:"Álgebra básica"`
	Author      string    `json:"author" db:"author" example:"A. Baldor"`
	Description *string   `json:"description,omitempty" db:"description"`                           // nullable
	FileURL     string    `json:"file_url" db:"file_url" example:"https://files.school.edu/baldor.pdf"`
	Category    *string   `json:"category,omitempty" db:"category"`                                 // nullable
	CourseID    int64     `json:"course_id" db:"course_id" example:"1"`
	CreatedBy   int64     `json:"created_by" db:"created_by" example:"2"`
	CreatedAt   time.Time `json:"created_at" db:"created_at" example:"2024-01-01T10:00:00Z"`
}
