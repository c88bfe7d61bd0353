package models

// Grade is the root of the school hierarchy ('grades' table)
type Grade struct {
	ID   int64  `json:"id" db:"id" example:"1"`
	Name string `json:"name" db:"name" example:"Primero"`
}

// Section belongs to a Grade ('sections' table)
type Section struct {
	ID      int64  `json:"id" db:"id" example:"1"`
	Name    string `json:"name" db:"name" example:"A"`
	GradeID int64  `json:"grade_id" db:"grade_id" example:"1"`
}
