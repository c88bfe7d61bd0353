package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/AriaGT/sistema-libreria/internal/app/models"
)

// ErrNotFound is returned by every repository when the requested row does not exist
var ErrNotFound = errors.New("record not found")

// Querier is the subset of pgx shared by pgxpool.Pool and pgx.Tx
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// GradeRepository persists grades
type GradeRepository interface {
	Create(ctx context.Context, grade *models.Grade) error
	GetByID(ctx context.Context, id int64) (*models.Grade, error)
	List(ctx context.Context) ([]*models.Grade, error)
	Update(ctx context.Context, grade *models.Grade) error
	Delete(ctx context.Context, id int64) error
}

// SectionRepository persists sections
type SectionRepository interface {
	Create(ctx context.Context, section *models.Section) error
	GetByID(ctx context.Context, id int64) (*models.Section, error)
	ListByGrade(ctx context.Context, gradeID int64) ([]*models.Section, error)
	Update(ctx context.Context, section *models.Section) error
	Delete(ctx context.Context, id int64) error
}

// CourseRepository persists courses
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	ListBySection(ctx context.Context, sectionID int64) ([]*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
	ExistsByTeacher(ctx context.Context, teacherID int64) (bool, error)
}

// BookRepository persists books
type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	ListByCourse(ctx context.Context, courseID int64) ([]*models.Book, error)
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id int64) error
	ExistsByCreator(ctx context.Context, userID int64) (bool, error)
}

// UserRepository persists users
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
}

// EnrollmentRepository persists student_sections links
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	GetByID(ctx context.Context, id int64) (*models.Enrollment, error)
	FindBySectionAndStudent(ctx context.Context, sectionID, studentID int64) (*models.Enrollment, error)
	ListBySection(ctx context.Context, sectionID int64) ([]*models.Enrollment, error)
	ListStudents(ctx context.Context, sectionID int64) ([]*models.User, error)
	Update(ctx context.Context, enrollment *models.Enrollment) error
	Delete(ctx context.Context, id int64) error
	DeleteByStudent(ctx context.Context, studentID int64) (int64, error)
}

// Repositories holds all the repository instances bound to one unit of work
type Repositories struct {
	Grades      GradeRepository
	Sections    SectionRepository
	Courses     CourseRepository
	Books       BookRepository
	Users       UserRepository
	Enrollments EnrollmentRepository
}

// AtomicFn runs inside a single unit of work
type AtomicFn func(ctx context.Context, repos *Repositories) error

// Store opens units of work. Atomic commits when fn returns nil and
// rolls back every change made through repos otherwise.
type Store interface {
	Atomic(ctx context.Context, fn AtomicFn) error
	Close()
}

// NewRepositories initializes all repositories on top of q
func NewRepositories(q Querier) *Repositories {
	sb := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return &Repositories{
		Grades:      &gradeRepository{q: q, sb: sb},
		Sections:    &sectionRepository{q: q, sb: sb},
		Courses:     &courseRepository{q: q, sb: sb},
		Books:       &bookRepository{q: q, sb: sb},
		Users:       &userRepository{q: q, sb: sb},
		Enrollments: &enrollmentRepository{q: q, sb: sb},
	}
}
