package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AriaGT/sistema-libreria/internal/app/models"
	"github.com/AriaGT/sistema-libreria/internal/app/models/dto"
	"github.com/AriaGT/sistema-libreria/internal/app/repositories"
	"github.com/AriaGT/sistema-libreria/internal/app/repositories/memory"
	"github.com/AriaGT/sistema-libreria/internal/pkg/apperrors"
	"github.com/AriaGT/sistema-libreria/internal/pkg/auth"
)

type testEnv struct {
	ctx         context.Context
	store       repositories.Store
	users       *UserService
	auth        *AuthService
	grades      GradeService
	sections    SectionService
	courses     CourseService
	books       BookService
	enrollments EnrollmentService
}

func newTestEnvWithStore(t *testing.T, store repositories.Store) *testEnv {
	t.Helper()
	hasher := auth.NewBcryptHasher(4)
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "test"})
	return &testEnv{
		ctx:         context.Background(),
		store:       store,
		users:       NewUserService(store, hasher),
		auth:        NewAuthService(store, hasher, jwtService),
		grades:      NewGradeService(store),
		sections:    NewSectionService(store),
		courses:     NewCourseService(store),
		books:       NewBookService(store),
		enrollments: NewEnrollmentService(store),
	}
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithStore(t, memory.NewStore())
}

func ptr[T any](v T) *T { return &v }

func (e *testEnv) user(t *testing.T, email string, role models.Role) *models.User {
	t.Helper()
	u, err := e.users.CreateUser(e.ctx, &dto.CreateUserRequest{FullName: email, Email: email, Role: string(role), Password: "secret123"})
	require.NoError(t, err)
	return u
}

func (e *testEnv) grade(t *testing.T, name string) *models.Grade {
	t.Helper()
	g, err := e.grades.CreateGrade(e.ctx, &dto.CreateGradeRequest{Name: name})
	require.NoError(t, err)
	return g
}

func (e *testEnv) section(t *testing.T, gradeID int64, name string) *models.Section {
	t.Helper()
	s, err := e.sections.CreateSection(e.ctx, gradeID, &dto.CreateSectionRequest{Name: name})
	require.NoError(t, err)
	return s
}

func (e *testEnv) course(t *testing.T, sectionID, teacherID int64, name string) *models.Course {
	t.Helper()
	c, err := e.courses.CreateCourse(e.ctx, sectionID, &dto.CreateCourseRequest{Name: name, TeacherID: teacherID})
	require.NoError(t, err)
	return c
}

func (e *testEnv) book(t *testing.T, courseID, creatorID int64, title string) *models.Book {
	t.Helper()
	b, err := e.books.CreateBook(e.ctx, courseID, &dto.CreateBookRequest{
		Title: title, Author: "Author", FileURL: "https://files.example/" + title + ".pdf", CreatedBy: creatorID,
	})
	require.NoError(t, err)
	return b
}

// assertAppError checks both the error kind and its user-visible message
func assertAppError(t *testing.T, err error, kind error, message string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, kind), "expected %v, got %v", kind, err)
	assert.Equal(t, message, err.Error())
}

// faultyStore wraps a Store and lets a test replace repositories inside each unit of work
type faultyStore struct {
	repositories.Store
	wrap func(r *repositories.Repositories)
}

func (s *faultyStore) Atomic(ctx context.Context, fn repositories.AtomicFn) error {
	return s.Store.Atomic(ctx, func(ctx context.Context, r *repositories.Repositories) error {
		s.wrap(r)
		return fn(ctx, r)
	})
}

// commitRejectingStore runs every unit of work and then fails it the way a
// deferred constraint fails at commit time
type commitRejectingStore struct {
	repositories.Store
	rejection error
}

func (s *commitRejectingStore) Atomic(ctx context.Context, fn repositories.AtomicFn) error {
	return s.Store.Atomic(ctx, func(ctx context.Context, r *repositories.Repositories) error {
		if err := fn(ctx, r); err != nil {
			return err
		}
		return fmt.Errorf("failed to commit transaction: %w", s.rejection)
	})
}

func TestAnchorParent(t *testing.T) {
	assert.NoError(t, anchorParent(3, nil, "grade_id"))
	assert.NoError(t, anchorParent(3, ptr(int64(3)), "grade_id"))
	assertAppError(t, anchorParent(3, ptr(int64(4)), "grade_id"), apperrors.ErrValidationFailed, "grade_id mismatch with path parameter")
}
