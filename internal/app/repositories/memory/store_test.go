package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AriaGT/sistema-libreria/internal/app/models"
	"github.com/AriaGT/sistema-libreria/internal/app/repositories"
	"github.com/AriaGT/sistema-libreria/internal/pkg/dberrors"
)

type fixture struct {
	teacher, student models.User
	grade            models.Grade
	section          models.Section
	course           models.Course
	book             models.Book
	enrollment       models.Enrollment
}

func seed(t *testing.T, s *Store) fixture {
	t.Helper()
	var f fixture
	err := s.Atomic(context.Background(), func(ctx context.Context, r *repositories.Repositories) error {
		f.teacher = models.User{FullName: "Teacher", Email: "t@school.edu", PasswordHash: "x", Role: models.RoleTeacher}
		require.NoError(t, r.Users.Create(ctx, &f.teacher))
		f.student = models.User{FullName: "Student", Email: "s@school.edu", PasswordHash: "x", Role: models.RoleStudent}
		require.NoError(t, r.Users.Create(ctx, &f.student))
		f.grade = models.Grade{Name: "Primero"}
		require.NoError(t, r.Grades.Create(ctx, &f.grade))
		f.section = models.Section{Name: "A", GradeID: f.grade.ID}
		require.NoError(t, r.Sections.Create(ctx, &f.section))
		f.course = models.Course{Name: "Math", SectionID: f.section.ID, TeacherID: f.teacher.ID}
		require.NoError(t, r.Courses.Create(ctx, &f.course))
		f.book = models.Book{Title: "Algebra", Author: "Baldor", FileURL: "http://x/a.pdf", CourseID: f.course.ID, CreatedBy: f.teacher.ID}
		require.NoError(t, r.Books.Create(ctx, &f.book))
		f.enrollment = models.Enrollment{StudentID: f.student.ID, SectionID: f.section.ID}
		return r.Enrollments.Create(ctx, &f.enrollment)
	})
	require.NoError(t, err)
	return f
}

func TestStore_UniqueConstraints(t *testing.T) {
	s := NewStore()
	f := seed(t, s)

	err := s.Atomic(context.Background(), func(ctx context.Context, r *repositories.Repositories) error {
		return r.Grades.Create(ctx, &models.Grade{Name: "Primero"})
	})
	assert.True(t, dberrors.IsDuplicateConstraintError(err, "grades_name_key"))

	err = s.Atomic(context.Background(), func(ctx context.Context, r *repositories.Repositories) error {
		return r.Users.Create(ctx, &models.User{FullName: "Dup", Email: "t@school.edu"})
	})
	assert.True(t, dberrors.IsDuplicateConstraintError(err, "users_email_key"))

	err = s.Atomic(context.Background(), func(ctx context.Context, r *repositories.Repositories) error {
		return r.Enrollments.Create(ctx, &models.Enrollment{StudentID: f.student.ID, SectionID: f.section.ID})
	})
	assert.True(t, dberrors.IsDuplicateConstraintError(err, "uq_student_section"))
}

func TestStore_ForeignKeys(t *testing.T) {
	s := NewStore()
	f := seed(t, s)

	err := s.Atomic(context.Background(), func(ctx context.Context, r *repositories.Repositories) error {
		return r.Courses.Create(ctx, &models.Course{Name: "X", SectionID: f.section.ID, TeacherID: 999})
	})
	assert.True(t, dberrors.IsForeignKeyViolation(err))
	assert.Equal(t, "courses_teacher_id_fkey", dberrors.ConstraintName(err))

	err = s.Atomic(context.Background(), func(ctx context.Context, r *repositories.Repositories) error {
		return r.Users.Delete(ctx, f.teacher.ID)
	})
	assert.True(t, dberrors.IsForeignKeyViolation(err))
}

func TestStore_GradeDeleteCascades(t *testing.T) {
	s := NewStore()
	f := seed(t, s)

	require.NoError(t, s.Atomic(context.Background(), func(ctx context.Context, r *repositories.Repositories) error {
		return r.Grades.Delete(ctx, f.grade.ID)
	}))

	_ = s.Atomic(context.Background(), func(ctx context.Context, r *repositories.Repositories) error {
		_, err := r.Sections.GetByID(ctx, f.section.ID)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
		_, err = r.Courses.GetByID(ctx, f.course.ID)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
		_, err = r.Books.GetByID(ctx, f.book.ID)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
		_, err = r.Enrollments.GetByID(ctx, f.enrollment.ID)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
		users, err := r.Users.List(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 2)
		return nil
	})
}

func TestStore_RollbackDiscardsChanges(t *testing.T) {
	s := NewStore()
	f := seed(t, s)
	boom := errors.New("boom")

	err := s.Atomic(context.Background(), func(ctx context.Context, r *repositories.Repositories) error {
		_, err := r.Enrollments.DeleteByStudent(ctx, f.student.ID)
		require.NoError(t, err)
		require.NoError(t, r.Grades.Create(ctx, &models.Grade{Name: "Segundo"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_ = s.Atomic(context.Background(), func(ctx context.Context, r *repositories.Repositories) error {
		_, err := r.Enrollments.GetByID(ctx, f.enrollment.ID)
		assert.NoError(t, err)
		grades, err := r.Grades.List(ctx)
		require.NoError(t, err)
		assert.Len(t, grades, 1)
		return nil
	})

	var g models.Grade
	require.NoError(t, s.Atomic(context.Background(), func(ctx context.Context, r *repositories.Repositories) error {
		g = models.Grade{Name: "Tercero"}
		return r.Grades.Create(ctx, &g)
	}))
	assert.Equal(t, int64(3), g.ID, "ids consumed by a rolled back unit are not reused")
}

func TestStore_ListsAreOrderedByID(t *testing.T) {
	s := NewStore()
	f := seed(t, s)

	require.NoError(t, s.Atomic(context.Background(), func(ctx context.Context, r *repositories.Repositories) error {
		for _, name := range []string{"C", "B", "D"} {
			if err := r.Sections.Create(ctx, &models.Section{Name: name, GradeID: f.grade.ID}); err != nil {
				return err
			}
		}
		return nil
	}))

	_ = s.Atomic(context.Background(), func(ctx context.Context, r *repositories.Repositories) error {
		sections, err := r.Sections.ListByGrade(ctx, f.grade.ID)
		require.NoError(t, err)
		require.Len(t, sections, 4)
		for i := 1; i < len(sections); i++ {
			assert.Less(t, sections[i-1].ID, sections[i].ID)
		}
		return nil
	})
}

func TestStore_ReturnedRowsAreCopies(t *testing.T) {
	s := NewStore()
	f := seed(t, s)

	_ = s.Atomic(context.Background(), func(ctx context.Context, r *repositories.Repositories) error {
		b, err := r.Books.GetByID(ctx, f.book.ID)
		require.NoError(t, err)
		b.Title = "mutated"
		again, err := r.Books.GetByID(ctx, f.book.ID)
		require.NoError(t, err)
		assert.Equal(t, "Algebra", again.Title)
		assert.False(t, again.CreatedAt.IsZero())
		return nil
	})
}
