package services

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AriaGT/sistema-libreria/internal/app/models"
	"github.com/AriaGT/sistema-libreria/internal/app/models/dto"
	"github.com/AriaGT/sistema-libreria/internal/app/repositories"
	"github.com/AriaGT/sistema-libreria/internal/pkg/apperrors"
	"github.com/AriaGT/sistema-libreria/internal/pkg/dberrors"
)

func fkViolation(constraint string) error {
	return &pgconn.PgError{Code: dberrors.CodeForeignKeyViolation, ConstraintName: constraint, Message: "violates foreign key constraint"}
}

// blindEnrollments hides existing links from the pre-check, as a concurrent
// request that has not committed yet would
type blindEnrollments struct{ repositories.EnrollmentRepository }

func (blindEnrollments) FindBySectionAndStudent(context.Context, int64, int64) (*models.Enrollment, error) {
	return nil, repositories.ErrNotFound
}

func TestEnroll_Scenario(t *testing.T) {
	env := newTestEnv(t)
	s := env.section(t, env.grade(t, "Grade 5").ID, "A")
	student := env.user(t, "student@school.edu", models.RoleStudent)

	e, err := env.enrollments.Enroll(env.ctx, s.ID, &dto.EnrollRequest{StudentID: student.ID})
	require.NoError(t, err)
	assert.Equal(t, student.ID, e.StudentID)
	assert.Equal(t, s.ID, e.SectionID)

	_, err = env.enrollments.Enroll(env.ctx, s.ID, &dto.EnrollRequest{StudentID: student.ID})
	assertAppError(t, err, apperrors.ErrValidationFailed, "Student already enrolled in this section")

	students, err := env.enrollments.ListStudents(env.ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, student.ID, students[0].ID)
}

func TestEnroll_MissingReferences(t *testing.T) {
	env := newTestEnv(t)
	student := env.user(t, "student@school.edu", models.RoleStudent)
	s := env.section(t, env.grade(t, "Grade 5").ID, "A")

	_, err := env.enrollments.Enroll(env.ctx, 99, &dto.EnrollRequest{StudentID: student.ID})
	assertAppError(t, err, apperrors.ErrResourceNotFound, "Section not found")

	_, err = env.enrollments.Enroll(env.ctx, s.ID, &dto.EnrollRequest{StudentID: 99})
	assertAppError(t, err, apperrors.ErrResourceNotFound, "Student not found")

	_, err = env.enrollments.ListStudents(env.ctx, 99)
	assertAppError(t, err, apperrors.ErrResourceNotFound, "Section not found")
}

func TestEnroll_StoreUniqueConstraintIsFinalGuard(t *testing.T) {
	inner := newTestEnv(t)
	s := inner.section(t, inner.grade(t, "Grade 5").ID, "A")
	student := inner.user(t, "student@school.edu", models.RoleStudent)
	_, err := inner.enrollments.Enroll(inner.ctx, s.ID, &dto.EnrollRequest{StudentID: student.ID})
	require.NoError(t, err)

	env := newTestEnvWithStore(t, &faultyStore{Store: inner.store, wrap: func(r *repositories.Repositories) {
		r.Enrollments = blindEnrollments{r.Enrollments}
	}})

	_, err = env.enrollments.Enroll(env.ctx, s.ID, &dto.EnrollRequest{StudentID: student.ID})
	assertAppError(t, err, apperrors.ErrValidationFailed, "Student already enrolled in this section")

	enrollments, err := inner.enrollments.GetEnrollments(inner.ctx, s.ID)
	require.NoError(t, err)
	assert.Len(t, enrollments, 1)
}

func TestUpdateEnrollment(t *testing.T) {
	env := newTestEnv(t)
	s := env.section(t, env.grade(t, "Grade 5").ID, "A")
	other := env.section(t, env.grade(t, "Grade 6").ID, "B")
	ana := env.user(t, "ana@school.edu", models.RoleStudent)
	luis := env.user(t, "luis@school.edu", models.RoleStudent)
	eva := env.user(t, "eva@school.edu", models.RoleStudent)

	first, err := env.enrollments.Enroll(env.ctx, s.ID, &dto.EnrollRequest{StudentID: ana.ID})
	require.NoError(t, err)
	_, err = env.enrollments.Enroll(env.ctx, s.ID, &dto.EnrollRequest{StudentID: luis.ID})
	require.NoError(t, err)

	// Reassigning to a student already linked by a different row is refused
	_, err = env.enrollments.UpdateEnrollment(env.ctx, s.ID, first.ID, &dto.UpdateEnrollmentRequest{StudentID: ptr(luis.ID)})
	assertAppError(t, err, apperrors.ErrValidationFailed, "Student already enrolled in this section")

	// Reassigning to the same student is a no-op, not a duplicate
	same, err := env.enrollments.UpdateEnrollment(env.ctx, s.ID, first.ID, &dto.UpdateEnrollmentRequest{StudentID: ptr(ana.ID)})
	require.NoError(t, err)
	assert.Equal(t, ana.ID, same.StudentID)

	moved, err := env.enrollments.UpdateEnrollment(env.ctx, s.ID, first.ID, &dto.UpdateEnrollmentRequest{StudentID: ptr(eva.ID)})
	require.NoError(t, err)
	assert.Equal(t, eva.ID, moved.StudentID)
	assert.Equal(t, s.ID, moved.SectionID)

	unchanged, err := env.enrollments.UpdateEnrollment(env.ctx, s.ID, first.ID, &dto.UpdateEnrollmentRequest{})
	require.NoError(t, err)
	assert.Equal(t, eva.ID, unchanged.StudentID)

	_, err = env.enrollments.UpdateEnrollment(env.ctx, s.ID, first.ID, &dto.UpdateEnrollmentRequest{StudentID: ptr(int64(404))})
	assertAppError(t, err, apperrors.ErrResourceNotFound, "Student not found")

	_, err = env.enrollments.UpdateEnrollment(env.ctx, other.ID, first.ID, &dto.UpdateEnrollmentRequest{StudentID: ptr(ana.ID)})
	assertAppError(t, err, apperrors.ErrResourceNotFound, "Enrollment not found")
}

func TestUpdateEnrollment_StoreUniqueConstraintIsFinalGuard(t *testing.T) {
	inner := newTestEnv(t)
	s := inner.section(t, inner.grade(t, "Grade 5").ID, "A")
	ana := inner.user(t, "ana@school.edu", models.RoleStudent)
	luis := inner.user(t, "luis@school.edu", models.RoleStudent)
	first, err := inner.enrollments.Enroll(inner.ctx, s.ID, &dto.EnrollRequest{StudentID: ana.ID})
	require.NoError(t, err)
	_, err = inner.enrollments.Enroll(inner.ctx, s.ID, &dto.EnrollRequest{StudentID: luis.ID})
	require.NoError(t, err)

	env := newTestEnvWithStore(t, &faultyStore{Store: inner.store, wrap: func(r *repositories.Repositories) {
		r.Enrollments = blindEnrollments{r.Enrollments}
	}})

	_, err = env.enrollments.UpdateEnrollment(env.ctx, s.ID, first.ID, &dto.UpdateEnrollmentRequest{StudentID: ptr(luis.ID)})
	assertAppError(t, err, apperrors.ErrValidationFailed, "Student already enrolled in this section")

	got, err := inner.enrollments.GetEnrollment(inner.ctx, s.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, ana.ID, got.StudentID)
}

func TestEnrollmentListsAndDelete(t *testing.T) {
	env := newTestEnv(t)
	s := env.section(t, env.grade(t, "Grade 5").ID, "A")
	late := env.user(t, "zed@school.edu", models.RoleStudent)
	early := env.user(t, "amy@school.edu", models.RoleStudent)

	// Enroll in reverse id order; listings still come back by id
	e2, err := env.enrollments.Enroll(env.ctx, s.ID, &dto.EnrollRequest{StudentID: early.ID})
	require.NoError(t, err)
	e1, err := env.enrollments.Enroll(env.ctx, s.ID, &dto.EnrollRequest{StudentID: late.ID})
	require.NoError(t, err)

	students, err := env.enrollments.ListStudents(env.ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, []int64{late.ID, early.ID}, []int64{students[0].ID, students[1].ID})

	links, err := env.enrollments.GetEnrollments(env.ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{e2.ID, e1.ID}, []int64{links[0].ID, links[1].ID})

	deleted, err := env.enrollments.DeleteEnrollment(env.ctx, s.ID, e2.ID)
	require.NoError(t, err)
	assert.Equal(t, e2, deleted)

	_, err = env.enrollments.GetEnrollment(env.ctx, s.ID, e2.ID)
	assertAppError(t, err, apperrors.ErrResourceNotFound, "Enrollment not found")
	_, err = env.enrollments.DeleteEnrollment(env.ctx, s.ID, e2.ID)
	assertAppError(t, err, apperrors.ErrResourceNotFound, "Enrollment not found")

	// Unenrolled student can enroll again
	_, err = env.enrollments.Enroll(env.ctx, s.ID, &dto.EnrollRequest{StudentID: early.ID})
	assert.NoError(t, err)
}

func TestEnroll_CommitRejectionOfDuplicatePair(t *testing.T) {
	inner := newTestEnv(t)
	s := inner.section(t, inner.grade(t, "Grade 5").ID, "A")
	student := inner.user(t, "student@school.edu", models.RoleStudent)

	dup := &pgconn.PgError{Code: dberrors.CodeUniqueViolation, ConstraintName: "uq_student_section", Message: "duplicate key value"}
	env := newTestEnvWithStore(t, &commitRejectingStore{Store: inner.store, rejection: dup})

	_, err := env.enrollments.Enroll(env.ctx, s.ID, &dto.EnrollRequest{StudentID: student.ID})
	assertAppError(t, err, apperrors.ErrValidationFailed, "Student already enrolled in this section")

	enrollments, err := inner.enrollments.GetEnrollments(inner.ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, enrollments)
}
