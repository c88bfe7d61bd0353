package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AriaGT/sistema-libreria/internal/app/models"
	"github.com/AriaGT/sistema-libreria/internal/app/models/dto"
	"github.com/AriaGT/sistema-libreria/internal/app/repositories"
	"github.com/AriaGT/sistema-libreria/internal/pkg/apperrors"
)

func TestCreateUser(t *testing.T) {
	env := newTestEnv(t)

	u, err := env.users.CreateUser(env.ctx, &dto.CreateUserRequest{FullName: "Ana", Email: "ana@school.edu", Role: "student", Password: "pw"})
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.NotEqual(t, "pw", u.PasswordHash)
	assert.Equal(t, models.RoleStudent, u.Role)

	_, err = env.users.CreateUser(env.ctx, &dto.CreateUserRequest{FullName: "Other", Email: "ana@school.edu", Role: "teacher", Password: "pw"})
	assertAppError(t, err, apperrors.ErrConstraintViolation, "Email already registered")

	// Open role strings are stored as given
	custom, err := env.users.CreateUser(env.ctx, &dto.CreateUserRequest{FullName: "Lib", Email: "lib@school.edu", Role: "librarian", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, models.Role("librarian"), custom.Role)
}

func TestCreateUser_PasswordLimitIsBytes(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.users.CreateUser(env.ctx, &dto.CreateUserRequest{FullName: "A", Email: "a@school.edu", Role: "student", Password: strings.Repeat("a", 72)})
	require.NoError(t, err)

	_, err = env.users.CreateUser(env.ctx, &dto.CreateUserRequest{FullName: "B", Email: "b@school.edu", Role: "student", Password: strings.Repeat("a", 73)})
	assertAppError(t, err, apperrors.ErrValidationFailed, "Password must be at most 72 bytes")

	// 37 two-byte runes are 74 bytes
	_, err = env.users.CreateUser(env.ctx, &dto.CreateUserRequest{FullName: "C", Email: "c@school.edu", Role: "student", Password: strings.Repeat("ñ", 37)})
	assertAppError(t, err, apperrors.ErrValidationFailed, "Password must be at most 72 bytes")
}

func TestUpdateUser(t *testing.T) {
	env := newTestEnv(t)
	ana := env.user(t, "ana@school.edu", models.RoleStudent)
	env.user(t, "luis@school.edu", models.RoleStudent)

	updated, err := env.users.UpdateUser(env.ctx, ana.ID, &dto.UpdateUserRequest{FullName: ptr("Ana Perez"), Password: ptr("newpass")})
	require.NoError(t, err)
	assert.Equal(t, "Ana Perez", updated.FullName)
	assert.Equal(t, "ana@school.edu", updated.Email)
	assert.NotEqual(t, ana.PasswordHash, updated.PasswordHash)
	assert.Equal(t, ana.CreatedAt, updated.CreatedAt)

	user, err := env.auth.Authenticate(env.ctx, "ana@school.edu", "newpass")
	require.NoError(t, err)
	require.NotNil(t, user)

	_, err = env.users.UpdateUser(env.ctx, ana.ID, &dto.UpdateUserRequest{Email: ptr("luis@school.edu")})
	assertAppError(t, err, apperrors.ErrConstraintViolation, "Unable to update user due to constraints")

	_, err = env.users.UpdateUser(env.ctx, ana.ID, &dto.UpdateUserRequest{Password: ptr(strings.Repeat("x", 73))})
	assertAppError(t, err, apperrors.ErrValidationFailed, "Password must be at most 72 bytes")

	_, err = env.users.UpdateUser(env.ctx, 999, &dto.UpdateUserRequest{FullName: ptr("X")})
	assertAppError(t, err, apperrors.ErrResourceNotFound, "User not found")
}

func TestGetUsers_AscendingID(t *testing.T) {
	env := newTestEnv(t)
	z := env.user(t, "zed@school.edu", models.RoleStudent)
	a := env.user(t, "amy@school.edu", models.RoleTeacher)

	users, err := env.users.GetUsers(env.ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, []int64{z.ID, a.ID}, []int64{users[0].ID, users[1].ID})

	_, err = env.users.GetUserByID(env.ctx, 999)
	assertAppError(t, err, apperrors.ErrResourceNotFound, "User not found")
}

func TestDeleteUser_TeacherScenario(t *testing.T) {
	env := newTestEnv(t)
	g := env.grade(t, "Grade 5")
	s := env.section(t, g.ID, "A")
	teacher := env.user(t, "teacher@school.edu", models.RoleTeacher)
	c := env.course(t, s.ID, teacher.ID, "Math")

	_, err := env.users.DeleteUser(env.ctx, teacher.ID)
	assertAppError(t, err, apperrors.ErrValidationFailed, "User is assigned as teacher to one or more courses")

	_, err = env.courses.DeleteCourse(env.ctx, s.ID, c.ID)
	require.NoError(t, err)

	deleted, err := env.users.DeleteUser(env.ctx, teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, teacher.ID, deleted.ID)

	_, err = env.users.GetUserByID(env.ctx, teacher.ID)
	assertAppError(t, err, apperrors.ErrResourceNotFound, "User not found")
}

func TestDeleteUser_BookCreatorIsGuarded(t *testing.T) {
	env := newTestEnv(t)
	s := env.section(t, env.grade(t, "Grade 5").ID, "A")
	teacher := env.user(t, "teacher@school.edu", models.RoleTeacher)
	creator := env.user(t, "creator@school.edu", models.RoleAdmin)
	c := env.course(t, s.ID, teacher.ID, "Math")
	env.book(t, c.ID, creator.ID, "algebra")

	_, err := env.users.DeleteUser(env.ctx, creator.ID)
	assertAppError(t, err, apperrors.ErrValidationFailed, "User is referenced as creator of books")

	_, err = env.users.DeleteUser(env.ctx, 999)
	assertAppError(t, err, apperrors.ErrResourceNotFound, "User not found")
}

func TestDeleteUser_RemovesEnrollments(t *testing.T) {
	env := newTestEnv(t)
	s1 := env.section(t, env.grade(t, "Grade 5").ID, "A")
	s2 := env.section(t, env.grade(t, "Grade 6").ID, "B")
	student := env.user(t, "student@school.edu", models.RoleStudent)
	classmate := env.user(t, "mate@school.edu", models.RoleStudent)
	for _, sid := range []int64{s1.ID, s2.ID} {
		_, err := env.enrollments.Enroll(env.ctx, sid, &dto.EnrollRequest{StudentID: student.ID})
		require.NoError(t, err)
	}
	_, err := env.enrollments.Enroll(env.ctx, s1.ID, &dto.EnrollRequest{StudentID: classmate.ID})
	require.NoError(t, err)

	_, err = env.users.DeleteUser(env.ctx, student.ID)
	require.NoError(t, err)

	students, err := env.enrollments.ListStudents(env.ctx, s1.ID)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, classmate.ID, students[0].ID)

	links, err := env.enrollments.GetEnrollments(env.ctx, s2.ID)
	require.NoError(t, err)
	assert.Empty(t, links)
}

type failingUserDelete struct{ repositories.UserRepository }

func (failingUserDelete) Delete(context.Context, int64) error {
	return fkViolation("student_sections_student_id_fkey")
}

type brokenUserDelete struct{ repositories.UserRepository }

func (brokenUserDelete) Delete(context.Context, int64) error {
	return errors.New("connection reset by peer")
}

func TestDeleteUser_StoreFailureRollsBackEverything(t *testing.T) {
	inner := newTestEnv(t)
	s := inner.section(t, inner.grade(t, "Grade 5").ID, "A")
	student := inner.user(t, "student@school.edu", models.RoleStudent)
	_, err := inner.enrollments.Enroll(inner.ctx, s.ID, &dto.EnrollRequest{StudentID: student.ID})
	require.NoError(t, err)

	env := newTestEnvWithStore(t, &faultyStore{Store: inner.store, wrap: func(r *repositories.Repositories) {
		r.Users = failingUserDelete{r.Users}
	}})
	_, err = env.users.DeleteUser(env.ctx, student.ID)
	assertAppError(t, err, apperrors.ErrConstraintViolation, "Unable to delete user due to constraints")

	// The enrollment removal of the failed unit of work was discarded
	students, err := inner.enrollments.ListStudents(inner.ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, student.ID, students[0].ID)

	env = newTestEnvWithStore(t, &faultyStore{Store: inner.store, wrap: func(r *repositories.Repositories) {
		r.Users = brokenUserDelete{r.Users}
	}})
	_, err = env.users.DeleteUser(env.ctx, student.ID)
	require.Error(t, err)
	assert.False(t, errors.Is(err, apperrors.ErrConstraintViolation))
	assert.Contains(t, err.Error(), "connection reset by peer")

	_, err = inner.users.GetUserByID(inner.ctx, student.ID)
	assert.NoError(t, err)
}

func TestDeleteUser_CommitRejectionIsConstraintViolation(t *testing.T) {
	inner := newTestEnv(t)
	s := inner.section(t, inner.grade(t, "Grade 5").ID, "A")
	student := inner.user(t, "student@school.edu", models.RoleStudent)
	_, err := inner.enrollments.Enroll(inner.ctx, s.ID, &dto.EnrollRequest{StudentID: student.ID})
	require.NoError(t, err)

	env := newTestEnvWithStore(t, &commitRejectingStore{Store: inner.store, rejection: fkViolation("books_created_by_fkey")})
	_, err = env.users.DeleteUser(env.ctx, student.ID)
	assertAppError(t, err, apperrors.ErrConstraintViolation, "Unable to delete user due to constraints")

	_, err = inner.users.GetUserByID(inner.ctx, student.ID)
	require.NoError(t, err)
	students, err := inner.enrollments.ListStudents(inner.ctx, s.ID)
	require.NoError(t, err)
	assert.Len(t, students, 1)

	// guard errors raised before commit keep their own kind
	_, err = env.users.DeleteUser(env.ctx, student.ID+100)
	assertAppError(t, err, apperrors.ErrResourceNotFound, "User not found")
}
