package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/AriaGT/sistema-libreria/internal/app/models"
	"github.com/AriaGT/sistema-libreria/internal/app/repositories"
	"github.com/AriaGT/sistema-libreria/internal/pkg/apperrors"
	"github.com/AriaGT/sistema-libreria/internal/pkg/dberrors"
	"github.com/AriaGT/sistema-libreria/internal/pkg/logger"
)

// Services defined in this package:
// - GradeService, SectionService, CourseService, BookService: the Grade > Section > Course > Book hierarchy
// - EnrollmentService: student/section links
// - UserService: user lifecycle with guarded deletion
// - AuthService: credential checks and token issue
//
// Every operation runs inside exactly one Store.Atomic unit of work.

// User-facing messages shared by several services
const (
	msgGradeNotFound      = "Grade not found"
	msgSectionNotFound    = "Section not found"
	msgCourseNotFound     = "Course not found"
	msgBookNotFound       = "Book not found"
	msgUserNotFound       = "User not found"
	msgTeacherNotFound    = "Teacher not found"
	msgStudentNotFound    = "Student not found"
	msgEnrollmentNotFound = "Enrollment not found"
	msgAlreadyEnrolled    = "Student already enrolled in this section"
)

// anchorParent rejects a payload parent id that disagrees with the path.
// The caller then writes pathID only.
func anchorParent(pathID int64, payloadID *int64, field string) error {
	if payloadID != nil && *payloadID != pathID {
		return apperrors.NewValidationError(field + " mismatch with path parameter")
	}
	return nil
}

// notFound maps repositories.ErrNotFound to a NotFound error with msg
func notFound(err error, msg string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperrors.NewResourceNotFoundError(msg)
	}
	return err
}

// storeError translates a write the store refused into a ConstraintViolation.
// Anything else is an unexpected failure and is logged.
func storeError(err error, msg, op string) error {
	if dberrors.IsIntegrityViolation(err) {
		logger.Warn().Str("constraint", dberrors.ConstraintName(err)).Str("op", op).Msg("Store rejected write")
		return apperrors.NewConstraintViolationError(msg)
	}
	logger.Error().Err(err).Str("op", op).Msg("Unexpected store error")
	return fmt.Errorf("error during %s: %w", op, err)
}

// rejectedAs builds the translation atomicWrite applies to a rejected commit
func rejectedAs(constraintMsg, op string) func(error) error {
	return func(err error) error { return storeError(err, constraintMsg, op) }
}

// atomicWrite runs fn as one unit of work. Errors fn already translated pass
// through; a constraint the store only enforces at commit goes to reject.
func atomicWrite(ctx context.Context, store repositories.Store, reject func(error) error, fn repositories.AtomicFn) error {
	err := store.Atomic(ctx, fn)
	if err == nil {
		return nil
	}
	var appErr *apperrors.CustomError
	if errors.As(err, &appErr) || !dberrors.IsIntegrityViolation(err) {
		return err
	}
	return reject(err)
}

// writeError handles a failed Update or Delete of an already anchored row
func writeError(err error, notFoundMsg, constraintMsg, op string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperrors.NewResourceNotFoundError(notFoundMsg)
	}
	return storeError(err, constraintMsg, op)
}

func requireGrade(ctx context.Context, r *repositories.Repositories, id int64) (*models.Grade, error) {
	g, err := r.Grades.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, msgGradeNotFound)
	}
	return g, nil
}

func requireSection(ctx context.Context, r *repositories.Repositories, id int64) (*models.Section, error) {
	s, err := r.Sections.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, msgSectionNotFound)
	}
	return s, nil
}

func requireCourse(ctx context.Context, r *repositories.Repositories, id int64) (*models.Course, error) {
	c, err := r.Courses.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, msgCourseNotFound)
	}
	return c, nil
}

func requireUser(ctx context.Context, r *repositories.Repositories, id int64, msg string) (*models.User, error) {
	u, err := r.Users.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, msg)
	}
	return u, nil
}
