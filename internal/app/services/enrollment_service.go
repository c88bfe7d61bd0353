package services

import (
	"context"
	"errors"

	"github.com/AriaGT/sistema-libreria/internal/app/models"
	"github.com/AriaGT/sistema-libreria/internal/app/models/dto"
	"github.com/AriaGT/sistema-libreria/internal/app/repositories"
	"github.com/AriaGT/sistema-libreria/internal/pkg/apperrors"
	"github.com/AriaGT/sistema-libreria/internal/pkg/dberrors"
	"github.com/AriaGT/sistema-libreria/internal/pkg/metrics"
)

const uniqueEnrollmentConstraint = "uq_student_section"

// EnrollmentService manages student/section links. A student appears at most once per section.
type EnrollmentService interface {
	Enroll(ctx context.Context, sectionID int64, req *dto.EnrollRequest) (*models.Enrollment, error)
	ListStudents(ctx context.Context, sectionID int64) ([]*models.User, error)
	GetEnrollments(ctx context.Context, sectionID int64) ([]*models.Enrollment, error)
	GetEnrollment(ctx context.Context, sectionID, enrollmentID int64) (*models.Enrollment, error)
	UpdateEnrollment(ctx context.Context, sectionID, enrollmentID int64, req *dto.UpdateEnrollmentRequest) (*models.Enrollment, error)
	DeleteEnrollment(ctx context.Context, sectionID, enrollmentID int64) (*models.Enrollment, error)
}

type enrollmentServiceImpl struct {
	store repositories.Store
}

// NewEnrollmentService creates a new enrollment service instance
func NewEnrollmentService(store repositories.Store) EnrollmentService {
	return &enrollmentServiceImpl{store: store}
}

// enrollmentWriteError maps a duplicate pair caught by the store to the same
// error the pre-check produces
func enrollmentWriteError(err error, constraintMsg, op string) error {
	if dberrors.IsDuplicateConstraintError(err, uniqueEnrollmentConstraint) {
		metrics.RecordConstraintViolation(uniqueEnrollmentConstraint)
		return apperrors.NewValidationError(msgAlreadyEnrolled)
	}
	return writeError(err, msgEnrollmentNotFound, constraintMsg, op)
}

func enrollmentRejectedAs(constraintMsg, op string) func(error) error {
	return func(err error) error { return enrollmentWriteError(err, constraintMsg, op) }
}

// anchoredEnrollment loads an enrollment and checks it belongs to sectionID
func anchoredEnrollment(ctx context.Context, r *repositories.Repositories, sectionID, enrollmentID int64) (*models.Enrollment, error) {
	if _, err := requireSection(ctx, r, sectionID); err != nil {
		return nil, err
	}
	e, err := r.Enrollments.GetByID(ctx, enrollmentID)
	if err != nil {
		return nil, notFound(err, msgEnrollmentNotFound)
	}
	if e.SectionID != sectionID {
		return nil, notFound(repositories.ErrNotFound, msgEnrollmentNotFound)
	}
	return e, nil
}

// duplicateOf reports whether another enrollment than selfID links studentID to sectionID
func duplicateOf(ctx context.Context, r *repositories.Repositories, sectionID, studentID, selfID int64) (bool, error) {
	existing, err := r.Enrollments.FindBySectionAndStudent(ctx, sectionID, studentID)
	if errors.Is(err, repositories.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return existing.ID != selfID, nil
}

// Enroll links a student to a section
func (s *enrollmentServiceImpl) Enroll(ctx context.Context, sectionID int64, req *dto.EnrollRequest) (*models.Enrollment, error) {
	var enrollment *models.Enrollment
	err := atomicWrite(ctx, s.store, enrollmentRejectedAs("Unable to enroll student due to constraints", "enroll student"), func(ctx context.Context, r *repositories.Repositories) error {
		if _, err := requireSection(ctx, r, sectionID); err != nil {
			return err
		}
		if _, err := requireUser(ctx, r, req.StudentID, msgStudentNotFound); err != nil {
			return err
		}

		dup, err := duplicateOf(ctx, r, sectionID, req.StudentID, 0)
		if err != nil {
			return err
		}
		if dup {
			return apperrors.NewValidationError(msgAlreadyEnrolled)
		}

		enrollment = &models.Enrollment{StudentID: req.StudentID, SectionID: sectionID}
		if err := r.Enrollments.Create(ctx, enrollment); err != nil {
			return enrollmentWriteError(err, "Unable to enroll student due to constraints", "enroll student")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordMutation("enrollment", "create")
	return enrollment, nil
}

// ListStudents returns the users enrolled in a section by ascending user id
func (s *enrollmentServiceImpl) ListStudents(ctx context.Context, sectionID int64) ([]*models.User, error) {
	var students []*models.User
	err := s.store.Atomic(ctx, func(ctx context.Context, r *repositories.Repositories) error {
		if _, err := requireSection(ctx, r, sectionID); err != nil {
			return err
		}
		var err error
		students, err = r.Enrollments.ListStudents(ctx, sectionID)
		return err
	})
	return students, err
}

// GetEnrollments lists the enrollment rows of a section by ascending id
func (s *enrollmentServiceImpl) GetEnrollments(ctx context.Context, sectionID int64) ([]*models.Enrollment, error) {
	var enrollments []*models.Enrollment
	err := s.store.Atomic(ctx, func(ctx context.Context, r *repositories.Repositories) error {
		if _, err := requireSection(ctx, r, sectionID); err != nil {
			return err
		}
		var err error
		enrollments, err = r.Enrollments.ListBySection(ctx, sectionID)
		return err
	})
	return enrollments, err
}

// GetEnrollment retrieves one enrollment of a section
func (s *enrollmentServiceImpl) GetEnrollment(ctx context.Context, sectionID, enrollmentID int64) (*models.Enrollment, error) {
	var enrollment *models.Enrollment
	err := s.store.Atomic(ctx, func(ctx context.Context, r *repositories.Repositories) error {
		var err error
		enrollment, err = anchoredEnrollment(ctx, r, sectionID, enrollmentID)
		return err
	})
	return enrollment, err
}

// UpdateEnrollment reassigns an enrollment to another student of the same section
func (s *enrollmentServiceImpl) UpdateEnrollment(ctx context.Context, sectionID, enrollmentID int64, req *dto.UpdateEnrollmentRequest) (*models.Enrollment, error) {
	var enrollment *models.Enrollment
	err := atomicWrite(ctx, s.store, enrollmentRejectedAs("Unable to update enrollment due to constraints", "update enrollment"), func(ctx context.Context, r *repositories.Repositories) error {
		var err error
		if enrollment, err = anchoredEnrollment(ctx, r, sectionID, enrollmentID); err != nil {
			return err
		}
		if req.StudentID == nil {
			return nil
		}

		if _, err := requireUser(ctx, r, *req.StudentID, msgStudentNotFound); err != nil {
			return err
		}
		dup, err := duplicateOf(ctx, r, sectionID, *req.StudentID, enrollment.ID)
		if err != nil {
			return err
		}
		if dup {
			return apperrors.NewValidationError(msgAlreadyEnrolled)
		}

		enrollment.StudentID = *req.StudentID
		if err := r.Enrollments.Update(ctx, enrollment); err != nil {
			return enrollmentWriteError(err, "Unable to update enrollment due to constraints", "update enrollment")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordMutation("enrollment", "update")
	return enrollment, nil
}

// DeleteEnrollment removes an enrollment of a section
func (s *enrollmentServiceImpl) DeleteEnrollment(ctx context.Context, sectionID, enrollmentID int64) (*models.Enrollment, error) {
	var enrollment *models.Enrollment
	err := atomicWrite(ctx, s.store, rejectedAs("Unable to delete enrollment due to constraints", "delete enrollment"), func(ctx context.Context, r *repositories.Repositories) error {
		var err error
		if enrollment, err = anchoredEnrollment(ctx, r, sectionID, enrollmentID); err != nil {
			return err
		}
		if err := r.Enrollments.Delete(ctx, enrollmentID); err != nil {
			return writeError(err, msgEnrollmentNotFound, "Unable to delete enrollment due to constraints", "delete enrollment")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordMutation("enrollment", "delete")
	return enrollment, nil
}
