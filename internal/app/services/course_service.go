package services

import (
	"context"

	"github.com/AriaGT/sistema-libreria/internal/app/models"
	"github.com/AriaGT/sistema-libreria/internal/app/models/dto"
	"github.com/AriaGT/sistema-libreria/internal/app/repositories"
	"github.com/AriaGT/sistema-libreria/internal/pkg/metrics"
)

// CourseService defines the interface for course operations, always anchored to a section
type CourseService interface {
	CreateCourse(ctx context.Context, sectionID int64, req *dto.CreateCourseRequest) (*models.Course, error)
	GetCourses(ctx context.Context, sectionID int64) ([]*models.Course, error)
	GetCourse(ctx context.Context, sectionID, courseID int64) (*models.Course, error)
	UpdateCourse(ctx context.Context, sectionID, courseID int64, req *dto.UpdateCourseRequest) (*models.Course, error)
	DeleteCourse(ctx context.Context, sectionID, courseID int64) (*models.Course, error)
}

type courseServiceImpl struct {
	store repositories.Store
}

// NewCourseService creates a new course service instance
func NewCourseService(store repositories.Store) CourseService {
	return &courseServiceImpl{store: store}
}

// anchoredCourse loads a course and checks it belongs to sectionID
func anchoredCourse(ctx context.Context, r *repositories.Repositories, sectionID, courseID int64) (*models.Course, error) {
	if _, err := requireSection(ctx, r, sectionID); err != nil {
		return nil, err
	}
	course, err := requireCourse(ctx, r, courseID)
	if err != nil {
		return nil, err
	}
	if course.SectionID != sectionID {
		return nil, notFound(repositories.ErrNotFound, msgCourseNotFound)
	}
	return course, nil
}

// CreateCourse creates a course under sectionID taught by req.TeacherID
func (s *courseServiceImpl) CreateCourse(ctx context.Context, sectionID int64, req *dto.CreateCourseRequest) (*models.Course, error) {
	var course *models.Course
	err := atomicWrite(ctx, s.store, rejectedAs("Unable to create course due to constraints", "create course"), func(ctx context.Context, r *repositories.Repositories) error {
		if _, err := requireSection(ctx, r, sectionID); err != nil {
			return err
		}
		if err := anchorParent(sectionID, req.SectionID, "section_id"); err != nil {
			return err
		}
		// Role is not checked, any existing user may teach
		if _, err := requireUser(ctx, r, req.TeacherID, msgTeacherNotFound); err != nil {
			return err
		}

		course = &models.Course{Name: req.Name, SectionID: sectionID, TeacherID: req.TeacherID}
		if err := r.Courses.Create(ctx, course); err != nil {
			return storeError(err, "Unable to create course due to constraints", "create course")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordMutation("course", "create")
	return course, nil
}

// GetCourses lists the courses of a section by ascending id
func (s *courseServiceImpl) GetCourses(ctx context.Context, sectionID int64) ([]*models.Course, error) {
	var courses []*models.Course
	err := s.store.Atomic(ctx, func(ctx context.Context, r *repositories.Repositories) error {
		if _, err := requireSection(ctx, r, sectionID); err != nil {
			return err
		}
		var err error
		courses, err = r.Courses.ListBySection(ctx, sectionID)
		return err
	})
	return courses, err
}

// GetCourse retrieves one course of a section
func (s *courseServiceImpl) GetCourse(ctx context.Context, sectionID, courseID int64) (*models.Course, error) {
	var course *models.Course
	err := s.store.Atomic(ctx, func(ctx context.Context, r *repositories.Repositories) error {
		var err error
		course, err = anchoredCourse(ctx, r, sectionID, courseID)
		return err
	})
	return course, err
}

// UpdateCourse applies the supplied fields; the course stays under sectionID
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, sectionID, courseID int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	var course *models.Course
	err := atomicWrite(ctx, s.store, rejectedAs("Unable to update course due to constraints", "update course"), func(ctx context.Context, r *repositories.Repositories) error {
		var err error
		if course, err = anchoredCourse(ctx, r, sectionID, courseID); err != nil {
			return err
		}
		if err := anchorParent(sectionID, req.SectionID, "section_id"); err != nil {
			return err
		}
		if req.TeacherID != nil {
			if _, err := requireUser(ctx, r, *req.TeacherID, msgTeacherNotFound); err != nil {
				return err
			}
			course.TeacherID = *req.TeacherID
		}

		if req.Name != nil {
			course.Name = *req.Name
		}
		course.SectionID = sectionID

		if err := r.Courses.Update(ctx, course); err != nil {
			return writeError(err, msgCourseNotFound, "Unable to update course due to constraints", "update course")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordMutation("course", "update")
	return course, nil
}

// DeleteCourse deletes a course; its books go with it
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, sectionID, courseID int64) (*models.Course, error) {
	var course *models.Course
	err := atomicWrite(ctx, s.store, rejectedAs("Cannot delete course because related books exist", "delete course"), func(ctx context.Context, r *repositories.Repositories) error {
		var err error
		if course, err = anchoredCourse(ctx, r, sectionID, courseID); err != nil {
			return err
		}
		if err := r.Courses.Delete(ctx, courseID); err != nil {
			return writeError(err, msgCourseNotFound, "Cannot delete course because related books exist", "delete course")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordMutation("course", "delete")
	return course, nil
}
