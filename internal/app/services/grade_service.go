package services

import (
	"context"

	"github.com/AriaGT/sistema-libreria/internal/app/models"
	"github.com/AriaGT/sistema-libreria/internal/app/models/dto"
	"github.com/AriaGT/sistema-libreria/internal/app/repositories"
	"github.com/AriaGT/sistema-libreria/internal/pkg/metrics"
)

// GradeService defines the interface for grade-related operations
type GradeService interface {
	CreateGrade(ctx context.Context, req *dto.CreateGradeRequest) (*models.Grade, error)
	GetGrades(ctx context.Context) ([]*models.Grade, error)
	GetGradeByID(ctx context.Context, id int64) (*models.Grade, error)
	UpdateGrade(ctx context.Context, id int64, req *dto.UpdateGradeRequest) (*models.Grade, error)
	DeleteGrade(ctx context.Context, id int64) (*models.Grade, error)
}

// gradeServiceImpl implements the GradeService interface
type gradeServiceImpl struct {
	store repositories.Store
}

// NewGradeService creates a new grade service instance
func NewGradeService(store repositories.Store) GradeService {
	return &gradeServiceImpl{store: store}
}

// CreateGrade creates a new grade
func (s *gradeServiceImpl) CreateGrade(ctx context.Context, req *dto.CreateGradeRequest) (*models.Grade, error) {
	grade := &models.Grade{Name: req.Name}
	err := atomicWrite(ctx, s.store, rejectedAs("Grade name already exists", "create grade"), func(ctx context.Context, r *repositories.Repositories) error {
		if err := r.Grades.Create(ctx, grade); err != nil {
			return storeError(err, "Grade name already exists", "create grade")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordMutation("grade", "create")
	return grade, nil
}

// GetGrades lists all grades by ascending id
func (s *gradeServiceImpl) GetGrades(ctx context.Context) ([]*models.Grade, error) {
	var grades []*models.Grade
	err := s.store.Atomic(ctx, func(ctx context.Context, r *repositories.Repositories) error {
		var err error
		grades, err = r.Grades.List(ctx)
		return err
	})
	return grades, err
}

// GetGradeByID retrieves a grade by ID
func (s *gradeServiceImpl) GetGradeByID(ctx context.Context, id int64) (*models.Grade, error) {
	var grade *models.Grade
	err := s.store.Atomic(ctx, func(ctx context.Context, r *repositories.Repositories) error {
		var err error
		grade, err = requireGrade(ctx, r, id)
		return err
	})
	return grade, err
}

// UpdateGrade applies the supplied fields to a grade
func (s *gradeServiceImpl) UpdateGrade(ctx context.Context, id int64, req *dto.UpdateGradeRequest) (*models.Grade, error) {
	var grade *models.Grade
	err := atomicWrite(ctx, s.store, rejectedAs("Grade update violated constraints", "update grade"), func(ctx context.Context, r *repositories.Repositories) error {
		var err error
		if grade, err = requireGrade(ctx, r, id); err != nil {
			return err
		}

		if req.Name != nil {
			grade.Name = *req.Name
		}

		if err := r.Grades.Update(ctx, grade); err != nil {
			return writeError(err, msgGradeNotFound, "Grade update violated constraints", "update grade")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordMutation("grade", "update")
	return grade, nil
}

// DeleteGrade deletes a grade together with everything below it
func (s *gradeServiceImpl) DeleteGrade(ctx context.Context, id int64) (*models.Grade, error) {
	var grade *models.Grade
	err := atomicWrite(ctx, s.store, rejectedAs("Cannot delete grade because related records still exist", "delete grade"), func(ctx context.Context, r *repositories.Repositories) error {
		var err error
		if grade, err = requireGrade(ctx, r, id); err != nil {
			return err
		}
		if err := r.Grades.Delete(ctx, id); err != nil {
			return writeError(err, msgGradeNotFound, "Cannot delete grade because related records still exist", "delete grade")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordMutation("grade", "delete")
	return grade, nil
}
