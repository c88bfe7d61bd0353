package services

import (
	"context"

	"github.com/AriaGT/sistema-libreria/internal/app/models"
	"github.com/AriaGT/sistema-libreria/internal/app/models/dto"
	"github.com/AriaGT/sistema-libreria/internal/app/repositories"
	"github.com/AriaGT/sistema-libreria/internal/pkg/metrics"
)

// SectionService defines the interface for section operations, always anchored to a grade
type SectionService interface {
	CreateSection(ctx context.Context, gradeID int64, req *dto.CreateSectionRequest) (*models.Section, error)
	GetSections(ctx context.Context, gradeID int64) ([]*models.Section, error)
	GetSection(ctx context.Context, gradeID, sectionID int64) (*models.Section, error)
	UpdateSection(ctx context.Context, gradeID, sectionID int64, req *dto.UpdateSectionRequest) (*models.Section, error)
	DeleteSection(ctx context.Context, gradeID, sectionID int64) (*models.Section, error)
}

type sectionServiceImpl struct {
	store repositories.Store
}

// NewSectionService creates a new section service instance
func NewSectionService(store repositories.Store) SectionService {
	return &sectionServiceImpl{store: store}
}

// anchoredSection loads a section and checks it belongs to gradeID
func anchoredSection(ctx context.Context, r *repositories.Repositories, gradeID, sectionID int64) (*models.Section, error) {
	if _, err := requireGrade(ctx, r, gradeID); err != nil {
		return nil, err
	}
	section, err := requireSection(ctx, r, sectionID)
	if err != nil {
		return nil, err
	}
	if section.GradeID != gradeID {
		return nil, notFound(repositories.ErrNotFound, msgSectionNotFound)
	}
	return section, nil
}

// CreateSection creates a section under gradeID
func (s *sectionServiceImpl) CreateSection(ctx context.Context, gradeID int64, req *dto.CreateSectionRequest) (*models.Section, error) {
	var section *models.Section
	err := atomicWrite(ctx, s.store, rejectedAs("Unable to create section due to constraints", "create section"), func(ctx context.Context, r *repositories.Repositories) error {
		if _, err := requireGrade(ctx, r, gradeID); err != nil {
			return err
		}
		if err := anchorParent(gradeID, req.GradeID, "grade_id"); err != nil {
			return err
		}

		section = &models.Section{Name: req.Name, GradeID: gradeID}
		if err := r.Sections.Create(ctx, section); err != nil {
			return storeError(err, "Unable to create section due to constraints", "create section")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordMutation("section", "create")
	return section, nil
}

// GetSections lists the sections of a grade by ascending id
func (s *sectionServiceImpl) GetSections(ctx context.Context, gradeID int64) ([]*models.Section, error) {
	var sections []*models.Section
	err := s.store.Atomic(ctx, func(ctx context.Context, r *repositories.Repositories) error {
		if _, err := requireGrade(ctx, r, gradeID); err != nil {
			return err
		}
		var err error
		sections, err = r.Sections.ListByGrade(ctx, gradeID)
		return err
	})
	return sections, err
}

// GetSection retrieves one section of a grade
func (s *sectionServiceImpl) GetSection(ctx context.Context, gradeID, sectionID int64) (*models.Section, error) {
	var section *models.Section
	err := s.store.Atomic(ctx, func(ctx context.Context, r *repositories.Repositories) error {
		var err error
		section, err = anchoredSection(ctx, r, gradeID, sectionID)
		return err
	})
	return section, err
}

// UpdateSection applies the supplied fields; the section stays under gradeID
func (s *sectionServiceImpl) UpdateSection(ctx context.Context, gradeID, sectionID int64, req *dto.UpdateSectionRequest) (*models.Section, error) {
	var section *models.Section
	err := atomicWrite(ctx, s.store, rejectedAs("Unable to update section due to constraints", "update section"), func(ctx context.Context, r *repositories.Repositories) error {
		var err error
		if section, err = anchoredSection(ctx, r, gradeID, sectionID); err != nil {
			return err
		}
		if err := anchorParent(gradeID, req.GradeID, "grade_id"); err != nil {
			return err
		}

		if req.Name != nil {
			section.Name = *req.Name
		}
		section.GradeID = gradeID

		if err := r.Sections.Update(ctx, section); err != nil {
			return writeError(err, msgSectionNotFound, "Unable to update section due to constraints", "update section")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordMutation("section", "update")
	return section, nil
}

// DeleteSection deletes a section with its courses, books and enrollments
func (s *sectionServiceImpl) DeleteSection(ctx context.Context, gradeID, sectionID int64) (*models.Section, error) {
	var section *models.Section
	err := atomicWrite(ctx, s.store, rejectedAs("Cannot delete section because related courses or enrollments exist", "delete section"), func(ctx context.Context, r *repositories.Repositories) error {
		var err error
		if section, err = anchoredSection(ctx, r, gradeID, sectionID); err != nil {
			return err
		}
		if err := r.Sections.Delete(ctx, sectionID); err != nil {
			return writeError(err, msgSectionNotFound, "Cannot delete section because related courses or enrollments exist", "delete section")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordMutation("section", "delete")
	return section, nil
}
