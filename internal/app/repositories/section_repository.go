package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/AriaGT/sistema-libreria/internal/app/models"
)

var sectionColumns = []string{"id", "name", "grade_id"}

type sectionRepository struct {
	q  Querier
	sb squirrel.StatementBuilderType
}

// Create inserts a section and fills its ID
func (r *sectionRepository) Create(ctx context.Context, section *models.Section) error {
	sql, args, err := r.sb.Insert("sections").
		Columns("name", "grade_id").
		Values(section.Name, section.GradeID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create section query: %w", err)
	}

	if err := r.q.QueryRow(ctx, sql, args...).Scan(&section.ID); err != nil {
		return fmt.Errorf("error creating section: %w", err)
	}
	return nil
}

// GetByID retrieves a section by ID
func (r *sectionRepository) GetByID(ctx context.Context, id int64) (*models.Section, error) {
	sql, args, err := r.sb.Select(sectionColumns...).
		From("sections").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get section query: %w", err)
	}

	s := &models.Section{}
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&s.ID, &s.Name, &s.GradeID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error getting section by ID: %w", err)
	}
	return s, nil
}

// ListByGrade retrieves the sections of a grade ordered by ID
func (r *sectionRepository) ListByGrade(ctx context.Context, gradeID int64) ([]*models.Section, error) {
	sql, args, err := r.sb.Select(sectionColumns...).
		From("sections").
		Where(squirrel.Eq{"grade_id": gradeID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list sections query: %w", err)
	}

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying sections: %w", err)
	}
	defer rows.Close()

	sections := []*models.Section{}
	for rows.Next() {
		s := &models.Section{}
		if err := rows.Scan(&s.ID, &s.Name, &s.GradeID); err != nil {
			return nil, fmt.Errorf("error scanning section row: %w", err)
		}
		sections = append(sections, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating section rows: %w", err)
	}
	return sections, nil
}

// Update writes every column of section
func (r *sectionRepository) Update(ctx context.Context, section *models.Section) error {
	sql, args, err := r.sb.Update("sections").
		SetMap(map[string]interface{}{
			"name":     section.Name,
			"grade_id": section.GradeID,
		}).
		Where(squirrel.Eq{"id": section.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update section query: %w", err)
	}
	return execAffectingOne(ctx, r.q, sql, args, "update section")
}

// Delete removes a section; courses, books and enrollments cascade
func (r *sectionRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("sections").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete section query: %w", err)
	}
	return execAffectingOne(ctx, r.q, sql, args, "delete section")
}
