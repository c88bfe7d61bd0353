package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/AriaGT/sistema-libreria/internal/app/models"
)

var courseColumns = []string{"id", "name", "section_id", "teacher_id"}

type courseRepository struct {
	q  Querier
	sb squirrel.StatementBuilderType
}

// Create inserts a course and fills its ID
func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Insert("courses").
		Columns("name", "section_id", "teacher_id").
		Values(course.Name, course.SectionID, course.TeacherID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	if err := r.q.QueryRow(ctx, sql, args...).Scan(&course.ID); err != nil {
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

// GetByID retrieves a course by ID
func (r *courseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	c := &models.Course{}
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.Name, &c.SectionID, &c.TeacherID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}
	return c, nil
}

// ListBySection retrieves the courses of a section ordered by ID
func (r *courseRepository) ListBySection(ctx context.Context, sectionID int64) ([]*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"section_id": sectionID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		c := &models.Course{}
		if err := rows.Scan(&c.ID, &c.Name, &c.SectionID, &c.TeacherID); err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}
	return courses, nil
}

// Update writes every column of course
func (r *courseRepository) Update(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Update("courses").
		SetMap(map[string]interface{}{
			"name":       course.Name,
			"section_id": course.SectionID,
			"teacher_id": course.TeacherID,
		}).
		Where(squirrel.Eq{"id": course.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update course query: %w", err)
	}
	return execAffectingOne(ctx, r.q, sql, args, "update course")
}

// Delete removes a course; its books cascade
func (r *courseRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("courses").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete course query: %w", err)
	}
	return execAffectingOne(ctx, r.q, sql, args, "delete course")
}

// ExistsByTeacher reports whether any course is taught by teacherID
func (r *courseRepository) ExistsByTeacher(ctx context.Context, teacherID int64) (bool, error) {
	return exists(ctx, r.q, r.sb, "courses", squirrel.Eq{"teacher_id": teacherID})
}
