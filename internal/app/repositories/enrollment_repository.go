package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/AriaGT/sistema-libreria/internal/app/models"
)

var enrollmentColumns = []string{"id", "student_id", "section_id"}

type enrollmentRepository struct {
	q  Querier
	sb squirrel.StatementBuilderType
}

// Create inserts an enrollment and fills its ID
func (r *enrollmentRepository) Create(ctx context.Context, e *models.Enrollment) error {
	sql, args, err := r.sb.Insert("student_sections").
		Columns("student_id", "section_id").
		Values(e.StudentID, e.SectionID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create enrollment query: %w", err)
	}

	if err := r.q.QueryRow(ctx, sql, args...).Scan(&e.ID); err != nil {
		return fmt.Errorf("error creating enrollment: %w", err)
	}
	return nil
}

// GetByID retrieves an enrollment by ID
func (r *enrollmentRepository) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// FindBySectionAndStudent retrieves the enrollment linking studentID to sectionID
func (r *enrollmentRepository) FindBySectionAndStudent(ctx context.Context, sectionID, studentID int64) (*models.Enrollment, error) {
	return r.getOne(ctx, squirrel.Eq{"section_id": sectionID, "student_id": studentID})
}

func (r *enrollmentRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.Enrollment, error) {
	sql, args, err := r.sb.Select(enrollmentColumns...).
		From("student_sections").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get enrollment query: %w", err)
	}

	e := &models.Enrollment{}
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&e.ID, &e.StudentID, &e.SectionID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error getting enrollment: %w", err)
	}
	return e, nil
}

// ListBySection retrieves the enrollments of a section ordered by ID
func (r *enrollmentRepository) ListBySection(ctx context.Context, sectionID int64) ([]*models.Enrollment, error) {
	sql, args, err := r.sb.Select(enrollmentColumns...).
		From("student_sections").
		Where(squirrel.Eq{"section_id": sectionID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list enrollments query: %w", err)
	}

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying enrollments: %w", err)
	}
	defer rows.Close()

	enrollments := []*models.Enrollment{}
	for rows.Next() {
		e := &models.Enrollment{}
		if err := rows.Scan(&e.ID, &e.StudentID, &e.SectionID); err != nil {
			return nil, fmt.Errorf("error scanning enrollment row: %w", err)
		}
		enrollments = append(enrollments, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating enrollment rows: %w", err)
	}
	return enrollments, nil
}

// ListStudents retrieves the users enrolled in a section ordered by user ID
func (r *enrollmentRepository) ListStudents(ctx context.Context, sectionID int64) ([]*models.User, error) {
	cols := make([]string, len(userColumns))
	for i, c := range userColumns {
		cols[i] = "u." + c
	}
	sql, args, err := r.sb.Select(cols...).
		From("users u").
		Join("student_sections ss ON ss.student_id = u.id").
		Where(squirrel.Eq{"ss.section_id": sectionID}).
		OrderBy("u.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}
	return queryUsers(ctx, r.q, sql, args)
}

// Update writes every column of an enrollment
func (r *enrollmentRepository) Update(ctx context.Context, e *models.Enrollment) error {
	sql, args, err := r.sb.Update("student_sections").
		SetMap(map[string]interface{}{
			"student_id": e.StudentID,
			"section_id": e.SectionID,
		}).
		Where(squirrel.Eq{"id": e.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update enrollment query: %w", err)
	}
	return execAffectingOne(ctx, r.q, sql, args, "update enrollment")
}

// Delete removes an enrollment
func (r *enrollmentRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("student_sections").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete enrollment query: %w", err)
	}
	return execAffectingOne(ctx, r.q, sql, args, "delete enrollment")
}

// DeleteByStudent removes every enrollment of studentID and returns how many were removed
func (r *enrollmentRepository) DeleteByStudent(ctx context.Context, studentID int64) (int64, error) {
	sql, args, err := r.sb.Delete("student_sections").Where(squirrel.Eq{"student_id": studentID}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete enrollments query: %w", err)
	}

	cmdTag, err := r.q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error deleting enrollments of student: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
