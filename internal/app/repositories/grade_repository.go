package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/AriaGT/sistema-libreria/internal/app/models"
	"github.com/AriaGT/sistema-libreria/internal/pkg/logger"
)

type gradeRepository struct {
	q  Querier
	sb squirrel.StatementBuilderType
}

// Create inserts a grade and fills its ID
func (r *gradeRepository) Create(ctx context.Context, grade *models.Grade) error {
	sql, args, err := r.sb.Insert("grades").
		Columns("name").
		Values(grade.Name).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create grade query: %w", err)
	}

	if err := r.q.QueryRow(ctx, sql, args...).Scan(&grade.ID); err != nil {
		return fmt.Errorf("error creating grade: %w", err)
	}
	return nil
}

// GetByID retrieves a grade by ID
func (r *gradeRepository) GetByID(ctx context.Context, id int64) (*models.Grade, error) {
	sql, args, err := r.sb.Select("id", "name").
		From("grades").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get grade query: %w", err)
	}

	grade := &models.Grade{}
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&grade.ID, &grade.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("gradeID", id).Msg("Error scanning grade row")
		return nil, fmt.Errorf("error getting grade by ID: %w", err)
	}
	return grade, nil
}

// List retrieves all grades ordered by ID
func (r *gradeRepository) List(ctx context.Context) ([]*models.Grade, error) {
	sql, args, err := r.sb.Select("id", "name").
		From("grades").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list grades query: %w", err)
	}

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying grades: %w", err)
	}
	defer rows.Close()

	grades := []*models.Grade{}
	for rows.Next() {
		grade := &models.Grade{}
		if err := rows.Scan(&grade.ID, &grade.Name); err != nil {
			return nil, fmt.Errorf("error scanning grade row: %w", err)
		}
		grades = append(grades, grade)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating grade rows: %w", err)
	}
	return grades, nil
}

// Update writes every column of grade
func (r *gradeRepository) Update(ctx context.Context, grade *models.Grade) error {
	sql, args, err := r.sb.Update("grades").
		Set("name", grade.Name).
		Where(squirrel.Eq{"id": grade.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update grade query: %w", err)
	}
	return execAffectingOne(ctx, r.q, sql, args, "update grade")
}

// Delete removes a grade; sections and everything below cascade
func (r *gradeRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("grades").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete grade query: %w", err)
	}
	return execAffectingOne(ctx, r.q, sql, args, "delete grade")
}

// execAffectingOne runs a statement and maps zero affected rows to ErrNotFound
func execAffectingOne(ctx context.Context, q Querier, sql string, args []interface{}, op string) error {
	cmdTag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing %s: %w", op, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// exists runs a SELECT EXISTS over table filtered by where
func exists(ctx context.Context, q Querier, sb squirrel.StatementBuilderType, table string, where squirrel.Eq) (bool, error) {
	sql, args, err := sb.Select("1").
		From(table).
		Where(where).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build exists query on %s: %w", table, err)
	}

	var found bool
	if err := q.QueryRow(ctx, sql, args...).Scan(&found); err != nil {
		return false, fmt.Errorf("error checking %s: %w", table, err)
	}
	return found, nil
}
