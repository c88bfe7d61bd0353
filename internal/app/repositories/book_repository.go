package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/AriaGT/sistema-libreria/internal/app/models"
)

var bookColumns = []string{"id", "title", "author", "description", "file_url", "category", "course_id", "created_by", "created_at"}

type bookRepository struct {
	q  Querier
	sb squirrel.StatementBuilderType
}

func scanBook(row pgx.Row) (*models.Book, error) {
	b := &models.Book{}
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.FileURL, &b.Category, &b.CourseID, &b.CreatedBy, &b.CreatedAt)
	return b, err
}

// Create inserts a book and fills its ID and creation time
func (r *bookRepository) Create(ctx context.Context, book *models.Book) error {
	sql, args, err := r.sb.Insert("books").
		Columns("title", "author", "description", "file_url", "category", "course_id", "created_by").
		Values(book.Title, book.Author, book.Description, book.FileURL, book.Category, book.CourseID, book.CreatedBy).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create book query: %w", err)
	}

	if err := r.q.QueryRow(ctx, sql, args...).Scan(&book.ID, &book.CreatedAt); err != nil {
		return fmt.Errorf("error creating book: %w", err)
	}
	return nil
}

// GetByID retrieves a book by ID
func (r *bookRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	sql, args, err := r.sb.Select(bookColumns...).
		From("books").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get book query: %w", err)
	}

	b, err := scanBook(r.q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error getting book by ID: %w", err)
	}
	return b, nil
}

// ListByCourse retrieves the books of a course ordered by ID
func (r *bookRepository) ListByCourse(ctx context.Context, courseID int64) ([]*models.Book, error) {
	sql, args, err := r.sb.Select(bookColumns...).
		From("books").
		Where(squirrel.Eq{"course_id": courseID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list books query: %w", err)
	}

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying books: %w", err)
	}
	defer rows.Close()

	books := []*models.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning book row: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating book rows: %w", err)
	}
	return books, nil
}

// Update writes every mutable column of book
func (r *bookRepository) Update(ctx context.Context, book *models.Book) error {
	sql, args, err := r.sb.Update("books").
		SetMap(map[string]interface{}{
			"title":       book.Title,
			"author":      book.Author,
			"description": book.Description,
			"file_url":    book.FileURL,
			"category":    book.Category,
			"course_id":   book.CourseID,
			"created_by":  book.CreatedBy,
		}).
		Where(squirrel.Eq{"id": book.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update book query: %w", err)
	}
	return execAffectingOne(ctx, r.q, sql, args, "update book")
}

// Delete removes a book
func (r *bookRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("books").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete book query: %w", err)
	}
	return execAffectingOne(ctx, r.q, sql, args, "delete book")
}

// ExistsByCreator reports whether userID created any book
func (r *bookRepository) ExistsByCreator(ctx context.Context, userID int64) (bool, error) {
	return exists(ctx, r.q, r.sb, "books", squirrel.Eq{"created_by": userID})
}
