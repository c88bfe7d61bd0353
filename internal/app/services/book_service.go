package services

import (
	"context"

	"github.com/AriaGT/sistema-libreria/internal/app/models"
	"github.com/AriaGT/sistema-libreria/internal/app/models/dto"
	"github.com/AriaGT/sistema-libreria/internal/app/repositories"
	"github.com/AriaGT/sistema-libreria/internal/pkg/metrics"
)

// BookService defines the interface for book operations, always anchored to a course
type BookService interface {
	CreateBook(ctx context.Context, courseID int64, req *dto.CreateBookRequest) (*models.Book, error)
	GetBooks(ctx context.Context, courseID int64) ([]*models.Book, error)
	GetBook(ctx context.Context, courseID, bookID int64) (*models.Book, error)
	UpdateBook(ctx context.Context, courseID, bookID int64, req *dto.UpdateBookRequest) (*models.Book, error)
	DeleteBook(ctx context.Context, courseID, bookID int64) (*models.Book, error)
}

type bookServiceImpl struct {
	store repositories.Store
}

// NewBookService creates a new book service instance
func NewBookService(store repositories.Store) BookService {
	return &bookServiceImpl{store: store}
}

// anchoredBook loads a book and checks it belongs to courseID
func anchoredBook(ctx context.Context, r *repositories.Repositories, courseID, bookID int64) (*models.Book, error) {
	if _, err := requireCourse(ctx, r, courseID); err != nil {
		return nil, err
	}
	book, err := r.Books.GetByID(ctx, bookID)
	if err != nil {
		return nil, notFound(err, msgBookNotFound)
	}
	if book.CourseID != courseID {
		return nil, notFound(repositories.ErrNotFound, msgBookNotFound)
	}
	return book, nil
}

// CreateBook creates a book under courseID
func (s *bookServiceImpl) CreateBook(ctx context.Context, courseID int64, req *dto.CreateBookRequest) (*models.Book, error) {
	var book *models.Book
	err := atomicWrite(ctx, s.store, rejectedAs("Unable to create book due to constraints", "create book"), func(ctx context.Context, r *repositories.Repositories) error {
		if _, err := requireCourse(ctx, r, courseID); err != nil {
			return err
		}
		if err := anchorParent(courseID, req.CourseID, "course_id"); err != nil {
			return err
		}
		if _, err := requireUser(ctx, r, req.CreatedBy, msgUserNotFound); err != nil {
			return err
		}

		book = &models.Book{
			Title:       req.Title,
			Author:      req.Author,
			Description: req.Description,
			FileURL:     req.FileURL,
			Category:    req.Category,
			CourseID:    courseID,
			CreatedBy:   req.CreatedBy,
		}
		if err := r.Books.Create(ctx, book); err != nil {
			return storeError(err, "Unable to create book due to constraints", "create book")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordMutation("book", "create")
	return book, nil
}

// GetBooks lists the books of a course by ascending id
func (s *bookServiceImpl) GetBooks(ctx context.Context, courseID int64) ([]*models.Book, error) {
	var books []*models.Book
	err := s.store.Atomic(ctx, func(ctx context.Context, r *repositories.Repositories) error {
		if _, err := requireCourse(ctx, r, courseID); err != nil {
			return err
		}
		var err error
		books, err = r.Books.ListByCourse(ctx, courseID)
		return err
	})
	return books, err
}

// GetBook retrieves one book of a course
func (s *bookServiceImpl) GetBook(ctx context.Context, courseID, bookID int64) (*models.Book, error) {
	var book *models.Book
	err := s.store.Atomic(ctx, func(ctx context.Context, r *repositories.Repositories) error {
		var err error
		book, err = anchoredBook(ctx, r, courseID, bookID)
		return err
	})
	return book, err
}

// UpdateBook applies the supplied fields; the book stays under courseID
func (s *bookServiceImpl) UpdateBook(ctx context.Context, courseID, bookID int64, req *dto.UpdateBookRequest) (*models.Book, error) {
	var book *models.Book
	err := atomicWrite(ctx, s.store, rejectedAs("Unable to update book due to constraints", "update book"), func(ctx context.Context, r *repositories.Repositories) error {
		var err error
		if book, err = anchoredBook(ctx, r, courseID, bookID); err != nil {
			return err
		}
		if err := anchorParent(courseID, req.CourseID, "course_id"); err != nil {
			return err
		}
		if req.CreatedBy != nil {
			if _, err := requireUser(ctx, r, *req.CreatedBy, msgUserNotFound); err != nil {
				return err
			}
			book.CreatedBy = *req.CreatedBy
		}

		applyBookPatch(book, req)
		book.CourseID = courseID

		if err := r.Books.Update(ctx, book); err != nil {
			return writeError(err, msgBookNotFound, "Unable to update book due to constraints", "update book")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordMutation("book", "update")
	return book, nil
}

func applyBookPatch(book *models.Book, req *dto.UpdateBookRequest) {
	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.Description.Set {
		book.Description = req.Description.Value
	}
	if req.FileURL != nil {
		book.FileURL = *req.FileURL
	}
	if req.Category.Set {
		book.Category = req.Category.Value
	}
}

// DeleteBook deletes a book
func (s *bookServiceImpl) DeleteBook(ctx context.Context, courseID, bookID int64) (*models.Book, error) {
	var book *models.Book
	err := atomicWrite(ctx, s.store, rejectedAs("Cannot delete book because it is referenced by other records", "delete book"), func(ctx context.Context, r *repositories.Repositories) error {
		var err error
		if book, err = anchoredBook(ctx, r, courseID, bookID); err != nil {
			return err
		}
		if err := r.Books.Delete(ctx, bookID); err != nil {
			return writeError(err, msgBookNotFound, "Cannot delete book because it is referenced by other records", "delete book")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordMutation("book", "delete")
	return book, nil
}
