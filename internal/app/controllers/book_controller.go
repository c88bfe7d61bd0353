package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AriaGT/sistema-libreria/internal/app/models/dto"
	"github.com/AriaGT/sistema-libreria/internal/app/services"
	"github.com/AriaGT/sistema-libreria/internal/middleware"
)

// BookController handles the books of a course
type BookController struct {
	bookService services.BookService
}

// NewBookController creates a new BookController
func NewBookController(bookService services.BookService) *BookController {
	return &BookController{
		bookService: bookService,
	}
}

// bookIDs reads both path ids of a book route
func bookIDs(ctx *gin.Context) (courseID, bookID int64, ok bool) {
	if courseID, ok = middleware.ParseIDParam(ctx, "course_id"); !ok {
		return 0, 0, false
	}
	if bookID, ok = middleware.ParseIDParam(ctx, "book_id"); !ok {
		return 0, 0, false
	}
	return courseID, bookID, true
}

// CreateBook creates a book under a course
// @Summary Create a book
// @Description course_id in the body is optional and must match the path when present. created_by must name an existing user.
// @Tags books
// @Accept json
// @Produce json
// @Param course_id path int true "Course ID" Format(int64) minimum(1)
// @Param request body dto.CreateBookRequest true "Book information"
// @Success 201 {object} dto.APIResponse{data=models.Book} "Book created"
// @Failure 400 {object} dto.ErrorResponse "course_id mismatch with path parameter"
// @Failure 404 {object} dto.ErrorResponse "Course or user not found"
// @Router /courses/{course_id}/books [post]
func (c *BookController) CreateBook(ctx *gin.Context) {
	courseID, ok := middleware.ParseIDParam(ctx, "course_id")
	if !ok {
		return
	}

	var req dto.CreateBookRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	book, err := c.bookService.CreateBook(ctx.Request.Context(), courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(book))
}

// GetBooks lists the books of a course
// @Summary List books
// @Tags books
// @Produce json
// @Param course_id path int true "Course ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]models.Book} "Books"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{course_id}/books [get]
func (c *BookController) GetBooks(ctx *gin.Context) {
	courseID, ok := middleware.ParseIDParam(ctx, "course_id")
	if !ok {
		return
	}

	books, err := c.bookService.GetBooks(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(books))
}

// GetBook retrieves a book of a course
// @Summary Get a book
// @Tags books
// @Produce json
// @Param course_id path int true "Course ID" Format(int64) minimum(1)
// @Param book_id path int true "Book ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Book} "Book"
// @Failure 404 {object} dto.ErrorResponse "Course or book not found"
// @Router /courses/{course_id}/books/{book_id} [get]
func (c *BookController) GetBook(ctx *gin.Context) {
	courseID, bookID, ok := bookIDs(ctx)
	if !ok {
		return
	}

	book, err := c.bookService.GetBook(ctx.Request.Context(), courseID, bookID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(book))
}

// UpdateBook applies a partial update to a book
// @Summary Update a book
// @Tags books
// @Accept json
// @Produce json
// @Param course_id path int true "Course ID" Format(int64) minimum(1)
// @Param book_id path int true "Book ID" Format(int64) minimum(1)
// @Param request body dto.UpdateBookRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Book} "Book updated"
// @Failure 400 {object} dto.ErrorResponse "course_id mismatch with path parameter"
// @Failure 404 {object} dto.ErrorResponse "Course, book or user not found"
// @Router /courses/{course_id}/books/{book_id} [patch]
func (c *BookController) UpdateBook(ctx *gin.Context) {
	courseID, bookID, ok := bookIDs(ctx)
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	book, err := c.bookService.UpdateBook(ctx.Request.Context(), courseID, bookID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(book))
}

// DeleteBook deletes a book
// @Summary Delete a book
// @Tags books
// @Produce json
// @Param course_id path int true "Course ID" Format(int64) minimum(1)
// @Param book_id path int true "Book ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Book} "Deleted book"
// @Failure 404 {object} dto.ErrorResponse "Course or book not found"
// @Router /courses/{course_id}/books/{book_id} [delete]
func (c *BookController) DeleteBook(ctx *gin.Context) {
	courseID, bookID, ok := bookIDs(ctx)
	if !ok {
		return
	}

	book, err := c.bookService.DeleteBook(ctx.Request.Context(), courseID, bookID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(book))
}
