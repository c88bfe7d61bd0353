package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AriaGT/sistema-libreria/internal/app/models/dto"
	"github.com/AriaGT/sistema-libreria/internal/app/services"
	"github.com/AriaGT/sistema-libreria/internal/middleware"
)

// GradeController handles grade-related operations
type GradeController struct {
	gradeService services.GradeService
}

// NewGradeController creates a new GradeController
func NewGradeController(gradeService services.GradeService) *GradeController {
	return &GradeController{
		gradeService: gradeService,
	}
}

// CreateGrade handles grade creation
// @Summary Create a grade
// @Tags grades
// @Accept json
// @Produce json
// @Param request body dto.CreateGradeRequest true "Grade information"
// @Success 201 {object} dto.APIResponse{data=models.Grade} "Grade created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Grade name already exists"
// @Router /grades [post]
func (c *GradeController) CreateGrade(ctx *gin.Context) {
	var req dto.CreateGradeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	grade, err := c.gradeService.CreateGrade(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(grade))
}

// GetGrades lists every grade
// @Summary List grades
// @Tags grades
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Grade} "Grades"
// @Router /grades [get]
func (c *GradeController) GetGrades(ctx *gin.Context) {
	grades, err := c.gradeService.GetGrades(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(grades))
}

// GetGrade retrieves a grade by ID
// @Summary Get a grade
// @Tags grades
// @Produce json
// @Param grade_id path int true "Grade ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Grade} "Grade"
// @Failure 404 {object} dto.ErrorResponse "Grade not found"
// @Router /grades/{grade_id} [get]
func (c *GradeController) GetGrade(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "grade_id")
	if !ok {
		return
	}

	grade, err := c.gradeService.GetGradeByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(grade))
}

// UpdateGrade renames a grade
// @Summary Update a grade
// @Tags grades
// @Accept json
// @Produce json
// @Param grade_id path int true "Grade ID" Format(int64) minimum(1)
// @Param request body dto.UpdateGradeRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Grade} "Grade updated"
// @Failure 404 {object} dto.ErrorResponse "Grade not found"
// @Failure 409 {object} dto.ErrorResponse "Grade name already exists"
// @Router /grades/{grade_id} [patch]
func (c *GradeController) UpdateGrade(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "grade_id")
	if !ok {
		return
	}

	var req dto.UpdateGradeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	grade, err := c.gradeService.UpdateGrade(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(grade))
}

// DeleteGrade deletes a grade with all its sections, courses, books and enrollments
// @Summary Delete a grade
// @Tags grades
// @Produce json
// @Param grade_id path int true "Grade ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Grade} "Deleted grade"
// @Failure 404 {object} dto.ErrorResponse "Grade not found"
// @Router /grades/{grade_id} [delete]
func (c *GradeController) DeleteGrade(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "grade_id")
	if !ok {
		return
	}

	grade, err := c.gradeService.DeleteGrade(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(grade))
}
