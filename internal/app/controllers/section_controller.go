package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AriaGT/sistema-libreria/internal/app/models/dto"
	"github.com/AriaGT/sistema-libreria/internal/app/services"
	"github.com/AriaGT/sistema-libreria/internal/middleware"
)

// SectionController handles the sections of a grade
type SectionController struct {
	sectionService services.SectionService
}

// NewSectionController creates a new SectionController
func NewSectionController(sectionService services.SectionService) *SectionController {
	return &SectionController{
		sectionService: sectionService,
	}
}

// CreateSection creates a section under a grade
// @Summary Create a section
// @Description grade_id in the body is optional and must match the path when present
// @Tags sections
// @Accept json
// @Produce json
// @Param grade_id path int true "Grade ID" Format(int64) minimum(1)
// @Param request body dto.CreateSectionRequest true "Section information"
// @Success 201 {object} dto.APIResponse{data=models.Section} "Section created"
// @Failure 400 {object} dto.ErrorResponse "grade_id mismatch with path parameter"
// @Failure 404 {object} dto.ErrorResponse "Grade not found"
// @Router /grades/{grade_id}/sections [post]
func (c *SectionController) CreateSection(ctx *gin.Context) {
	gradeID, ok := middleware.ParseIDParam(ctx, "grade_id")
	if !ok {
		return
	}

	var req dto.CreateSectionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	section, err := c.sectionService.CreateSection(ctx.Request.Context(), gradeID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(section))
}

// GetSections lists the sections of a grade
// @Summary List sections
// @Tags sections
// @Produce json
// @Param grade_id path int true "Grade ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]models.Section} "Sections"
// @Failure 404 {object} dto.ErrorResponse "Grade not found"
// @Router /grades/{grade_id}/sections [get]
func (c *SectionController) GetSections(ctx *gin.Context) {
	gradeID, ok := middleware.ParseIDParam(ctx, "grade_id")
	if !ok {
		return
	}

	sections, err := c.sectionService.GetSections(ctx.Request.Context(), gradeID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(sections))
}

// GetSection retrieves a section of a grade
// @Summary Get a section
// @Tags sections
// @Produce json
// @Param grade_id path int true "Grade ID" Format(int64) minimum(1)
// @Param section_id path int true "Section ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Section} "Section"
// @Failure 404 {object} dto.ErrorResponse "Grade or section not found"
// @Router /grades/{grade_id}/sections/{section_id} [get]
func (c *SectionController) GetSection(ctx *gin.Context) {
	gradeID, ok := middleware.ParseIDParam(ctx, "grade_id")
	if !ok {
		return
	}
	sectionID, ok := middleware.ParseIDParam(ctx, "section_id")
	if !ok {
		return
	}

	section, err := c.sectionService.GetSection(ctx.Request.Context(), gradeID, sectionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(section))
}

// UpdateSection applies a partial update to a section
// @Summary Update a section
// @Tags sections
// @Accept json
// @Produce json
// @Param grade_id path int true "Grade ID" Format(int64) minimum(1)
// @Param section_id path int true "Section ID" Format(int64) minimum(1)
// @Param request body dto.UpdateSectionRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Section} "Section updated"
// @Failure 400 {object} dto.ErrorResponse "grade_id mismatch with path parameter"
// @Failure 404 {object} dto.ErrorResponse "Grade or section not found"
// @Router /grades/{grade_id}/sections/{section_id} [patch]
func (c *SectionController) UpdateSection(ctx *gin.Context) {
	gradeID, ok := middleware.ParseIDParam(ctx, "grade_id")
	if !ok {
		return
	}
	sectionID, ok := middleware.ParseIDParam(ctx, "section_id")
	if !ok {
		return
	}

	var req dto.UpdateSectionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	section, err := c.sectionService.UpdateSection(ctx.Request.Context(), gradeID, sectionID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(section))
}

// DeleteSection deletes a section with its courses, books and enrollments
// @Summary Delete a section
// @Tags sections
// @Produce json
// @Param grade_id path int true "Grade ID" Format(int64) minimum(1)
// @Param section_id path int true "Section ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Section} "Deleted section"
// @Failure 404 {object} dto.ErrorResponse "Grade or section not found"
// @Router /grades/{grade_id}/sections/{section_id} [delete]
func (c *SectionController) DeleteSection(ctx *gin.Context) {
	gradeID, ok := middleware.ParseIDParam(ctx, "grade_id")
	if !ok {
		return
	}
	sectionID, ok := middleware.ParseIDParam(ctx, "section_id")
	if !ok {
		return
	}

	section, err := c.sectionService.DeleteSection(ctx.Request.Context(), gradeID, sectionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(section))
}
