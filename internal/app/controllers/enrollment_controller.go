package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AriaGT/sistema-libreria/internal/app/models/dto"
	"github.com/AriaGT/sistema-libreria/internal/app/services"
	"github.com/AriaGT/sistema-libreria/internal/middleware"
)

// EnrollmentController handles student enrollment in sections
type EnrollmentController struct {
	enrollmentService services.EnrollmentService
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
	}
}

func enrollmentIDs(ctx *gin.Context) (sectionID, enrollmentID int64, ok bool) {
	if sectionID, ok = middleware.ParseIDParam(ctx, "section_id"); !ok {
		return 0, 0, false
	}
	if enrollmentID, ok = middleware.ParseIDParam(ctx, "enrollment_id"); !ok {
		return 0, 0, false
	}
	return sectionID, enrollmentID, true
}

// Enroll links a student to a section
// @Summary Enroll a student
// @Tags enrollments
// @Accept json
// @Produce json
// @Param section_id path int true "Section ID" Format(int64) minimum(1)
// @Param request body dto.EnrollRequest true "Student to enroll"
// @Success 201 {object} dto.APIResponse{data=models.Enrollment} "Student enrolled"
// @Failure 400 {object} dto.ErrorResponse "Student already enrolled in this section"
// @Failure 404 {object} dto.ErrorResponse "Section or student not found"
// @Router /sections/{section_id}/enroll [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	sectionID, ok := middleware.ParseIDParam(ctx, "section_id")
	if !ok {
		return
	}

	var req dto.EnrollRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	enrollment, err := c.enrollmentService.Enroll(ctx.Request.Context(), sectionID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(enrollment))
}

// ListStudents lists the users enrolled in a section
// @Summary List enrolled students
// @Tags enrollments
// @Produce json
// @Param section_id path int true "Section ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]models.User} "Students"
// @Failure 404 {object} dto.ErrorResponse "Section not found"
// @Router /sections/{section_id}/students [get]
func (c *EnrollmentController) ListStudents(ctx *gin.Context) {
	sectionID, ok := middleware.ParseIDParam(ctx, "section_id")
	if !ok {
		return
	}

	students, err := c.enrollmentService.ListStudents(ctx.Request.Context(), sectionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(students))
}

// GetEnrollments lists the enrollment links of a section
// @Summary List enrollments
// @Tags enrollments
// @Produce json
// @Param section_id path int true "Section ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]models.Enrollment} "Enrollments"
// @Failure 404 {object} dto.ErrorResponse "Section not found"
// @Router /sections/{section_id}/enrollments [get]
func (c *EnrollmentController) GetEnrollments(ctx *gin.Context) {
	sectionID, ok := middleware.ParseIDParam(ctx, "section_id")
	if !ok {
		return
	}

	enrollments, err := c.enrollmentService.GetEnrollments(ctx.Request.Context(), sectionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(enrollments))
}

// GetEnrollment retrieves one enrollment of a section
// @Summary Get an enrollment
// @Tags enrollments
// @Produce json
// @Param section_id path int true "Section ID" Format(int64) minimum(1)
// @Param enrollment_id path int true "Enrollment ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Enrollment} "Enrollment"
// @Failure 404 {object} dto.ErrorResponse "Section or enrollment not found"
// @Router /sections/{section_id}/enrollments/{enrollment_id} [get]
func (c *EnrollmentController) GetEnrollment(ctx *gin.Context) {
	sectionID, enrollmentID, ok := enrollmentIDs(ctx)
	if !ok {
		return
	}

	enrollment, err := c.enrollmentService.GetEnrollment(ctx.Request.Context(), sectionID, enrollmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(enrollment))
}

// UpdateEnrollment moves an enrollment to another student
// @Summary Update an enrollment
// @Tags enrollments
// @Accept json
// @Produce json
// @Param section_id path int true "Section ID" Format(int64) minimum(1)
// @Param enrollment_id path int true "Enrollment ID" Format(int64) minimum(1)
// @Param request body dto.UpdateEnrollmentRequest true "New student"
// @Success 200 {object} dto.APIResponse{data=models.Enrollment} "Enrollment updated"
// @Failure 400 {object} dto.ErrorResponse "Student already enrolled in this section"
// @Failure 404 {object} dto.ErrorResponse "Section, enrollment or student not found"
// @Router /sections/{section_id}/enrollments/{enrollment_id} [patch]
func (c *EnrollmentController) UpdateEnrollment(ctx *gin.Context) {
	sectionID, enrollmentID, ok := enrollmentIDs(ctx)
	if !ok {
		return
	}

	var req dto.UpdateEnrollmentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	enrollment, err := c.enrollmentService.UpdateEnrollment(ctx.Request.Context(), sectionID, enrollmentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(enrollment))
}

// DeleteEnrollment removes a student from a section
// @Summary Delete an enrollment
// @Tags enrollments
// @Produce json
// @Param section_id path int true "Section ID" Format(int64) minimum(1)
// @Param enrollment_id path int true "Enrollment ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Enrollment} "Deleted enrollment"
// @Failure 404 {object} dto.ErrorResponse "Section or enrollment not found"
// @Router /sections/{section_id}/enrollments/{enrollment_id} [delete]
func (c *EnrollmentController) DeleteEnrollment(ctx *gin.Context) {
	sectionID, enrollmentID, ok := enrollmentIDs(ctx)
	if !ok {
		return
	}

	enrollment, err := c.enrollmentService.DeleteEnrollment(ctx.Request.Context(), sectionID, enrollmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(enrollment))
}
