package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AriaGT/sistema-libreria/internal/app/models/dto"
	"github.com/AriaGT/sistema-libreria/internal/app/services"
	"github.com/AriaGT/sistema-libreria/internal/middleware"
)

// CourseController handles the courses of a section
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

// CreateCourse creates a course under a section
// @Summary Create a course
// @Description section_id in the body is optional and must match the path when present. teacher_id must name an existing user.
// @Tags courses
// @Accept json
// @Produce json
// @Param section_id path int true "Section ID" Format(int64) minimum(1)
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=models.Course} "Course created"
// @Failure 400 {object} dto.ErrorResponse "section_id mismatch with path parameter"
// @Failure 404 {object} dto.ErrorResponse "Section or teacher not found"
// @Router /sections/{section_id}/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	sectionID, ok := middleware.ParseIDParam(ctx, "section_id")
	if !ok {
		return
	}

	var req dto.CreateCourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.courseService.CreateCourse(ctx.Request.Context(), sectionID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(course))
}

// GetCourses lists the courses of a section
// @Summary List courses
// @Tags courses
// @Produce json
// @Param section_id path int true "Section ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]models.Course} "Courses"
// @Failure 404 {object} dto.ErrorResponse "Section not found"
// @Router /sections/{section_id}/courses [get]
func (c *CourseController) GetCourses(ctx *gin.Context) {
	sectionID, ok := middleware.ParseIDParam(ctx, "section_id")
	if !ok {
		return
	}

	courses, err := c.courseService.GetCourses(ctx.Request.Context(), sectionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(courses))
}

// GetCourse retrieves a course of a section
// @Summary Get a course
// @Tags courses
// @Produce json
// @Param section_id path int true "Section ID" Format(int64) minimum(1)
// @Param course_id path int true "Course ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course"
// @Failure 404 {object} dto.ErrorResponse "Section or course not found"
// @Router /sections/{section_id}/courses/{course_id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	sectionID, ok := middleware.ParseIDParam(ctx, "section_id")
	if !ok {
		return
	}
	courseID, ok := middleware.ParseIDParam(ctx, "course_id")
	if !ok {
		return
	}

	course, err := c.courseService.GetCourse(ctx.Request.Context(), sectionID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course))
}

// UpdateCourse applies a partial update to a course
// @Summary Update a course
// @Tags courses
// @Accept json
// @Produce json
// @Param section_id path int true "Section ID" Format(int64) minimum(1)
// @Param course_id path int true "Course ID" Format(int64) minimum(1)
// @Param request body dto.UpdateCourseRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course updated"
// @Failure 400 {object} dto.ErrorResponse "section_id mismatch with path parameter"
// @Failure 404 {object} dto.ErrorResponse "Section, course or teacher not found"
// @Router /sections/{section_id}/courses/{course_id} [patch]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	sectionID, ok := middleware.ParseIDParam(ctx, "section_id")
	if !ok {
		return
	}
	courseID, ok := middleware.ParseIDParam(ctx, "course_id")
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.courseService.UpdateCourse(ctx.Request.Context(), sectionID, courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course))
}

// DeleteCourse deletes a course and its books
// @Summary Delete a course
// @Tags courses
// @Produce json
// @Param section_id path int true "Section ID" Format(int64) minimum(1)
// @Param course_id path int true "Course ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Course} "Deleted course"
// @Failure 404 {object} dto.ErrorResponse "Section or course not found"
// @Router /sections/{section_id}/courses/{course_id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	sectionID, ok := middleware.ParseIDParam(ctx, "section_id")
	if !ok {
		return
	}
	courseID, ok := middleware.ParseIDParam(ctx, "course_id")
	if !ok {
		return
	}

	course, err := c.courseService.DeleteCourse(ctx.Request.Context(), sectionID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course))
}
