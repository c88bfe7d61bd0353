package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/AriaGT/sistema-libreria/internal/app/controllers"
	"github.com/AriaGT/sistema-libreria/internal/middleware"
)

// Controllers groups every HTTP handler the router mounts
type Controllers struct {
	Auth       *controllers.AuthController
	User       *controllers.UserController
	Grade      *controllers.GradeController
	Section    *controllers.SectionController
	Course     *controllers.CourseController
	Book       *controllers.BookController
	Enrollment *controllers.EnrollmentController
	Health     *controllers.HealthController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	router.GET("/health", c.Health.Health)
	router.GET("/ping", c.Health.Ping)

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/login", c.Auth.Login)
		auth.GET("/me", authMiddleware.JWTAuth(), c.Auth.Me)
	}

	users := v1.Group("/users")
	{
		users.GET("", c.User.GetUsers)
		users.POST("", c.User.CreateUser)
		users.GET("/:user_id", c.User.GetUser)
		users.PATCH("/:user_id", c.User.UpdateUser)
		users.DELETE("/:user_id", c.User.DeleteUser)
	}

	grades := v1.Group("/grades")
	{
		grades.GET("", c.Grade.GetGrades)
		grades.POST("", c.Grade.CreateGrade)
		grades.GET("/:grade_id", c.Grade.GetGrade)
		grades.PATCH("/:grade_id", c.Grade.UpdateGrade)
		grades.DELETE("/:grade_id", c.Grade.DeleteGrade)

		sections := grades.Group("/:grade_id/sections")
		{
			sections.GET("", c.Section.GetSections)
			sections.POST("", c.Section.CreateSection)
			sections.GET("/:section_id", c.Section.GetSection)
			sections.PATCH("/:section_id", c.Section.UpdateSection)
			sections.DELETE("/:section_id", c.Section.DeleteSection)
		}
	}

	section := v1.Group("/sections/:section_id")
	{
		section.GET("/courses", c.Course.GetCourses)
		section.POST("/courses", c.Course.CreateCourse)
		section.GET("/courses/:course_id", c.Course.GetCourse)
		section.PATCH("/courses/:course_id", c.Course.UpdateCourse)
		section.DELETE("/courses/:course_id", c.Course.DeleteCourse)

		section.POST("/enroll", c.Enrollment.Enroll)
		section.GET("/students", c.Enrollment.ListStudents)
		section.GET("/enrollments", c.Enrollment.GetEnrollments)
		section.GET("/enrollments/:enrollment_id", c.Enrollment.GetEnrollment)
		section.PATCH("/enrollments/:enrollment_id", c.Enrollment.UpdateEnrollment)
		section.DELETE("/enrollments/:enrollment_id", c.Enrollment.DeleteEnrollment)
	}

	course := v1.Group("/courses/:course_id/books")
	{
		course.GET("", c.Book.GetBooks)
		course.POST("", c.Book.CreateBook)
		course.GET("/:book_id", c.Book.GetBook)
		course.PATCH("/:book_id", c.Book.UpdateBook)
		course.DELETE("/:book_id", c.Book.DeleteBook)
	}
}
