package api

import (
	"net/http"

	resdto "course-enrollment/internal/handler/dto/response"
	"course-enrollment/internal/handler/httperr"
	"course-enrollment/internal/handler/middleware"
	"course-enrollment/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type EnrollmentHandler struct {
	q queries.EnrollmentQueries
}

func NewEnrollmentHandler(q queries.EnrollmentQueries) *EnrollmentHandler {
	return &EnrollmentHandler{q: q}
}

// @Summary Enrollments per class
// @Description One row per class name with its enrollment count, most enrolled first
// @Tags enrollments
// @Produce json
// @Success 200 {array} resdto.ClassEnrollmentResponse
// @Failure 503 {object} httperr.Response
// @Router /enrollments/by-class [get]
func (h *EnrollmentHandler) ByClass(c *gin.Context) {
	rows, err := h.q.EnrollmentsByClass(c.Request.Context())
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	res, err := resdto.FromClassEnrollmentViews(rows)
	if err != nil {
		abortInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Enrolled students of an instructor
// @Tags enrollments
// @Produce json
// @Param instructorName query string true "Instructor name"
// @Success 200 {object} resdto.EnrollmentCountResponse
// @Failure 400 {object} httperr.Response
// @Router /enrollments/count [get]
func (h *EnrollmentHandler) CountByInstructor(c *gin.Context) {
	name := c.Query("instructorName")
	n, err := h.q.TotalEnrolledStudents(c.Request.Context(), name)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.EnrollmentCountResponse{InstructorName: name, Total: n})
}

// @Summary Enrollments of a student
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param email query string true "Student email"
// @Success 200 {array} resdto.EnrollmentResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /enrollments [get]
func (h *EnrollmentHandler) ListByStudent(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, httperr.CodeUnauthorized, nil, "Unauthorized", nil)
		return
	}
	email := c.Query("email")
	if email == "" {
		email = caller.Email
	}
	rows, err := h.q.ListByStudent(c.Request.Context(), caller, email)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	res, err := resdto.FromEnrollmentViews(rows)
	if err != nil {
		abortInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
