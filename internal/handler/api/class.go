package api

import (
	"context"
	"net/http"

	"course-enrollment/internal/domain/user"
	reqdto "course-enrollment/internal/handler/dto/request"
	resdto "course-enrollment/internal/handler/dto/response"
	"course-enrollment/internal/handler/httperr"
	"course-enrollment/internal/handler/middleware"
	"course-enrollment/internal/usecase/commands"
	"course-enrollment/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ClassHandler struct {
	cmds commands.ClassCommands
	q    queries.ClassQueries
}

func NewClassHandler(cmds commands.ClassCommands, q queries.ClassQueries) *ClassHandler {
	return &ClassHandler{cmds: cmds, q: q}
}

// @Summary Submit a class
// @Description Instructors submit classes for approval; new classes start Pending
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateClassRequest true "Class"
// @Success 201 {object} resdto.ClassResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /classes [post]
func (h *ClassHandler) Create(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, httperr.CodeUnauthorized, nil, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request format")
		return
	}
	id, err := h.cmds.Create(c.Request.Context(), caller, req.ToInput())
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	h.respondClass(c, http.StatusCreated, id)
}

// @Summary Get class
// @Tags classes
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} resdto.ClassResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /classes/{id} [get]
func (h *ClassHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortBadRequest(c, err, "Invalid id")
		return
	}
	h.respondClass(c, http.StatusOK, id)
}

// @Summary List classes
// @Tags classes
// @Produce json
// @Param status query string false "Pending, Approved or Denied"
// @Param instructorEmail query string false "Instructor email"
// @Param limit query int false "Max items"
// @Success 200 {array} resdto.ClassResponse
// @Failure 400 {object} httperr.Response
// @Router /classes [get]
func (h *ClassHandler) List(c *gin.Context) {
	var q reqdto.ListClassesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortBadRequest(c, err, "Invalid query")
		return
	}
	views, err := h.q.List(c.Request.Context(), q.ToFilter())
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	res, err := resdto.FromClassViews(views)
	if err != nil {
		abortInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Approve class
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Success 200 {object} resdto.ClassResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /classes/{id}/approve [patch]
func (h *ClassHandler) Approve(c *gin.Context) {
	h.decide(c, h.cmds.Approve)
}

// @Summary Deny class
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Success 200 {object} resdto.ClassResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /classes/{id}/deny [patch]
func (h *ClassHandler) Deny(c *gin.Context) {
	h.decide(c, h.cmds.Deny)
}

type classDecision func(ctx context.Context, caller user.Caller, id uuid.UUID) error

func (h *ClassHandler) decide(c *gin.Context, decide classDecision) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, httperr.CodeUnauthorized, nil, "Unauthorized", nil)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortBadRequest(c, err, "Invalid id")
		return
	}
	if err := decide(c.Request.Context(), caller, id); err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	h.respondClass(c, http.StatusOK, id)
}

func (h *ClassHandler) respondClass(c *gin.Context, status int, id uuid.UUID) {
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	res, err := resdto.FromClassView(view)
	if err != nil {
		abortInternal(c, err)
		return
	}
	c.JSON(status, res)
}
