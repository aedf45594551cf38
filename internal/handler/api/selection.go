package api

import (
	"net/http"

	reqdto "course-enrollment/internal/handler/dto/request"
	resdto "course-enrollment/internal/handler/dto/response"
	"course-enrollment/internal/handler/httperr"
	"course-enrollment/internal/handler/middleware"
	"course-enrollment/internal/usecase/commands"
	"course-enrollment/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SelectionHandler struct {
	cmds commands.SelectionCommands
	q    queries.SelectionQueries
}

func NewSelectionHandler(cmds commands.SelectionCommands, q queries.SelectionQueries) *SelectionHandler {
	return &SelectionHandler{cmds: cmds, q: q}
}

// @Summary Select a class
// @Description Add an approved class to the student's selections
// @Tags selections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateSelectionRequest true "Selection"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /selections [post]
func (h *SelectionHandler) Create(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, httperr.CodeUnauthorized, nil, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request format")
		return
	}
	id, err := h.cmds.Create(c.Request.Context(), caller, req.ClassID)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary List selections
// @Tags selections
// @Produce json
// @Security BearerAuth
// @Param email query string false "Student email, defaults to the caller"
// @Success 200 {array} resdto.SelectionResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /selections [get]
func (h *SelectionHandler) List(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, httperr.CodeUnauthorized, nil, "Unauthorized", nil)
		return
	}
	email := c.Query("email")
	if email == "" {
		email = caller.Email
	}
	views, err := h.q.ListByStudent(c.Request.Context(), caller, email)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	res, err := resdto.FromSelectionViews(views)
	if err != nil {
		abortInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Remove a selection
// @Tags selections
// @Security BearerAuth
// @Param id path string true "Selection ID"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /selections/{id} [delete]
func (h *SelectionHandler) Remove(c *gin.Context) {
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
	if err := h.cmds.Remove(c.Request.Context(), caller, id); err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
