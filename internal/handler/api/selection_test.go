//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"course-enrollment/internal/domain/user"
	"course-enrollment/internal/handler/api"
	resdto "course-enrollment/internal/handler/dto/response"
	"course-enrollment/internal/handler/httperr"
	"course-enrollment/internal/handler/middleware"
	"course-enrollment/internal/pkg/errs"
	"course-enrollment/internal/usecase/commands"
	"course-enrollment/internal/usecase/queries"
	"course-enrollment/tests/common/httptest"
	commandsmock "course-enrollment/tests/mock/commands"
	queriesmock "course-enrollment/tests/mock/queries"
	usecasemock "course-enrollment/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SelectionHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockSelectionCommands
	mockQueries  *queriesmock.MockSelectionQueries
}

func (s *SelectionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockSelectionCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockSelectionQueries(s.mockCtrl)
	validator := usecasemock.NewMockTokenValidator(s.mockCtrl)
	stubTokens(validator)

	auth := middleware.NewAuthMiddleware(validator)
	h := api.NewSelectionHandler(s.mockCommands, s.mockQueries)
	g := s.router.Group("/selections", auth.RequireAuth())
	g.POST("", auth.RequireRole(user.RoleStudent, user.RoleAdmin), h.Create)
	g.GET("", h.List)
	g.DELETE("/:id", h.Remove)
}

func (s *SelectionHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSelectionHandlerSuite(t *testing.T) {
	suite.Run(t, new(SelectionHandlerTestSuite))
}

func (s *SelectionHandlerTestSuite) TestCreate() {
	classID := uuid.New()

	s.Run("success: 201 with the new id", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), classID).Return(id, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/selections",
			map[string]any{"classId": classID}, studentToken)

		var body resdto.CreatedResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(id, body.ID)
	})

	s.Run("error: 400 without classId", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/selections", map[string]any{}, studentToken)
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, httperr.CodeBadRequest)
	})

	s.Run("error: 409 when already selected", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), classID).
			Return(uuid.Nil, errs.Mark(errs.New("dup"), commands.ErrConflict)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/selections",
			map[string]any{"classId": classID}, studentToken)
		httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, httperr.CodeConflict)
	})

	s.Run("error: 403 for instructors", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/selections",
			map[string]any{"classId": classID}, instructorToken)
		httptest.AssertErrorCode(s.T(), rec, http.StatusForbidden, httperr.CodeForbidden)
	})
}

func (s *SelectionHandlerTestSuite) TestList() {
	views := []queries.SelectionView{{
		ID:           uuid.New(),
		StudentEmail: "amy@example.com",
		ClassID:      uuid.New(),
		ClassName:    "Guitar101",
		PriceCents:   4900,
		CreatedAt:    time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	}}

	s.Run("defaults to the caller's email", func() {
		s.mockQueries.EXPECT().ListByStudent(gomock.Any(), gomock.Any(), "amy@example.com").Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/selections", nil, studentToken)

		var body []resdto.SelectionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 1)
		s.Equal("Guitar101", body[0].ClassName)
	})

	s.Run("error: 403 for another student's list", func() {
		s.mockQueries.EXPECT().ListByStudent(gomock.Any(), gomock.Any(), "bob@example.com").
			Return(nil, errs.Mark(errs.New("not yours"), queries.ErrAccessDenied)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/selections?email=bob@example.com", nil, studentToken)
		httptest.AssertErrorCode(s.T(), rec, http.StatusForbidden, httperr.CodeForbidden)
	})

	s.Run("error: 401 without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/selections", nil, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusUnauthorized, httperr.CodeUnauthorized)
	})
}

func (s *SelectionHandlerTestSuite) TestRemove() {
	id := uuid.New()

	s.Run("success: 204", func() {
		s.mockCommands.EXPECT().Remove(gomock.Any(), gomock.Any(), id).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/selections/"+id.String(), nil, studentToken)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/selections/abc", nil, studentToken)
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, httperr.CodeBadRequest)
	})

	s.Run("error: 404 when gone", func() {
		s.mockCommands.EXPECT().Remove(gomock.Any(), gomock.Any(), id).
			Return(errs.Mark(errs.New("gone"), commands.ErrSelectionNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/selections/"+id.String(), nil, studentToken)
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, httperr.CodeNotFound)
	})
}
