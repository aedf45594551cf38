//go:build unit

package api_test

import (
	"fmt"
	"net/http"
	"testing"

	"course-enrollment/internal/domain/user"
	"course-enrollment/internal/handler/api"
	resdto "course-enrollment/internal/handler/dto/response"
	"course-enrollment/internal/handler/httperr"
	"course-enrollment/internal/handler/middleware"
	"course-enrollment/internal/pkg/errs"
	"course-enrollment/internal/usecase/commands"
	"course-enrollment/internal/usecase/queries"
	"course-enrollment/tests/common/builder"
	"course-enrollment/tests/common/httptest"
	"course-enrollment/tests/common/testutil"
	commandsmock "course-enrollment/tests/mock/commands"
	queriesmock "course-enrollment/tests/mock/queries"
	usecasemock "course-enrollment/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ClassHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockClassCommands
	mockQueries  *queriesmock.MockClassQueries
}

func (s *ClassHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockClassCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockClassQueries(s.mockCtrl)
	validator := usecasemock.NewMockTokenValidator(s.mockCtrl)
	stubTokens(validator)

	auth := middleware.NewAuthMiddleware(validator)
	h := api.NewClassHandler(s.mockCommands, s.mockQueries)
	s.router.GET("/classes", h.List)
	s.router.GET("/classes/:id", h.Get)
	s.router.POST("/classes", auth.RequireAuth(), auth.RequireRole(user.RoleInstructor, user.RoleAdmin), h.Create)
	s.router.PATCH("/classes/:id/approve", auth.RequireAuth(), auth.RequireRole(user.RoleAdmin), h.Approve)
	s.router.PATCH("/classes/:id/deny", auth.RequireAuth(), auth.RequireRole(user.RoleAdmin), h.Deny)
}

func (s *ClassHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestClassHandlerSuite(t *testing.T) {
	suite.Run(t, new(ClassHandlerTestSuite))
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *ClassHandlerTestSuite) TestCreate() {
	b := builder.NewClassBuilder().With(func(b *builder.ClassBuilder) { b.Approved = false })
	reqBody := b.BuildCreateRequestDTO()
	view := b.BuildView()

	s.Run("success: 201 with the pending class", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), reqBody.ToInput()).Return(view.ID, nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(&view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/classes", reqBody, instructorToken)

		var body resdto.ClassResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(view.ID, body.ID)
		s.Equal("Pending", body.Status)
		s.Equal(b.PriceCents, body.PriceCents)
	})

	s.Run("error: 400 on binding errors", func() {
		cases := []struct {
			name   string
			mutate func(map[string]any)
		}{
			{"missing name", testutil.Field("name", nil)},
			{"missing instructor name", testutil.Field("instructorName", nil)},
			{"malformed instructor email", testutil.Field("instructorEmail", "nope")},
			{"negative price", testutil.Field("priceCents", -1)},
			{"negative seats", testutil.Field("availableSeat", -3)},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/classes",
					testutil.DtoMap(s.T(), reqBody, tc.mutate), instructorToken)
				httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, httperr.CodeBadRequest)
			})
		}
	})

	s.Run("error: 422 on domain validation", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(uuid.Nil, errs.Mark(errs.New("bad"), commands.ErrDomainValidation)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/classes", reqBody, instructorToken)
		httptest.AssertErrorCode(s.T(), rec, http.StatusUnprocessableEntity, httperr.CodeValidation)
	})

	s.Run("error: 403 for students", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/classes", reqBody, studentToken)
		httptest.AssertErrorCode(s.T(), rec, http.StatusForbidden, httperr.CodeForbidden)
	})
}

// ================================================================================
// TestGet / TestList
// ================================================================================

func (s *ClassHandlerTestSuite) TestGet() {
	view := builder.NewClassBuilder().BuildView()

	s.Run("success", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(&view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/classes/"+view.ID.String(), nil, "")

		var body resdto.ClassResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.Name, body.Name)
		s.Equal(view.InstructorEmail, body.InstructorEmail)
		s.Equal(view.AvailableSeat, body.AvailableSeat)
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/classes/xyz", nil, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, httperr.CodeBadRequest)
	})

	s.Run("error: 404 when missing", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errs.New("none"), queries.ErrNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/classes/"+uuid.NewString(), nil, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, httperr.CodeNotFound)
	})
}

func (s *ClassHandlerTestSuite) TestList() {
	s.Run("success: query params become the filter", func() {
		views := []queries.ClassView{builder.NewClassBuilder().BuildView()}
		s.mockQueries.EXPECT().List(gomock.Any(), queries.ClassFilter{
			Status:          "Approved",
			InstructorEmail: "dana@example.com",
			Limit:           5,
		}).Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/classes?status=Approved&instructorEmail=dana@example.com&limit=5", nil, "")

		var body []resdto.ClassResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 1)
	})

	s.Run("success: empty list encodes as []", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/classes", nil, "")
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`[]`, rec.Body.String())
	})

	for _, q := range []string{"status=Open", "limit=-1", "instructorEmail=nope"} {
		s.Run(fmt.Sprintf("error: 400 for %s", q), func() {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/classes?"+q, nil, "")
			httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, httperr.CodeBadRequest)
		})
	}
}

// ================================================================================
// TestApprove / TestDeny
// ================================================================================

func (s *ClassHandlerTestSuite) TestApprove() {
	view := builder.NewClassBuilder().BuildView()
	url := "/classes/" + view.ID.String() + "/approve"

	s.Run("success", func() {
		s.mockCommands.EXPECT().Approve(gomock.Any(), gomock.Any(), view.ID).Return(nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(&view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, nil, adminToken)

		var body resdto.ClassResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("Approved", body.Status)
	})

	s.Run("error: 409 when already decided", func() {
		s.mockCommands.EXPECT().Approve(gomock.Any(), gomock.Any(), view.ID).
			Return(errs.Mark(errs.New("decided"), commands.ErrConflict)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, nil, adminToken)
		httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, httperr.CodeConflict)
	})

	s.Run("error: 403 for instructors", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, nil, instructorToken)
		httptest.AssertErrorCode(s.T(), rec, http.StatusForbidden, httperr.CodeForbidden)
	})
}

func (s *ClassHandlerTestSuite) TestDeny() {
	view := builder.NewClassBuilder().BuildView()
	view.Status = "Denied"
	url := "/classes/" + view.ID.String() + "/deny"

	s.Run("success", func() {
		s.mockCommands.EXPECT().Deny(gomock.Any(), gomock.Any(), view.ID).Return(nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(&view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, nil, adminToken)

		var body resdto.ClassResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("Denied", body.Status)
	})

	s.Run("error: 404 for unknown class", func() {
		s.mockCommands.EXPECT().Deny(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errs.Mark(errs.New("none"), commands.ErrClassNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/classes/"+uuid.NewString()+"/deny", nil, adminToken)
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, httperr.CodeNotFound)
	})
}
