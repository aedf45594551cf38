//go:build e2e

package catalog

import (
	"net/http"
	"testing"

	"course-enrollment/internal/domain/user"
	resdto "course-enrollment/internal/handler/dto/response"
	"course-enrollment/internal/handler/httperr"
	"course-enrollment/tests/common/builder"
	"course-enrollment/tests/common/httptest"
	"course-enrollment/tests/e2e"

	"github.com/stretchr/testify/suite"
)

type CatalogTestSuite struct {
	e2e.SharedSuite
}

func TestCatalogSuite(t *testing.T) {
	suite.Run(t, new(CatalogTestSuite))
}

func (s *CatalogTestSuite) TestClassLifecycle() {
	s.Run("instructor creates, admin approves, student selects and removes", func() {
		instructor := s.Token("dana@example.com", user.RoleInstructor)
		admin := s.Token("root@example.com", user.RoleAdmin)
		student := s.Token("amy@example.com", user.RoleStudent)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/classes",
			builder.NewClassBuilder().BuildCreateRequestDTO(), instructor)
		var created resdto.ClassResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &created)
		s.Equal("Pending", created.Status)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/selections",
			map[string]any{"classId": created.ID}, student)
		httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, httperr.CodeConflict)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, "/api/classes/"+created.ID.String()+"/approve", nil, admin)
		var approved resdto.ClassResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &approved)
		s.Equal("Approved", approved.Status)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, "/api/classes/"+created.ID.String()+"/deny", nil, admin)
		httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, httperr.CodeConflict)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/selections",
			map[string]any{"classId": created.ID}, student)
		var sel resdto.CreatedResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &sel)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/selections", nil, student)
		var list []resdto.SelectionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &list)
		s.Require().Len(list, 1)
		s.Equal(created.ID, list[0].ClassID)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, "/api/selections/"+sel.ID.String(), nil, student)
		s.Equal(http.StatusNoContent, rec.Code)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, "/api/selections/"+sel.ID.String(), nil, student)
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, httperr.CodeNotFound)
	})

	s.Run("public listing filters by status", func() {
		instructor := s.Token("dana@example.com", user.RoleInstructor)
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/classes",
			builder.NewClassBuilder().BuildCreateRequestDTO(), instructor)
		s.Require().Equal(http.StatusCreated, rec.Code)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/classes?status=Approved", nil, "")
		var approved []resdto.ClassResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &approved)
		s.Empty(approved)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/classes?status=Pending", nil, "")
		var pending []resdto.ClassResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &pending)
		s.Len(pending, 1)
	})
}
