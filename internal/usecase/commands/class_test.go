//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"course-enrollment/internal/domain/class"
	"course-enrollment/internal/domain/user"
	"course-enrollment/internal/pkg/clock"
	"course-enrollment/internal/usecase/commands"
	"course-enrollment/tests/common/authtest"
	"course-enrollment/tests/common/fakestore"
	"course-enrollment/tests/common/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type ClassUseCaseTestSuite struct {
	suite.Suite
	ctx        context.Context
	store      *fakestore.Store
	clock      *clock.MockClock
	uc         commands.ClassCommands
	admin      user.Caller
	instructor user.Caller
}

func (s *ClassUseCaseTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = fakestore.New()
	s.clock = clock.NewMockClock(time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC))
	s.uc = commands.NewClassUseCase(s.store, s.clock, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.admin = authtest.Caller("root@example.com", user.RoleAdmin)
	s.instructor = authtest.Caller("dana@example.com", user.RoleInstructor)
}

func TestClassUseCaseSuite(t *testing.T) {
	suite.Run(t, new(ClassUseCaseTestSuite))
}

func validClassInput() commands.CreateClassInput {
	return commands.CreateClassInput{
		Name:           "Guitar101",
		InstructorName: "Dana Reyes",
		PriceCents:     4900,
		AvailableSeat:  1,
	}
}

func (s *ClassUseCaseTestSuite) TestCreate() {
	s.Run("instructor submits under own email", func() {
		in := validClassInput()
		in.InstructorEmail = "someone-else@example.com"

		id, err := s.uc.Create(s.ctx, s.instructor, in)
		s.Require().NoError(err)

		c, err := s.store.Classes().FindByID(s.ctx, id)
		s.Require().NoError(err)
		s.Equal("dana@example.com", c.InstructorEmail())
		s.Equal(class.StatusPending, c.Status())
		s.Equal(1, c.AvailableSeat())
	})

	s.Run("admin submits on behalf of an instructor", func() {
		in := validClassInput()
		in.InstructorEmail = "lee@example.com"

		id, err := s.uc.Create(s.ctx, s.admin, in)
		s.Require().NoError(err)
		c, err := s.store.Classes().FindByID(s.ctx, id)
		s.Require().NoError(err)
		s.Equal("lee@example.com", c.InstructorEmail())
	})

	s.Run("students cannot submit classes", func() {
		_, err := s.uc.Create(s.ctx, authtest.Caller("amy@example.com", user.RoleStudent), validClassInput())
		testutil.AssertIs(s.T(), err, commands.ErrForbidden)
	})

	s.Run("domain validation", func() {
		cases := map[string]func(*commands.CreateClassInput){
			"blank name":       func(in *commands.CreateClassInput) { in.Name = "  " },
			"negative seats":   func(in *commands.CreateClassInput) { in.AvailableSeat = -1 },
			"negative price":   func(in *commands.CreateClassInput) { in.PriceCents = -5 },
			"blank instructor": func(in *commands.CreateClassInput) { in.InstructorName = "" },
		}
		for name, mutate := range cases {
			s.Run(name, func() {
				in := validClassInput()
				mutate(&in)
				_, err := s.uc.Create(s.ctx, s.instructor, in)
				testutil.AssertIs(s.T(), err, commands.ErrDomainValidation)
			})
		}
	})
}

func (s *ClassUseCaseTestSuite) TestApproveAndDeny() {
	id, err := s.uc.Create(s.ctx, s.instructor, validClassInput())
	s.Require().NoError(err)

	s.Run("only admins decide", func() {
		err := s.uc.Approve(s.ctx, s.instructor, id)
		testutil.AssertIs(s.T(), err, commands.ErrForbidden)
	})

	s.Run("approve a pending class", func() {
		s.clock.Add(time.Hour)
		s.Require().NoError(s.uc.Approve(s.ctx, s.admin, id))

		c, err := s.store.Classes().FindByID(s.ctx, id)
		s.Require().NoError(err)
		s.Equal(class.StatusApproved, c.Status())
		s.Equal(s.clock.Now(), c.UpdatedAt())
	})

	s.Run("a decided class cannot be denied", func() {
		err := s.uc.Deny(s.ctx, s.admin, id)
		testutil.AssertIs(s.T(), err, commands.ErrConflict)
	})

	s.Run("unknown class", func() {
		err := s.uc.Deny(s.ctx, s.admin, uuid.New())
		testutil.AssertIs(s.T(), err, commands.ErrClassNotFound)
	})
}
