//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"course-enrollment/internal/domain/class"
	"course-enrollment/internal/domain/enrollment"
	"course-enrollment/internal/domain/user"
	"course-enrollment/internal/pkg/clock"
	"course-enrollment/internal/usecase/commands"
	"course-enrollment/tests/common/authtest"
	"course-enrollment/tests/common/builder"
	"course-enrollment/tests/common/fakestore"
	"course-enrollment/tests/common/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type SelectionUseCaseTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *fakestore.Store
	uc    commands.SelectionCommands
	amy   user.Caller
}

func (s *SelectionUseCaseTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = fakestore.New()
	clk := clock.NewMockClock(time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC))
	s.uc = commands.NewSelectionUseCase(s.store, clk, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.amy = authtest.Caller("amy@example.com", user.RoleStudent)
}

func TestSelectionUseCaseSuite(t *testing.T) {
	suite.Run(t, new(SelectionUseCaseTestSuite))
}

func (s *SelectionUseCaseTestSuite) addClass(approved bool) *class.Class {
	c, err := builder.NewClassBuilder().With(func(b *builder.ClassBuilder) {
		b.Approved = approved
	}).BuildDomain()
	s.Require().NoError(err)
	s.Require().NoError(s.store.Classes().Create(s.ctx, c))
	return c
}

func (s *SelectionUseCaseTestSuite) TestCreate() {
	open := s.addClass(true)

	s.Run("selects an approved class at its current price", func() {
		id, err := s.uc.Create(s.ctx, s.amy, open.ID())
		s.Require().NoError(err)

		sel, err := s.store.Selections().FindByID(s.ctx, id)
		s.Require().NoError(err)
		s.Equal("amy@example.com", sel.StudentEmail)
		s.Equal(open.PriceCents(), sel.PriceCents)
		s.Equal(open.Name(), sel.ClassName)
	})

	s.Run("second selection of the same class conflicts", func() {
		_, err := s.uc.Create(s.ctx, s.amy, open.ID())
		testutil.AssertIs(s.T(), err, commands.ErrConflict)
	})

	s.Run("pending class is not open", func() {
		pending := s.addClass(false)
		_, err := s.uc.Create(s.ctx, s.amy, pending.ID())
		testutil.AssertIs(s.T(), err, commands.ErrConflict)
	})

	s.Run("already enrolled", func() {
		c := s.addClass(true)
		e := enrollment.NewEnrollment("pi_old", "amy@example.com", enrollment.ClassSnapshot{ClassID: c.ID()}, time.Now())
		s.Require().NoError(s.store.Enrollments().Append(s.ctx, e))

		_, err := s.uc.Create(s.ctx, s.amy, c.ID())
		testutil.AssertIs(s.T(), err, commands.ErrConflict)
	})

	s.Run("unknown class", func() {
		_, err := s.uc.Create(s.ctx, s.amy, uuid.New())
		testutil.AssertIs(s.T(), err, commands.ErrClassNotFound)
	})

	s.Run("only students select", func() {
		_, err := s.uc.Create(s.ctx, authtest.Caller("dana@example.com", user.RoleInstructor), open.ID())
		testutil.AssertIs(s.T(), err, commands.ErrForbidden)
	})
}

func (s *SelectionUseCaseTestSuite) TestRemove() {
	c := s.addClass(true)
	id, err := s.uc.Create(s.ctx, s.amy, c.ID())
	s.Require().NoError(err)

	s.Run("other students cannot remove it", func() {
		err := s.uc.Remove(s.ctx, authtest.Caller("bob@example.com", user.RoleStudent), id)
		testutil.AssertIs(s.T(), err, commands.ErrForbidden)
		s.True(s.store.HasSelection(id))
	})

	s.Run("owner removes it", func() {
		s.Require().NoError(s.uc.Remove(s.ctx, s.amy, id))
		s.False(s.store.HasSelection(id))
	})

	s.Run("removing twice reports not found", func() {
		err := s.uc.Remove(s.ctx, s.amy, id)
		testutil.AssertIs(s.T(), err, commands.ErrSelectionNotFound)
	})

	s.Run("admin may remove any selection", func() {
		other, err := s.uc.Create(s.ctx, authtest.Caller("bob@example.com", user.RoleStudent), c.ID())
		s.Require().NoError(err)
		s.Require().NoError(s.uc.Remove(s.ctx, authtest.Caller("root@example.com", user.RoleAdmin), other))
	})
}
