//go:build unit

package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"course-enrollment/internal/domain/class"
	"course-enrollment/internal/domain/enrollment"
	"course-enrollment/internal/domain/payment"
	"course-enrollment/internal/domain/selection"
	"course-enrollment/internal/domain/settlement"
	"course-enrollment/internal/domain/user"
	"course-enrollment/internal/infra"
	"course-enrollment/internal/pkg/clock"
	"course-enrollment/internal/pkg/errs"
	"course-enrollment/internal/usecase/commands"
	"course-enrollment/internal/usecase/shared"
	"course-enrollment/tests/common/authtest"
	"course-enrollment/tests/common/builder"
	"course-enrollment/tests/common/fakestore"
	"course-enrollment/tests/common/testutil"
	sharedmock "course-enrollment/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const testLease = 30 * time.Second

type SettlementUseCaseTestSuite struct {
	suite.Suite
	ctx         context.Context
	ctrl        *gomock.Controller
	store       *fakestore.Store
	clock       *clock.MockClock
	publisher   *sharedmock.MockEventPublisher
	invalidator *sharedmock.MockReportInvalidator
	metrics     *sharedmock.MockSettlementMetrics
	uc          commands.SettlementCommands
}

func (s *SettlementUseCaseTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.store = fakestore.New()
	s.clock = clock.NewMockClock(time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC))
	s.publisher = sharedmock.NewMockEventPublisher(s.ctrl)
	s.invalidator = sharedmock.NewMockReportInvalidator(s.ctrl)
	s.metrics = sharedmock.NewMockSettlementMetrics(s.ctrl)
	s.metrics.EXPECT().ObserveSettlement(gomock.Any(), gomock.Any()).AnyTimes()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.uc = commands.NewSettlementUseCase(s.store, s.publisher, s.invalidator, s.metrics, s.clock, logger,
		commands.SettlementOptions{Lease: testLease})
}

func (s *SettlementUseCaseTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestSettlementUseCaseSuite(t *testing.T) {
	suite.Run(t, new(SettlementUseCaseTestSuite))
}

// ================================================================================
// fixtures
// ================================================================================

func (s *SettlementUseCaseTestSuite) addClass(seats int) *class.Class {
	c, err := builder.NewClassBuilder().With(func(b *builder.ClassBuilder) {
		b.AvailableSeat = seats
	}).BuildDomain()
	s.Require().NoError(err)
	s.Require().NoError(s.store.Classes().Create(s.ctx, c))
	return c
}

func (s *SettlementUseCaseTestSuite) addSelection(email string, c *class.Class) *selection.Selection {
	sel, err := selection.NewSelection(email, c, s.clock.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.store.Selections().Create(s.ctx, sel))
	return sel
}

func (s *SettlementUseCaseTestSuite) expectSettledSideEffects(times int) {
	s.publisher.EXPECT().PublishEnrollmentSettled(gomock.Any(), gomock.Any()).Return(nil).Times(times)
	s.invalidator.EXPECT().InvalidateEnrollmentReports(gomock.Any()).Return(nil).Times(times)
}

func input(sel *selection.Selection, txn string) commands.SettleInput {
	return commands.SettleInput{SelectionID: sel.ID, TransactionID: txn, AmountCents: sel.PriceCents}
}

func student(email string) user.Caller {
	return authtest.Caller(email, user.RoleStudent)
}

func transient() error {
	return infra.NewRepoErr(infra.KindUnavailable, "connection reset", nil)
}

// ================================================================================
// TestSettle
// ================================================================================

func (s *SettlementUseCaseTestSuite) TestSettle_Success() {
	c := s.addClass(3)
	sel := s.addSelection("amy@example.com", c)

	var published shared.EnrollmentSettledEvent
	s.publisher.EXPECT().PublishEnrollmentSettled(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, evt shared.EnrollmentSettledEvent) error {
			published = evt
			return nil
		}).Times(1)
	s.invalidator.EXPECT().InvalidateEnrollmentReports(gomock.Any()).Return(nil).Times(1)

	res, err := s.uc.Settle(s.ctx, student("amy@example.com"), input(sel, "pi_001"))
	s.Require().NoError(err)

	s.False(res.Replayed)
	s.NotEqual(uuid.Nil, res.PaymentID)
	s.NotEqual(uuid.Nil, res.EnrollmentID)
	s.Equal(2, s.store.AvailableSeat(c.ID()))
	s.False(s.store.HasSelection(sel.ID))
	s.Equal(1, s.store.PaymentCount())
	s.Equal(1, s.store.EnrollmentCount())

	e, err := s.store.Enrollments().FindByTransactionID(s.ctx, "pi_001")
	s.Require().NoError(err)
	s.Equal(res.EnrollmentID, e.ID)
	s.Equal(2, e.AvailableSeat, "enrollment snapshots the seats left after its own reservation")
	s.Equal(c.Name(), e.ClassName)

	rec, ok := s.store.Settlement("pi_001")
	s.Require().True(ok)
	s.Equal(settlement.StatusCompleted, rec.Status)
	s.Equal(settlement.StageEnrollmentRecorded, rec.Stage)

	s.Equal(shared.EventEnrollmentSettled, published.Type)
	s.Equal("amy@example.com", published.StudentEmail)
	s.Equal(sel.PriceCents, published.AmountCents)
}

func (s *SettlementUseCaseTestSuite) TestSettle_ReplayReturnsFirstResult() {
	c := s.addClass(3)
	sel := s.addSelection("amy@example.com", c)
	s.expectSettledSideEffects(1)

	first, err := s.uc.Settle(s.ctx, student("amy@example.com"), input(sel, "pi_001"))
	s.Require().NoError(err)

	second, err := s.uc.Settle(s.ctx, student("amy@example.com"), input(sel, "pi_001"))
	s.Require().NoError(err)

	s.True(second.Replayed)
	s.Equal(first.PaymentID, second.PaymentID)
	s.Equal(first.EnrollmentID, second.EnrollmentID)
	s.Equal(1, s.store.PaymentCount())
	s.Equal(2, s.store.AvailableSeat(c.ID()))
}

func (s *SettlementUseCaseTestSuite) TestSettle_Validation() {
	c := s.addClass(3)
	sel := s.addSelection("amy@example.com", c)

	cases := []struct {
		name   string
		caller user.Caller
		in     commands.SettleInput
		want   error
	}{
		{name: "empty transaction id", caller: student("amy@example.com"), in: input(sel, "  "), want: commands.ErrInvalidSettlement},
		{name: "missing selection", caller: student("amy@example.com"), in: commands.SettleInput{TransactionID: "pi_x", AmountCents: 10}, want: commands.ErrInvalidSettlement},
		{name: "zero amount", caller: student("amy@example.com"), in: commands.SettleInput{SelectionID: sel.ID, TransactionID: "pi_x"}, want: commands.ErrInvalidSettlement},
		{name: "instructor cannot settle", caller: authtest.Caller("dana@example.com", user.RoleInstructor), in: input(sel, "pi_x"), want: commands.ErrForbidden},
		{name: "another student's selection", caller: student("bob@example.com"), in: input(sel, "pi_x"), want: commands.ErrForbidden},
		{name: "unknown selection", caller: student("amy@example.com"), in: commands.SettleInput{SelectionID: uuid.New(), TransactionID: "pi_x", AmountCents: 10}, want: commands.ErrSelectionNotFound},
		{name: "amount differs from price", caller: student("amy@example.com"), in: commands.SettleInput{SelectionID: sel.ID, TransactionID: "pi_x", AmountCents: sel.PriceCents + 1}, want: commands.ErrAmountMismatch},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.uc.Settle(s.ctx, tc.caller, tc.in)
			testutil.AssertIs(s.T(), err, tc.want)
		})
	}

	s.Equal(3, s.store.AvailableSeat(c.ID()))
	s.True(s.store.HasSelection(sel.ID))
	s.Equal(0, s.store.PaymentCount())
}

func (s *SettlementUseCaseTestSuite) TestSettle_AdminMaySettleForStudent() {
	c := s.addClass(1)
	sel := s.addSelection("amy@example.com", c)
	s.expectSettledSideEffects(1)

	_, err := s.uc.Settle(s.ctx, authtest.Caller("root@example.com", user.RoleAdmin), input(sel, "pi_admin"))
	s.Require().NoError(err)

	e, err := s.store.Enrollments().FindByTransactionID(s.ctx, "pi_admin")
	s.Require().NoError(err)
	s.Equal("amy@example.com", e.StudentEmail)
}

func (s *SettlementUseCaseTestSuite) TestSettle_SeatUnavailable() {
	c := s.addClass(0)
	sel := s.addSelection("amy@example.com", c)

	_, err := s.uc.Settle(s.ctx, student("amy@example.com"), input(sel, "pi_full"))
	testutil.AssertIs(s.T(), err, commands.ErrSeatUnavailable)

	s.Equal(0, s.store.AvailableSeat(c.ID()))
	s.True(s.store.HasSelection(sel.ID), "the selection stays for a later attempt")
	s.Equal(0, s.store.PaymentCount())
	s.Equal(0, s.store.EnrollmentCount())

	rec, ok := s.store.Settlement("pi_full")
	s.Require().True(ok)
	s.Equal(settlement.StatusReleased, rec.Status)
}

func (s *SettlementUseCaseTestSuite) TestSettle_TransactionIDBoundToOneSelection() {
	c := s.addClass(5)
	first := s.addSelection("amy@example.com", c)
	other, err := builder.NewClassBuilder().With(func(b *builder.ClassBuilder) { b.Name = "Watercolor" }).BuildDomain()
	s.Require().NoError(err)
	s.Require().NoError(s.store.Classes().Create(s.ctx, other))
	second := s.addSelection("amy@example.com", other)
	s.expectSettledSideEffects(1)

	_, err = s.uc.Settle(s.ctx, student("amy@example.com"), input(first, "pi_shared"))
	s.Require().NoError(err)

	_, err = s.uc.Settle(s.ctx, student("amy@example.com"), input(second, "pi_shared"))
	testutil.AssertIs(s.T(), err, commands.ErrTransactionConflict)
	s.True(s.store.HasSelection(second.ID))
}

func (s *SettlementUseCaseTestSuite) TestSettle_SelectionAlreadySettled() {
	c := s.addClass(5)
	sel := s.addSelection("amy@example.com", c)
	s.expectSettledSideEffects(1)

	_, err := s.uc.Settle(s.ctx, student("amy@example.com"), input(sel, "pi_first"))
	s.Require().NoError(err)

	_, err = s.uc.Settle(s.ctx, student("amy@example.com"), input(sel, "pi_second"))
	testutil.AssertIs(s.T(), err, commands.ErrSelectionNotFound)
	s.Equal(1, s.store.PaymentCount())
	s.Equal(4, s.store.AvailableSeat(c.ID()))
}

func (s *SettlementUseCaseTestSuite) TestSettle_SelectionBusyWithAnotherTransaction() {
	c := s.addClass(5)
	sel := s.addSelection("amy@example.com", c)

	now := s.clock.Now()
	running := settlement.New("pi_running", settlement.Snapshot{
		SelectionID:   sel.ID,
		StudentEmail:  sel.StudentEmail,
		ClassSnapshot: enrollment.ClassSnapshot{ClassID: c.ID(), ClassName: c.Name(), PriceCents: sel.PriceCents},
	}, sel.PriceCents, now, testLease)
	s.store.PutSettlement(*running)

	_, err := s.uc.Settle(s.ctx, student("amy@example.com"), input(sel, "pi_other"))
	testutil.AssertIs(s.T(), err, commands.ErrSelectionBusy)
	s.Equal(5, s.store.AvailableSeat(c.ID()))
}

func (s *SettlementUseCaseTestSuite) TestSettle_InProgressWhileLeaseActive() {
	c := s.addClass(5)
	sel := s.addSelection("amy@example.com", c)

	running := settlement.New("pi_busy", settlement.Snapshot{
		SelectionID:   sel.ID,
		StudentEmail:  sel.StudentEmail,
		ClassSnapshot: enrollment.ClassSnapshot{ClassID: c.ID(), ClassName: c.Name(), PriceCents: sel.PriceCents},
	}, sel.PriceCents, s.clock.Now(), testLease)
	s.store.PutSettlement(*running)

	_, err := s.uc.Settle(s.ctx, student("amy@example.com"), input(sel, "pi_busy"))
	testutil.AssertIs(s.T(), err, commands.ErrSettlementInProgress)
}

func (s *SettlementUseCaseTestSuite) TestSettle_PublishFailureDoesNotFailSettlement() {
	c := s.addClass(2)
	sel := s.addSelection("amy@example.com", c)
	s.publisher.EXPECT().PublishEnrollmentSettled(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))
	s.invalidator.EXPECT().InvalidateEnrollmentReports(gomock.Any()).Return(errors.New("cache down"))

	res, err := s.uc.Settle(s.ctx, student("amy@example.com"), input(sel, "pi_quiet"))
	s.Require().NoError(err)
	s.False(res.Replayed)
	s.Equal(1, s.store.EnrollmentCount())
}

// ================================================================================
// failure policy
// ================================================================================

func (s *SettlementUseCaseTestSuite) TestSettle_CompensatesBeforeSelectionRemoved() {
	c := s.addClass(2)
	sel := s.addSelection("amy@example.com", c)
	s.store.FailNext(fakestore.OpSelectionDelete, transient())
	s.metrics.EXPECT().IncStepFailure("remove_selection", "compensate").Times(1)

	_, err := s.uc.Settle(s.ctx, student("amy@example.com"), input(sel, "pi_retry"))
	testutil.AssertIs(s.T(), err, commands.ErrStoreUnavailable)

	s.Equal(2, s.store.AvailableSeat(c.ID()), "the seat hold is given back")
	s.True(s.store.HasSelection(sel.ID))
	rec, ok := s.store.Settlement("pi_retry")
	s.Require().True(ok)
	s.Equal(settlement.StatusReleased, rec.Status)

	s.Run("retry with the same transaction id succeeds", func() {
		s.expectSettledSideEffects(1)
		res, err := s.uc.Settle(s.ctx, student("amy@example.com"), input(sel, "pi_retry"))
		s.Require().NoError(err)
		s.False(res.Replayed)
		s.Equal(1, s.store.AvailableSeat(c.ID()))
		s.Equal(1, s.store.PaymentCount())

		rec, _ := s.store.Settlement("pi_retry")
		s.Equal(2, rec.Attempts)
	})
}

func (s *SettlementUseCaseTestSuite) TestSettle_StaleAttemptDoesNotUndoTakeover() {
	c := s.addClass(5)
	sel := s.addSelection("amy@example.com", c)
	s.expectSettledSideEffects(1)
	s.metrics.EXPECT().IncStepFailure("remove_selection", "compensate").Times(1)

	// the first attempt stalls past its lease right before removing the
	// selection; a retry takes the record over and finishes, then the stalled
	// call fails
	var takeover *commands.SettlementResult
	s.store.BeforeNext(fakestore.OpSelectionDelete, func() {
		s.clock.Add(testLease + time.Second)
		res, err := s.uc.Settle(s.ctx, student("amy@example.com"), input(sel, "pi_stale"))
		s.Require().NoError(err)
		takeover = res
		s.store.FailNext(fakestore.OpSelectionDelete, transient())
	})

	_, err := s.uc.Settle(s.ctx, student("amy@example.com"), input(sel, "pi_stale"))
	testutil.AssertIs(s.T(), err, commands.ErrStoreUnavailable)
	s.Require().NotNil(takeover)
	s.False(takeover.Replayed)

	s.Equal(4, s.store.AvailableSeat(c.ID()), "the settled enrollment keeps its seat")
	s.Equal(1, s.store.PaymentCount())
	s.Equal(1, s.store.EnrollmentCount())
	rec, ok := s.store.Settlement("pi_stale")
	s.Require().True(ok)
	s.Equal(settlement.StatusCompleted, rec.Status)
	s.Equal(2, rec.Attempts)

	s.Run("retry replays the settled result", func() {
		res, err := s.uc.Settle(s.ctx, student("amy@example.com"), input(sel, "pi_stale"))
		s.Require().NoError(err)
		s.True(res.Replayed)
		s.Equal(takeover.EnrollmentID, res.EnrollmentID)
		s.Equal(4, s.store.AvailableSeat(c.ID()))
	})
}

func (s *SettlementUseCaseTestSuite) TestSettle_StaleAttemptCannotReleaseActiveTakeover() {
	c := s.addClass(5)
	sel := s.addSelection("amy@example.com", c)
	s.metrics.EXPECT().IncStepFailure("remove_selection", "compensate").Times(1)

	// a later attempt holds the record when the stalled one compensates
	s.store.BeforeNext(fakestore.OpSelectionDelete, func() {
		rec, ok := s.store.Settlement("pi_held")
		s.Require().True(ok)
		rec.Attempts++
		rec.LeaseExpiresAt = s.clock.Now().Add(testLease)
		s.store.PutSettlement(rec)
		s.store.FailNext(fakestore.OpSelectionDelete, transient())
	})

	_, err := s.uc.Settle(s.ctx, student("amy@example.com"), input(sel, "pi_held"))
	testutil.AssertIs(s.T(), err, commands.ErrStoreUnavailable)

	rec, ok := s.store.Settlement("pi_held")
	s.Require().True(ok)
	s.Equal(settlement.StatusProcessing, rec.Status, "the later attempt keeps the record")
	s.Equal(settlement.StageSeatReserved, rec.Stage)
	s.True(rec.LeaseActive(s.clock.Now()), "its lease is not expired by the stale attempt")
	s.Equal(4, s.store.AvailableSeat(c.ID()), "the seat hold stays with the record")
	s.True(s.store.HasSelection(sel.ID))
}

func (s *SettlementUseCaseTestSuite) TestSettle_CompensatesWhenSeatReservationFails() {
	c := s.addClass(2)
	sel := s.addSelection("amy@example.com", c)
	s.store.FailNext(fakestore.OpSeatReserve, transient())
	s.metrics.EXPECT().IncStepFailure("reserve_seat", "compensate").Times(1)

	_, err := s.uc.Settle(s.ctx, student("amy@example.com"), input(sel, "pi_seat"))
	testutil.AssertIs(s.T(), err, commands.ErrStoreUnavailable)
	s.Equal(2, s.store.AvailableSeat(c.ID()))
	s.True(s.store.HasSelection(sel.ID))
}

func (s *SettlementUseCaseTestSuite) TestSettle_RollsForwardAfterSelectionRemoved() {
	c := s.addClass(2)
	sel := s.addSelection("amy@example.com", c)
	s.store.FailNext(fakestore.OpPaymentAppend, transient())
	s.metrics.EXPECT().IncStepFailure("record_payment", "roll_forward").Times(1)

	_, err := s.uc.Settle(s.ctx, student("amy@example.com"), input(sel, "pi_fwd"))
	testutil.AssertIs(s.T(), err, commands.ErrStoreUnavailable)

	s.False(s.store.HasSelection(sel.ID), "the selection is not restored once removed")
	s.Equal(1, s.store.AvailableSeat(c.ID()), "the seat stays held")
	rec, ok := s.store.Settlement("pi_fwd")
	s.Require().True(ok)
	s.Equal(settlement.StatusProcessing, rec.Status)
	s.Equal(settlement.StageSelectionRemoved, rec.Stage)
	s.False(rec.LeaseActive(s.clock.Now()), "the lease is expired so a retry can resume at once")

	s.Run("retry resumes from the recorded stage", func() {
		s.expectSettledSideEffects(1)
		res, err := s.uc.Settle(s.ctx, student("amy@example.com"), input(sel, "pi_fwd"))
		s.Require().NoError(err)
		s.False(res.Replayed)
		s.Equal(1, s.store.AvailableSeat(c.ID()))
		s.Equal(1, s.store.PaymentCount())
		s.Equal(1, s.store.EnrollmentCount())
	})
}

func (s *SettlementUseCaseTestSuite) TestSettle_ResumeReusesRecordedPayment() {
	c := s.addClass(2)
	sel := s.addSelection("amy@example.com", c)
	now := s.clock.Now()
	txn := payment.TransactionID("pi_crash")

	// an attempt that died after writing the payment
	_, err := s.store.Seats().ReserveSeat(s.ctx, c.ID(), txn)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Selections().Delete(s.ctx, sel.ID))
	rec := settlement.New(txn, settlement.Snapshot{
		SelectionID:  sel.ID,
		StudentEmail: sel.StudentEmail,
		ClassSnapshot: enrollment.ClassSnapshot{
			ClassID: c.ID(), ClassName: c.Name(), InstructorName: c.InstructorName(),
			InstructorEmail: c.InstructorEmail(), PriceCents: sel.PriceCents,
		},
	}, sel.PriceCents, now.Add(-time.Minute), testLease)
	s.Require().NoError(rec.RecordSeat(1, now))
	s.Require().NoError(rec.Advance(settlement.StageSelectionRemoved, now))
	p, err := rec.NewPayment(now)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Payments().Append(s.ctx, p))
	s.Require().NoError(rec.RecordPayment(p.ID, now))
	s.store.PutSettlement(*rec)

	s.expectSettledSideEffects(1)
	res, err := s.uc.Settle(s.ctx, student("amy@example.com"), input(sel, "pi_crash"))
	s.Require().NoError(err)

	s.Equal(p.ID, res.PaymentID)
	s.Equal(1, s.store.PaymentCount())
	s.Equal(1, s.store.EnrollmentCount())
	s.Equal(1, s.store.AvailableSeat(c.ID()))
}

func (s *SettlementUseCaseTestSuite) TestSettle_ResumesAfterEnrollmentFailure() {
	c := s.addClass(2)
	sel := s.addSelection("amy@example.com", c)
	s.store.FailNext(fakestore.OpEnrollmentAppend, transient())
	s.metrics.EXPECT().IncStepFailure("record_enrollment", "roll_forward").Times(1)

	_, err := s.uc.Settle(s.ctx, student("amy@example.com"), input(sel, "pi_enr"))
	testutil.AssertIs(s.T(), err, commands.ErrStoreUnavailable)
	first, err := s.store.Payments().FindByTransactionID(s.ctx, "pi_enr")
	s.Require().NoError(err)

	s.expectSettledSideEffects(1)
	res, err := s.uc.Settle(s.ctx, student("amy@example.com"), input(sel, "pi_enr"))
	s.Require().NoError(err)
	s.Equal(first.ID, res.PaymentID)
	s.Equal(1, s.store.PaymentCount())
	s.Equal(1, s.store.EnrollmentCount())
}

// The payment insert landed but the attempt died before recording it.
func (s *SettlementUseCaseTestSuite) TestSettle_DuplicatePaymentInsertIsReused() {
	c := s.addClass(2)
	sel := s.addSelection("amy@example.com", c)
	now := s.clock.Now()
	txn := payment.TransactionID("pi_dup")

	_, err := s.store.Seats().ReserveSeat(s.ctx, c.ID(), txn)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Selections().Delete(s.ctx, sel.ID))
	rec := settlement.New(txn, settlement.Snapshot{
		SelectionID:   sel.ID,
		StudentEmail:  sel.StudentEmail,
		ClassSnapshot: enrollment.ClassSnapshot{ClassID: c.ID(), ClassName: c.Name(), PriceCents: sel.PriceCents},
	}, sel.PriceCents, now.Add(-time.Minute), testLease)
	s.Require().NoError(rec.RecordSeat(1, now))
	s.Require().NoError(rec.Advance(settlement.StageSelectionRemoved, now))
	orphan, err := rec.NewPayment(now)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Payments().Append(s.ctx, orphan))
	s.store.PutSettlement(*rec)

	s.expectSettledSideEffects(1)
	res, err := s.uc.Settle(s.ctx, student("amy@example.com"), input(sel, "pi_dup"))
	s.Require().NoError(err)
	s.Equal(orphan.ID, res.PaymentID)
	s.Equal(1, s.store.PaymentCount())
	s.Equal(1, s.store.EnrollmentCount())
}

// ================================================================================
// concurrency
// ================================================================================

// Two students race for the last seat of Guitar101.
func (s *SettlementUseCaseTestSuite) TestSettle_LastSeatGoesToExactlyOneStudent() {
	c := s.addClass(1)
	amy := s.addSelection("amy@example.com", c)
	bob := s.addSelection("bob@example.com", c)
	s.expectSettledSideEffects(1)

	type outcome struct {
		sel *selection.Selection
		err error
	}
	results := make(chan outcome, 2)
	var wg sync.WaitGroup
	for _, sel := range []*selection.Selection{amy, bob} {
		wg.Add(1)
		go func(sel *selection.Selection) {
			defer wg.Done()
			_, err := s.uc.Settle(s.ctx, student(sel.StudentEmail), input(sel, "pi_"+sel.StudentEmail))
			results <- outcome{sel: sel, err: err}
		}(sel)
	}
	wg.Wait()
	close(results)

	var winners, losers []*selection.Selection
	for r := range results {
		switch {
		case r.err == nil:
			winners = append(winners, r.sel)
		case errs.Is(r.err, commands.ErrSeatUnavailable):
			losers = append(losers, r.sel)
		default:
			s.Failf("unexpected error", "%v", r.err)
		}
	}
	s.Require().Len(winners, 1)
	s.Require().Len(losers, 1)
	s.Equal(0, s.store.AvailableSeat(c.ID()))
	s.Equal(1, s.store.EnrollmentCount())
	s.False(s.store.HasSelection(winners[0].ID))
	s.True(s.store.HasSelection(losers[0].ID))
}

func (s *SettlementUseCaseTestSuite) TestSettle_ConcurrentRetriesSettleOnce() {
	c := s.addClass(5)
	sel := s.addSelection("amy@example.com", c)
	s.expectSettledSideEffects(1)

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		fresh     int
		replayed  int
		inFlight  int
		ids       = map[uuid.UUID]bool{}
		otherErrs []error
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := s.uc.Settle(s.ctx, student("amy@example.com"), input(sel, "pi_same"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil && res.Replayed:
				replayed++
				ids[res.EnrollmentID] = true
			case err == nil:
				fresh++
				ids[res.EnrollmentID] = true
			case errs.Is(err, commands.ErrSettlementInProgress):
				inFlight++
			default:
				otherErrs = append(otherErrs, err)
			}
		}()
	}
	wg.Wait()

	s.Empty(otherErrs)
	s.Equal(1, fresh)
	s.Equal(attempts, fresh+replayed+inFlight)
	s.Len(ids, 1, "every successful call reports the same enrollment")
	s.Equal(4, s.store.AvailableSeat(c.ID()))
	s.Equal(1, s.store.PaymentCount())
	s.Equal(1, s.store.EnrollmentCount())
}

// ================================================================================
// TestReconcile
// ================================================================================

func (s *SettlementUseCaseTestSuite) TestReconcile_FinishesRolledForwardSettlements() {
	c := s.addClass(2)
	sel := s.addSelection("amy@example.com", c)
	s.store.FailNext(fakestore.OpPaymentAppend, transient())
	s.metrics.EXPECT().IncStepFailure("record_payment", "roll_forward").Times(1)

	_, err := s.uc.Settle(s.ctx, student("amy@example.com"), input(sel, "pi_stale"))
	s.Require().True(errs.Is(err, commands.ErrStoreUnavailable), "got %v", err)

	s.expectSettledSideEffects(1)
	s.metrics.EXPECT().IncReconciled(shared.OutcomeResumed).Times(1)

	report, err := s.uc.Reconcile(s.ctx, 10)
	s.Require().NoError(err)
	s.Equal(commands.ReconcileReport{Scanned: 1, Completed: 1}, report)
	s.Equal(1, s.store.EnrollmentCount())

	rec, _ := s.store.Settlement("pi_stale")
	s.Equal(settlement.StatusCompleted, rec.Status)

	s.Run("a later retry replays", func() {
		res, err := s.uc.Settle(s.ctx, student("amy@example.com"), input(sel, "pi_stale"))
		s.Require().NoError(err)
		s.True(res.Replayed)
	})
}

func (s *SettlementUseCaseTestSuite) TestReconcile_ReleasesWhenSeatIsGone() {
	c := s.addClass(0)
	sel := s.addSelection("amy@example.com", c)

	// claimed but never reserved a seat before the lease ran out
	rec := settlement.New("pi_orphan", settlement.Snapshot{
		SelectionID:   sel.ID,
		StudentEmail:  sel.StudentEmail,
		ClassSnapshot: enrollment.ClassSnapshot{ClassID: c.ID(), ClassName: c.Name(), PriceCents: sel.PriceCents},
	}, sel.PriceCents, s.clock.Now().Add(-time.Hour), testLease)
	s.store.PutSettlement(*rec)
	s.metrics.EXPECT().IncReconciled(shared.OutcomeSeatUnavailable).Times(1)

	report, err := s.uc.Reconcile(s.ctx, 10)
	s.Require().NoError(err)
	s.Equal(commands.ReconcileReport{Scanned: 1, Released: 1}, report)

	got, _ := s.store.Settlement("pi_orphan")
	s.Equal(settlement.StatusReleased, got.Status)
	s.True(s.store.HasSelection(sel.ID))
}

func (s *SettlementUseCaseTestSuite) TestReconcile_SkipsActiveLeases() {
	c := s.addClass(2)
	sel := s.addSelection("amy@example.com", c)
	rec := settlement.New("pi_live", settlement.Snapshot{
		SelectionID:   sel.ID,
		StudentEmail:  sel.StudentEmail,
		ClassSnapshot: enrollment.ClassSnapshot{ClassID: c.ID(), PriceCents: sel.PriceCents},
	}, sel.PriceCents, s.clock.Now(), testLease)
	s.store.PutSettlement(*rec)

	report, err := s.uc.Reconcile(s.ctx, 10)
	s.Require().NoError(err)
	s.Equal(0, report.Scanned)
}
