//go:build e2e

// Package storetest holds the behaviour every shared.Store backend must
// share. Backend packages call Run with a factory for an empty store.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"course-enrollment/internal/domain/class"
	"course-enrollment/internal/domain/enrollment"
	"course-enrollment/internal/domain/payment"
	"course-enrollment/internal/domain/selection"
	"course-enrollment/internal/domain/settlement"
	"course-enrollment/internal/infra"
	"course-enrollment/internal/pkg/errs"
	"course-enrollment/internal/usecase/shared"
	"course-enrollment/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// both backends keep at least millisecond precision
var now = time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

func Run(t *testing.T, newStore func(t *testing.T) shared.Store) {
	t.Run("classes", func(t *testing.T) { testClasses(t, newStore(t)) })
	t.Run("selections", func(t *testing.T) { testSelections(t, newStore(t)) })
	t.Run("payments", func(t *testing.T) { testPayments(t, newStore(t)) })
	t.Run("enrollments", func(t *testing.T) { testEnrollments(t, newStore(t)) })
	t.Run("seat ledger", func(t *testing.T) { testSeatLedger(t, newStore(t)) })
	t.Run("seat ledger under contention", func(t *testing.T) { testSeatContention(t, newStore(t)) })
	t.Run("settlements", func(t *testing.T) { testSettlements(t, newStore(t)) })
}

func createClass(t *testing.T, store shared.Store, seats int) *class.Class {
	t.Helper()
	c, err := builder.NewClassBuilder().With(func(b *builder.ClassBuilder) {
		b.AvailableSeat = seats
		b.CreatedAt = now
	}).BuildDomain()
	require.NoError(t, err)
	require.NoError(t, store.Classes().Create(context.Background(), c))
	return c
}

func seats(t *testing.T, store shared.Store, id uuid.UUID) int {
	t.Helper()
	c, err := store.Classes().FindByID(context.Background(), id)
	require.NoError(t, err)
	return c.AvailableSeat()
}

func testClasses(t *testing.T, store shared.Store) {
	ctx := context.Background()

	c, err := builder.NewClassBuilder().With(func(b *builder.ClassBuilder) {
		b.Approved = false
		b.CreatedAt = now
	}).BuildDomain()
	require.NoError(t, err)
	require.NoError(t, store.Classes().Create(ctx, c))

	got, err := store.Classes().FindByID(ctx, c.ID())
	require.NoError(t, err)
	assert.Equal(t, c.Spec(), got.Spec())
	assert.Equal(t, class.StatusPending, got.Status())
	assert.True(t, c.CreatedAt().Equal(got.CreatedAt()))

	require.NoError(t, got.Approve(now.Add(time.Minute)))
	require.NoError(t, store.Classes().UpdateStatus(ctx, got))
	got, err = store.Classes().FindByID(ctx, c.ID())
	require.NoError(t, err)
	assert.Equal(t, class.StatusApproved, got.Status())

	_, err = store.Classes().FindByID(ctx, uuid.New())
	assert.True(t, infra.IsNotFound(err), "got %v", err)
}

func testSelections(t *testing.T, store shared.Store) {
	ctx := context.Background()
	c := createClass(t, store, 5)

	sel, err := selection.NewSelection("amy@example.com", c, now)
	require.NoError(t, err)
	require.NoError(t, store.Selections().Create(ctx, sel))

	got, err := store.Selections().FindByID(ctx, sel.ID)
	require.NoError(t, err)
	assert.Equal(t, sel.StudentEmail, got.StudentEmail)
	assert.Equal(t, sel.ClassID, got.ClassID)
	assert.Equal(t, sel.PriceCents, got.PriceCents)

	dup, err := selection.NewSelection("amy@example.com", c, now)
	require.NoError(t, err)
	err = store.Selections().Create(ctx, dup)
	assert.True(t, infra.IsDuplicateKey(err), "got %v", err)

	require.NoError(t, store.Selections().Delete(ctx, sel.ID))
	err = store.Selections().Delete(ctx, sel.ID)
	assert.True(t, infra.IsNotFound(err), "got %v", err)
	_, err = store.Selections().FindByID(ctx, sel.ID)
	assert.True(t, infra.IsNotFound(err), "got %v", err)
}

func testPayments(t *testing.T, store shared.Store) {
	ctx := context.Background()
	classID := uuid.New()

	p, err := payment.NewPayment("pi_1", 4900, classID, "Guitar101", "amy@example.com", now)
	require.NoError(t, err)
	require.NoError(t, store.Payments().Append(ctx, p))

	again, err := payment.NewPayment("pi_1", 4900, classID, "Guitar101", "amy@example.com", now)
	require.NoError(t, err)
	err = store.Payments().Append(ctx, again)
	assert.True(t, infra.IsDuplicateKey(err), "got %v", err)

	got, err := store.Payments().FindByTransactionID(ctx, "pi_1")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, int64(4900), got.AmountCents)

	_, err = store.Payments().FindByTransactionID(ctx, "pi_missing")
	assert.True(t, infra.IsNotFound(err), "got %v", err)
}

func testEnrollments(t *testing.T, store shared.Store) {
	ctx := context.Background()
	snap := enrollment.ClassSnapshot{
		ClassID:         uuid.New(),
		ClassName:       "Guitar101",
		InstructorName:  "Dana Reyes",
		InstructorEmail: "dana@example.com",
		PriceCents:      4900,
		AvailableSeat:   9,
	}

	e := enrollment.NewEnrollment("pi_1", "amy@example.com", snap, now)
	require.NoError(t, store.Enrollments().Append(ctx, e))
	err := store.Enrollments().Append(ctx, enrollment.NewEnrollment("pi_1", "amy@example.com", snap, now))
	assert.True(t, infra.IsDuplicateKey(err), "got %v", err)

	got, err := store.Enrollments().FindByTransactionID(ctx, "pi_1")
	require.NoError(t, err)
	assert.Equal(t, e.ID, got.ID)
	assert.Equal(t, snap, got.ClassSnapshot)

	ok, err := store.Enrollments().ExistsForStudent(ctx, "amy@example.com", snap.ClassID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = store.Enrollments().ExistsForStudent(ctx, "bob@example.com", snap.ClassID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func testSeatLedger(t *testing.T, store shared.Store) {
	ctx := context.Background()
	c := createClass(t, store, 2)
	ledger := store.Seats()

	res, err := ledger.ReserveSeat(ctx, c.ID(), "pi_a")
	require.NoError(t, err)
	assert.Equal(t, shared.SeatReservation{Remaining: 1}, res)

	res, err = ledger.ReserveSeat(ctx, c.ID(), "pi_a")
	require.NoError(t, err)
	assert.Equal(t, shared.SeatReservation{Remaining: 1, AlreadyHeld: true}, res, "same key must not take a second seat")

	res, err = ledger.ReserveSeat(ctx, c.ID(), "pi_b")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Remaining)

	_, err = ledger.ReserveSeat(ctx, c.ID(), "pi_c")
	assert.True(t, errs.Is(err, class.ErrSeatUnavailable), "got %v", err)
	assert.Equal(t, 0, seats(t, store, c.ID()))

	released, err := ledger.ReleaseSeat(ctx, c.ID(), "pi_a")
	require.NoError(t, err)
	assert.True(t, released)
	released, err = ledger.ReleaseSeat(ctx, c.ID(), "pi_a")
	require.NoError(t, err)
	assert.False(t, released, "second release is a no-op")
	assert.Equal(t, 1, seats(t, store, c.ID()))

	released, err = ledger.ReleaseSeat(ctx, c.ID(), "pi_never")
	require.NoError(t, err)
	assert.False(t, released)
	assert.Equal(t, 1, seats(t, store, c.ID()))
}

func testSeatContention(t *testing.T, store shared.Store) {
	ctx := context.Background()
	const capacity, workers = 3, 16
	c := createClass(t, store, capacity)

	var won, lost atomic.Int32
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Seats().ReserveSeat(ctx, c.ID(), payment.TransactionID(fmt.Sprintf("pi_%d", i)))
			switch {
			case err == nil:
				won.Add(1)
			case errs.Is(err, class.ErrSeatUnavailable):
				lost.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(capacity), won.Load())
	assert.Equal(t, int32(workers-capacity), lost.Load())
	assert.Equal(t, 0, seats(t, store, c.ID()))
}

func newSettlement(txn payment.TransactionID, selectionID uuid.UUID, at time.Time) *settlement.Settlement {
	snap := settlement.Snapshot{
		SelectionID:  selectionID,
		StudentEmail: "amy@example.com",
		ClassSnapshot: enrollment.ClassSnapshot{
			ClassID:         uuid.New(),
			ClassName:       "Guitar101",
			InstructorName:  "Dana Reyes",
			InstructorEmail: "dana@example.com",
			PriceCents:      4900,
		},
	}
	return settlement.New(txn, snap, 4900, at, 30*time.Second)
}

func testSettlements(t *testing.T, store shared.Store) {
	ctx := context.Background()
	repo := store.Settlements()
	selectionID := uuid.New()

	s := newSettlement("pi_1", selectionID, now)
	require.NoError(t, repo.Claim(ctx, s))

	err := repo.Claim(ctx, newSettlement("pi_1", selectionID, now))
	assert.True(t, infra.IsDuplicateKey(err), "same transaction id: %v", err)
	err = repo.Claim(ctx, newSettlement("pi_2", selectionID, now))
	assert.True(t, infra.IsDuplicateKey(err), "same selection: %v", err)

	early := newSettlement("pi_1", selectionID, now)
	early.Attempts = 2
	ok, err := repo.Reclaim(ctx, early, now.Add(time.Second))
	require.NoError(t, err)
	assert.False(t, ok, "lease still active")

	pid := uuid.New()
	require.NoError(t, s.RecordSeat(9, now.Add(time.Second)))
	require.NoError(t, s.Advance(settlement.StageSelectionRemoved, now.Add(time.Second)))
	require.NoError(t, s.RecordPayment(pid, now.Add(time.Second)))
	require.NoError(t, repo.SaveProgress(ctx, s))

	got, err := repo.FindByTransactionID(ctx, "pi_1")
	require.NoError(t, err)
	assert.Equal(t, settlement.StagePaymentRecorded, got.Stage)
	require.NotNil(t, got.PaymentID)
	assert.Equal(t, pid, *got.PaymentID)
	assert.Equal(t, 9, got.SeatsRemaining)

	stale, err := repo.ListStale(ctx, now.Add(time.Minute), 10)
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, payment.TransactionID("pi_1"), stale[0].TransactionID)

	require.NoError(t, repo.ExpireLease(ctx, s, now.Add(2*time.Second)))
	stale, err = repo.ListStale(ctx, now.Add(2*time.Second), 10)
	require.NoError(t, err)
	assert.Len(t, stale, 1, "expired lease is stale immediately")

	retry := newSettlement("pi_1", selectionID, now.Add(3*time.Second))
	retry.Stage = got.Stage
	retry.Attempts = 2
	ok, err = repo.Reclaim(ctx, retry, now.Add(3*time.Second))
	require.NoError(t, err)
	assert.True(t, ok)

	got, err = repo.FindByTransactionID(ctx, "pi_1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Attempts)
	require.NotNil(t, got.PaymentID, "reclaim keeps recorded progress")
	assert.Equal(t, pid, *got.PaymentID)

	// the first attempt lost the record; none of its writes land
	require.NoError(t, s.RecordEnrollment(uuid.New(), now.Add(4*time.Second)))
	err = repo.SaveProgress(ctx, s)
	assert.True(t, infra.IsNotFound(err), "superseded progress: %v", err)
	require.NoError(t, s.Complete(now.Add(4*time.Second)))
	err = repo.Complete(ctx, s)
	assert.True(t, infra.IsNotFound(err), "superseded completion: %v", err)
	released, err := repo.Release(ctx, s, now.Add(4*time.Second))
	require.NoError(t, err)
	assert.False(t, released, "superseded release")
	require.NoError(t, repo.ExpireLease(ctx, s, now.Add(4*time.Second)))
	stale, err = repo.ListStale(ctx, now.Add(4*time.Second), 10)
	require.NoError(t, err)
	assert.Empty(t, stale, "superseded attempt cannot expire the new lease")

	again := newSettlement("pi_1", selectionID, now.Add(40*time.Second))
	again.Attempts = 2
	ok, err = repo.Reclaim(ctx, again, now.Add(40*time.Second))
	require.NoError(t, err)
	assert.False(t, ok, "reclaim must be one past the stored attempt")

	got, err = repo.FindByTransactionID(ctx, "pi_1")
	require.NoError(t, err)
	assert.Equal(t, settlement.StatusProcessing, got.Status)
	assert.Equal(t, settlement.StagePaymentRecorded, got.Stage)
	assert.Nil(t, got.EnrollmentID)

	retry.PaymentID = &pid
	require.NoError(t, retry.RecordEnrollment(uuid.New(), now.Add(5*time.Second)))
	require.NoError(t, retry.Complete(now.Add(5*time.Second)))
	require.NoError(t, repo.Complete(ctx, retry))
	err = repo.Complete(ctx, retry)
	assert.True(t, infra.IsNotFound(err), "completing twice: %v", err)

	released, err = repo.Release(ctx, retry, now.Add(6*time.Second))
	require.NoError(t, err)
	assert.False(t, released)
	got, err = repo.FindByTransactionID(ctx, "pi_1")
	require.NoError(t, err)
	assert.Equal(t, settlement.StatusCompleted, got.Status, "release ignores completed records")

	// released records free the selection for another transaction
	other := uuid.New()
	third := newSettlement("pi_3", other, now)
	require.NoError(t, repo.Claim(ctx, third))
	released, err = repo.Release(ctx, third, now.Add(time.Second))
	require.NoError(t, err)
	assert.True(t, released)
	require.NoError(t, repo.Claim(ctx, newSettlement("pi_4", other, now.Add(2*time.Second))))

	_, err = repo.FindByTransactionID(ctx, "pi_missing")
	assert.True(t, infra.IsNotFound(err), "got %v", err)
}
