//go:build unit

package settlement_test

import (
	"testing"
	"time"

	"course-enrollment/internal/domain/enrollment"
	"course-enrollment/internal/domain/settlement"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newSettlement() *settlement.Settlement {
	snap := settlement.Snapshot{
		SelectionID:  uuid.New(),
		StudentEmail: "s@example.com",
		ClassSnapshot: enrollment.ClassSnapshot{
			ClassID:         uuid.New(),
			ClassName:       "Guitar101",
			InstructorName:  "Jimi",
			InstructorEmail: "jimi@example.com",
			PriceCents:      4999,
		},
	}
	return settlement.New("abc", snap, 4999, t0, 30*time.Second)
}

func TestNew(t *testing.T) {
	s := newSettlement()
	assert.Equal(t, settlement.StatusProcessing, s.Status)
	assert.Equal(t, settlement.StageNone, s.Stage)
	assert.Equal(t, 1, s.Attempts)
	assert.True(t, s.LeaseActive(t0.Add(29*time.Second)))
	assert.False(t, s.LeaseActive(t0.Add(30*time.Second)))
}

func TestStageProgression(t *testing.T) {
	s := newSettlement()
	paymentID, enrollmentID := uuid.New(), uuid.New()

	require.NoError(t, s.RecordSeat(7, t0))
	require.NoError(t, s.Advance(settlement.StageSelectionRemoved, t0))
	assert.ErrorIs(t, s.Complete(t0), settlement.ErrInvalidStageTransition)
	require.NoError(t, s.RecordPayment(paymentID, t0))
	require.NoError(t, s.RecordEnrollment(enrollmentID, t0))
	require.NoError(t, s.Complete(t0))

	assert.True(t, s.IsCompleted())
	assert.True(t, s.Reached(settlement.StageSeatReserved))
	assert.Equal(t, paymentID, *s.PaymentID)
	assert.Equal(t, enrollmentID, *s.EnrollmentID)
	assert.ErrorIs(t, s.Advance(settlement.StageEnrollmentRecorded, t0), settlement.ErrNotProcessing)
}

func TestAdvanceNeverMovesBackwards(t *testing.T) {
	s := newSettlement()
	require.NoError(t, s.Advance(settlement.StagePaymentRecorded, t0))
	assert.ErrorIs(t, s.Advance(settlement.StageSeatReserved, t0), settlement.ErrInvalidStageTransition)
	assert.ErrorIs(t, s.Advance(settlement.Stage(42), t0), settlement.ErrInvalidStageTransition)
	require.NoError(t, s.Advance(settlement.StagePaymentRecorded, t0))
}

func TestReclaim(t *testing.T) {
	t.Run("expired processing record keeps its stage", func(t *testing.T) {
		s := newSettlement()
		require.NoError(t, s.Advance(settlement.StageSelectionRemoved, t0))
		later := t0.Add(time.Minute)

		s.Reclaim(later, 30*time.Second)
		assert.Equal(t, settlement.StageSelectionRemoved, s.Stage)
		assert.Equal(t, 2, s.Attempts)
		assert.True(t, s.LeaseActive(later))
	})

	t.Run("released record starts over", func(t *testing.T) {
		s := newSettlement()
		require.NoError(t, s.RecordSeat(3, t0))
		s.Status = settlement.StatusReleased

		s.Reclaim(t0, 30*time.Second)
		assert.Equal(t, settlement.StatusProcessing, s.Status)
		assert.Equal(t, settlement.StageNone, s.Stage)
	})
}

func TestNewRecords(t *testing.T) {
	s := newSettlement()
	require.NoError(t, s.RecordSeat(4, t0))

	p, err := s.NewPayment(t0)
	require.NoError(t, err)
	assert.Equal(t, s.TransactionID, p.TransactionID)
	assert.Equal(t, int64(4999), p.AmountCents)

	e := s.NewEnrollment(t0)
	assert.Equal(t, "Guitar101", e.ClassName)
	assert.Equal(t, 4, e.AvailableSeat)
	assert.Equal(t, "s@example.com", e.StudentEmail)
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "selection_removed", settlement.StageSelectionRemoved.String())
	assert.Equal(t, "unknown", settlement.Stage(-1).String())
}
