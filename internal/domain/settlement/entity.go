package settlement

import (
	"time"

	"course-enrollment/internal/domain/enrollment"
	"course-enrollment/internal/domain/payment"

	"github.com/google/uuid"
)

// Snapshot freezes the selection and class data a settlement needs so it can
// be resumed after the selection record is gone.
type Snapshot struct {
	SelectionID  uuid.UUID
	StudentEmail string
	enrollment.ClassSnapshot
}

// Settlement is the idempotency record of one transaction id.
type Settlement struct {
	TransactionID  payment.TransactionID
	Snapshot       Snapshot
	AmountCents    int64
	Status         Status
	Stage          Stage
	PaymentID      *uuid.UUID
	EnrollmentID   *uuid.UUID
	SeatsRemaining int
	Attempts       int
	LeaseExpiresAt time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func New(txn payment.TransactionID, snap Snapshot, amountCents int64, now time.Time, lease time.Duration) *Settlement {
	return &Settlement{
		TransactionID:  txn,
		Snapshot:       snap,
		AmountCents:    amountCents,
		Status:         StatusProcessing,
		Stage:          StageNone,
		Attempts:       1,
		LeaseExpiresAt: now.Add(lease),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func (s *Settlement) Reached(stage Stage) bool {
	return s.Stage >= stage
}

func (s *Settlement) LeaseActive(now time.Time) bool {
	return s.Status == StatusProcessing && now.Before(s.LeaseExpiresAt)
}

func (s *Settlement) IsCompleted() bool {
	return s.Status == StatusCompleted
}

// Advance moves the record forward; stages never go backwards.
func (s *Settlement) Advance(stage Stage, now time.Time) error {
	if s.Status != StatusProcessing {
		return ErrNotProcessing
	}
	if !stage.IsValid() || stage < s.Stage {
		return ErrInvalidStageTransition
	}
	s.Stage = stage
	s.UpdatedAt = now
	return nil
}

func (s *Settlement) RecordSeat(remaining int, now time.Time) error {
	if err := s.Advance(StageSeatReserved, now); err != nil {
		return err
	}
	s.SeatsRemaining = remaining
	return nil
}

func (s *Settlement) RecordPayment(id uuid.UUID, now time.Time) error {
	if err := s.Advance(StagePaymentRecorded, now); err != nil {
		return err
	}
	s.PaymentID = &id
	return nil
}

func (s *Settlement) RecordEnrollment(id uuid.UUID, now time.Time) error {
	if err := s.Advance(StageEnrollmentRecorded, now); err != nil {
		return err
	}
	s.EnrollmentID = &id
	return nil
}

func (s *Settlement) Complete(now time.Time) error {
	if s.Status != StatusProcessing {
		return ErrNotProcessing
	}
	if s.PaymentID == nil || s.EnrollmentID == nil {
		return ErrInvalidStageTransition
	}
	s.Status = StatusCompleted
	s.UpdatedAt = now
	return nil
}

// Reclaim hands an expired or released record to a new attempt.
func (s *Settlement) Reclaim(now time.Time, lease time.Duration) {
	if s.Status == StatusReleased {
		s.Stage = StageNone
	}
	s.Status = StatusProcessing
	s.Attempts++
	s.LeaseExpiresAt = now.Add(lease)
	s.UpdatedAt = now
}

func (s *Settlement) NewPayment(now time.Time) (*payment.Payment, error) {
	return payment.NewPayment(
		s.TransactionID,
		s.AmountCents,
		s.Snapshot.ClassID,
		s.Snapshot.ClassName,
		s.Snapshot.StudentEmail,
		now,
	)
}

// NewEnrollment snapshots the class with the seat count observed when the
// seat was reserved.
func (s *Settlement) NewEnrollment(now time.Time) *enrollment.Enrollment {
	snap := s.Snapshot.ClassSnapshot
	snap.AvailableSeat = s.SeatsRemaining
	return enrollment.NewEnrollment(s.TransactionID, s.Snapshot.StudentEmail, snap, now)
}
