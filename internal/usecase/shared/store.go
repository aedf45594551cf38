package shared

import (
	"context"
	"time"

	"course-enrollment/internal/domain/class"
	"course-enrollment/internal/domain/enrollment"
	"course-enrollment/internal/domain/payment"
	"course-enrollment/internal/domain/selection"
	"course-enrollment/internal/domain/settlement"

	"github.com/google/uuid"
)

// Store bundles the record collections of one document store backend. No
// method spans more than one record; settlement consistency comes from
// idempotent steps, not from transactions.
type Store interface {
	Classes() ClassRepository
	Selections() SelectionRepository
	Payments() PaymentRepository
	Enrollments() EnrollmentRepository
	Settlements() SettlementRepository
	Seats() SeatLedger
}

type ClassRepository interface {
	Create(ctx context.Context, c *class.Class) error
	FindByID(ctx context.Context, id uuid.UUID) (*class.Class, error)
	UpdateStatus(ctx context.Context, c *class.Class) error
}

type SelectionRepository interface {
	// Create fails with a duplicate key error when the student already has an
	// open selection for the class.
	Create(ctx context.Context, s *selection.Selection) error
	FindByID(ctx context.Context, id uuid.UUID) (*selection.Selection, error)
	// Delete reports a not found error when nothing was removed.
	Delete(ctx context.Context, id uuid.UUID) error
}

// PaymentRepository is append-only. Append is unique on the transaction id.
type PaymentRepository interface {
	Append(ctx context.Context, p *payment.Payment) error
	FindByTransactionID(ctx context.Context, txn payment.TransactionID) (*payment.Payment, error)
}

type EnrollmentRepository interface {
	Append(ctx context.Context, e *enrollment.Enrollment) error
	FindByTransactionID(ctx context.Context, txn payment.TransactionID) (*enrollment.Enrollment, error)
	ExistsForStudent(ctx context.Context, studentEmail string, classID uuid.UUID) (bool, error)
}

type SettlementRepository interface {
	// Claim inserts a new processing record; a duplicate key error means the
	// transaction id is already known.
	Claim(ctx context.Context, s *settlement.Settlement) error
	FindByTransactionID(ctx context.Context, txn payment.TransactionID) (*settlement.Settlement, error)
	// Reclaim takes over a released record or a processing record whose lease
	// expired before now. s.Attempts must be one past the stored count; it
	// reports false when another attempt won.
	Reclaim(ctx context.Context, s *settlement.Settlement, now time.Time) (bool, error)

	// The writes below are fenced on s.Attempts: they only touch a processing
	// record still owned by that attempt. SaveProgress and Complete return a
	// NotFound kind when the attempt lost the record, Release reports false.
	SaveProgress(ctx context.Context, s *settlement.Settlement) error
	Complete(ctx context.Context, s *settlement.Settlement) error
	Release(ctx context.Context, s *settlement.Settlement, now time.Time) (bool, error)
	ExpireLease(ctx context.Context, s *settlement.Settlement, now time.Time) error
	ListStale(ctx context.Context, now time.Time, limit int) ([]*settlement.Settlement, error)
}

type SeatReservation struct {
	Remaining int
	// AlreadyHeld is set when holdKey had already taken a seat; nothing was
	// decremented by this call.
	AlreadyHeld bool
}

// SeatLedger owns the AvailableSeat counter. ReserveSeat is a single atomic
// conditional decrement and returns class.ErrSeatUnavailable without mutating
// anything when the counter is not strictly positive.
type SeatLedger interface {
	ReserveSeat(ctx context.Context, classID uuid.UUID, holdKey payment.TransactionID) (SeatReservation, error)
	ReleaseSeat(ctx context.Context, classID uuid.UUID, holdKey payment.TransactionID) (bool, error)
}
