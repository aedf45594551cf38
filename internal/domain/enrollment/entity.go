package enrollment

import (
	"time"

	"course-enrollment/internal/domain/payment"

	"github.com/google/uuid"
)

// ClassSnapshot copies the class fields at enrollment time so later class
// edits do not rewrite history.
type ClassSnapshot struct {
	ClassID         uuid.UUID
	ClassName       string
	ClassImage      string
	InstructorName  string
	InstructorEmail string
	PriceCents      int64
	AvailableSeat   int
}

type Enrollment struct {
	ID            uuid.UUID
	TransactionID payment.TransactionID
	StudentEmail  string
	ClassSnapshot
	CreatedAt time.Time
}

func NewEnrollment(txn payment.TransactionID, studentEmail string, snap ClassSnapshot, now time.Time) *Enrollment {
	return &Enrollment{
		ID:            uuid.New(),
		TransactionID: txn,
		StudentEmail:  studentEmail,
		ClassSnapshot: snap,
		CreatedAt:     now,
	}
}
