package payment

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const MaxTransactionIDLength = 255

var (
	ErrInvalidTransactionID = errors.New("transaction id must be 1-255 characters")
	ErrInvalidAmount        = errors.New("amount must be positive")
)

// TransactionID is the opaque identifier issued by the payment gateway. It is
// the idempotency key of a settlement.
type TransactionID string

func NewTransactionID(s string) (TransactionID, error) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > MaxTransactionIDLength {
		return "", ErrInvalidTransactionID
	}
	return TransactionID(s), nil
}

func (t TransactionID) String() string {
	return string(t)
}

// Payment is append-only: once written it is never updated or deleted.
type Payment struct {
	ID            uuid.UUID
	TransactionID TransactionID
	AmountCents   int64
	ClassID       uuid.UUID
	ClassName     string
	StudentEmail  string
	CreatedAt     time.Time
}

func NewPayment(
	txn TransactionID,
	amountCents int64,
	classID uuid.UUID,
	className, studentEmail string,
	now time.Time,
) (*Payment, error) {
	if txn == "" {
		return nil, ErrInvalidTransactionID
	}
	if amountCents <= 0 {
		return nil, ErrInvalidAmount
	}
	return &Payment{
		ID:            uuid.New(),
		TransactionID: txn,
		AmountCents:   amountCents,
		ClassID:       classID,
		ClassName:     className,
		StudentEmail:  studentEmail,
		CreatedAt:     now,
	}, nil
}
