package shared

//go:generate mockgen -source=events.go -destination=../../../tests/mock/shared/events.go -package=sharedmock

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const EventEnrollmentSettled = "enrollment.settled"

type EnrollmentSettledEvent struct {
	Type            string    `json:"type"`
	TransactionID   string    `json:"transactionId"`
	PaymentID       uuid.UUID `json:"paymentId"`
	EnrollmentID    uuid.UUID `json:"enrollmentId"`
	StudentEmail    string    `json:"studentEmail"`
	ClassID         uuid.UUID `json:"classId"`
	ClassName       string    `json:"className"`
	InstructorName  string    `json:"instructorName"`
	InstructorEmail string    `json:"instructorEmail"`
	AmountCents     int64     `json:"amountCents"`
	SettledAt       time.Time `json:"settledAt"`
}

type EventPublisher interface {
	PublishEnrollmentSettled(ctx context.Context, evt EnrollmentSettledEvent) error
}

type ReportInvalidator interface {
	InvalidateEnrollmentReports(ctx context.Context) error
}

type SettlementOutcome string

const (
	OutcomeSettled          SettlementOutcome = "settled"
	OutcomeReplayed         SettlementOutcome = "replayed"
	OutcomeSeatUnavailable  SettlementOutcome = "seat_unavailable"
	OutcomeRejected         SettlementOutcome = "rejected"
	OutcomeStoreUnavailable SettlementOutcome = "store_unavailable"
	OutcomeResumed          SettlementOutcome = "resumed"
)

type SettlementMetrics interface {
	ObserveSettlement(outcome SettlementOutcome, elapsed time.Duration)
	// IncStepFailure counts a failed step and the policy applied to it
	// ("compensate" or "roll_forward").
	IncStepFailure(step, policy string)
	IncReconciled(outcome SettlementOutcome)
}
