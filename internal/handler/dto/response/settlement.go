package response

import (
	"course-enrollment/internal/usecase/commands"

	"github.com/google/uuid"
)

type SettlementResponse struct {
	TransactionID string    `json:"transactionId"`
	PaymentID     uuid.UUID `json:"paymentId"`
	EnrollmentID  uuid.UUID `json:"enrollmentId"`
	Replayed      bool      `json:"replayed"`
}

func FromSettlementResult(r *commands.SettlementResult) *SettlementResponse {
	return &SettlementResponse{
		TransactionID: r.TransactionID.String(),
		PaymentID:     r.PaymentID,
		EnrollmentID:  r.EnrollmentID,
		Replayed:      r.Replayed,
	}
}
