//go:build unit || e2e

package builder

import (
	reqdto "course-enrollment/internal/handler/dto/request"
	"course-enrollment/internal/usecase/commands"

	"github.com/google/uuid"
)

type SettlementBuilder struct {
	SelectionID   uuid.UUID
	TransactionID string
	AmountCents   int64
}

func NewSettlementBuilder() *SettlementBuilder {
	return &SettlementBuilder{
		SelectionID:   uuid.New(),
		TransactionID: "pi_" + uuid.NewString(),
		AmountCents:   4900,
	}
}

func (b *SettlementBuilder) With(mutate func(*SettlementBuilder)) *SettlementBuilder {
	mutate(b)
	return b
}

func (b *SettlementBuilder) BuildInput() commands.SettleInput {
	return commands.SettleInput{
		SelectionID:   b.SelectionID,
		TransactionID: b.TransactionID,
		AmountCents:   b.AmountCents,
	}
}

func (b *SettlementBuilder) BuildRequestDTO() reqdto.SettleRequest {
	return reqdto.SettleRequest{
		SelectionID:   b.SelectionID,
		TransactionID: b.TransactionID,
		AmountCents:   b.AmountCents,
	}
}
