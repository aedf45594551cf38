package request

import (
	"github.com/google/uuid"
)

type SettleRequest struct {
	SelectionID   uuid.UUID `json:"selectionId" binding:"required"`
	TransactionID string    `json:"transactionId" binding:"required,max=255"`
	AmountCents   int64     `json:"amountCents" binding:"required,gt=0"`
}
