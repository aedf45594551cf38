package request

import "github.com/google/uuid"

type CreateSelectionRequest struct {
	ClassID uuid.UUID `json:"classId" binding:"required"`
}
