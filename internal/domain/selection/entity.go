package selection

import (
	"errors"
	"time"

	"course-enrollment/internal/domain/class"
	"course-enrollment/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrClassNotOpen    = errors.New("class is not open for selection")
	ErrAlreadySelected = errors.New("class is already selected")
	ErrAlreadyEnrolled = errors.New("student is already enrolled in this class")
	ErrInvalidStudent  = errors.New("invalid student email")
)

// Selection is a student's intent to pay for a class. It is destroyed either
// by explicit removal or by a successful settlement, never both.
type Selection struct {
	ID           uuid.UUID
	StudentEmail string
	ClassID      uuid.UUID
	ClassName    string
	PriceCents   int64
	CreatedAt    time.Time
}

func NewSelection(studentEmail string, c *class.Class, now time.Time) (*Selection, error) {
	email, err := user.NewEmail(studentEmail)
	if err != nil {
		return nil, ErrInvalidStudent
	}
	if !c.IsOpenForSelection() {
		return nil, ErrClassNotOpen
	}
	return &Selection{
		ID:           uuid.New(),
		StudentEmail: email.Value(),
		ClassID:      c.ID(),
		ClassName:    c.Name(),
		PriceCents:   c.PriceCents(),
		CreatedAt:    now,
	}, nil
}
