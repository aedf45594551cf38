//go:build unit || e2e

package builder

import (
	"time"

	domclass "course-enrollment/internal/domain/class"
	reqdto "course-enrollment/internal/handler/dto/request"
	"course-enrollment/internal/usecase/queries"

	"github.com/google/uuid"
)

type ClassBuilder struct {
	Name            string
	ImageURL        string
	InstructorName  string
	InstructorEmail string
	PriceCents      int64
	AvailableSeat   int
	Approved        bool
	CreatedAt       time.Time
}

func NewClassBuilder() *ClassBuilder {
	return &ClassBuilder{
		Name:            "Guitar101",
		ImageURL:        "https://img.example.com/guitar.png",
		InstructorName:  "Dana Reyes",
		InstructorEmail: "dana@example.com",
		PriceCents:      4900,
		AvailableSeat:   10,
		Approved:        true,
		CreatedAt:       time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *ClassBuilder) With(mutate func(*ClassBuilder)) *ClassBuilder {
	mutate(b)
	return b
}

func (b *ClassBuilder) Spec() domclass.Spec {
	return domclass.Spec{
		Name:            b.Name,
		ImageURL:        b.ImageURL,
		InstructorName:  b.InstructorName,
		InstructorEmail: b.InstructorEmail,
		PriceCents:      b.PriceCents,
		AvailableSeat:   b.AvailableSeat,
	}
}

// BuildDomain returns an Approved class unless Approved was cleared.
func (b *ClassBuilder) BuildDomain() (*domclass.Class, error) {
	c, err := domclass.NewClass(b.Spec(), b.CreatedAt)
	if err != nil {
		return nil, err
	}
	if b.Approved {
		if err := c.Approve(b.CreatedAt); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (b *ClassBuilder) BuildCreateRequestDTO() reqdto.CreateClassRequest {
	return reqdto.CreateClassRequest{
		Name:            b.Name,
		ImageURL:        b.ImageURL,
		InstructorName:  b.InstructorName,
		InstructorEmail: b.InstructorEmail,
		PriceCents:      b.PriceCents,
		AvailableSeat:   b.AvailableSeat,
	}
}

func (b *ClassBuilder) BuildView() queries.ClassView {
	status := domclass.StatusPending
	if b.Approved {
		status = domclass.StatusApproved
	}
	return queries.ClassView{
		ID:              uuid.New(),
		Name:            b.Name,
		ImageURL:        b.ImageURL,
		InstructorName:  b.InstructorName,
		InstructorEmail: b.InstructorEmail,
		PriceCents:      b.PriceCents,
		AvailableSeat:   b.AvailableSeat,
		Status:          status.String(),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.CreatedAt,
	}
}
