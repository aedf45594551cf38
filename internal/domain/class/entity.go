package class

import (
	"strings"
	"time"

	"course-enrollment/internal/domain/user"

	"github.com/google/uuid"
)

type Class struct {
	id              uuid.UUID
	name            string
	imageURL        string
	instructorName  string
	instructorEmail string
	priceCents      int64
	availableSeat   int
	status          Status
	createdAt       time.Time
	updatedAt       time.Time
}

type Spec struct {
	Name            string
	ImageURL        string
	InstructorName  string
	InstructorEmail string
	PriceCents      int64
	AvailableSeat   int
}

// NewClass builds a Pending class from an instructor submission.
func NewClass(spec Spec, now time.Time) (*Class, error) {
	name := strings.TrimSpace(spec.Name)
	if name == "" {
		return nil, ErrInvalidName
	}
	instructor := strings.TrimSpace(spec.InstructorName)
	email, err := user.NewEmail(spec.InstructorEmail)
	if instructor == "" || err != nil {
		return nil, ErrInvalidInstructor
	}
	if spec.AvailableSeat < 0 {
		return nil, ErrNegativeSeats
	}
	if spec.PriceCents < 0 {
		return nil, ErrNegativePrice
	}

	return &Class{
		id:              uuid.New(),
		name:            name,
		imageURL:        strings.TrimSpace(spec.ImageURL),
		instructorName:  instructor,
		instructorEmail: email.Value(),
		priceCents:      spec.PriceCents,
		availableSeat:   spec.AvailableSeat,
		status:          StatusPending,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	spec Spec,
	status Status,
	createdAt, updatedAt time.Time,
) *Class {
	return &Class{
		id:              id,
		name:            spec.Name,
		imageURL:        spec.ImageURL,
		instructorName:  spec.InstructorName,
		instructorEmail: spec.InstructorEmail,
		priceCents:      spec.PriceCents,
		availableSeat:   spec.AvailableSeat,
		status:          status,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (c *Class) Approve(now time.Time) error {
	return c.transition(StatusApproved, now)
}

func (c *Class) Deny(now time.Time) error {
	return c.transition(StatusDenied, now)
}

func (c *Class) transition(to Status, now time.Time) error {
	if c.status != StatusPending {
		return ErrInvalidStatusTransition
	}
	c.status = to
	c.updatedAt = now
	return nil
}

func (c *Class) IsOpenForSelection() bool {
	return c.status == StatusApproved
}

func (c *Class) ID() uuid.UUID           { return c.id }
func (c *Class) Name() string            { return c.name }
func (c *Class) ImageURL() string        { return c.imageURL }
func (c *Class) InstructorName() string  { return c.instructorName }
func (c *Class) InstructorEmail() string { return c.instructorEmail }
func (c *Class) PriceCents() int64       { return c.priceCents }
func (c *Class) AvailableSeat() int      { return c.availableSeat }
func (c *Class) Status() Status          { return c.status }
func (c *Class) CreatedAt() time.Time    { return c.createdAt }
func (c *Class) UpdatedAt() time.Time    { return c.updatedAt }

func (c *Class) Spec() Spec {
	return Spec{
		Name:            c.name,
		ImageURL:        c.imageURL,
		InstructorName:  c.instructorName,
		InstructorEmail: c.instructorEmail,
		PriceCents:      c.priceCents,
		AvailableSeat:   c.availableSeat,
	}
}
