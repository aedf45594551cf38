package queries

import (
	"time"

	"github.com/google/uuid"
)

// ClassView represents read-optimized class data
type ClassView struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	ImageURL        string    `json:"image_url"`
	InstructorName  string    `json:"instructor_name"`
	InstructorEmail string    `json:"instructor_email"`
	PriceCents      int64     `json:"price_cents"`
	AvailableSeat   int       `json:"available_seat"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type ClassFilter struct {
	Status          string
	InstructorEmail string
	Limit           int
}

type SelectionView struct {
	ID           uuid.UUID `json:"id"`
	StudentEmail string    `json:"student_email"`
	ClassID      uuid.UUID `json:"class_id"`
	ClassName    string    `json:"class_name"`
	PriceCents   int64     `json:"price_cents"`
	CreatedAt    time.Time `json:"created_at"`
}

type EnrollmentView struct {
	ID              uuid.UUID `json:"id"`
	TransactionID   string    `json:"transaction_id"`
	StudentEmail    string    `json:"student_email"`
	ClassID         uuid.UUID `json:"class_id"`
	ClassName       string    `json:"class_name"`
	ClassImage      string    `json:"class_image"`
	InstructorName  string    `json:"instructor_name"`
	InstructorEmail string    `json:"instructor_email"`
	PriceCents      int64     `json:"price_cents"`
	AvailableSeat   int       `json:"available_seat"`
	CreatedAt       time.Time `json:"created_at"`
}

// ClassEnrollmentView is one row of the per-class rollup. Everything but the
// total comes from the earliest enrollment of the class.
type ClassEnrollmentView struct {
	ClassName       string `json:"class_name"`
	TotalEnrollment int64  `json:"total_enrollment"`
	ClassImage      string `json:"class_image"`
	InstructorName  string `json:"instructor_name"`
	InstructorEmail string `json:"instructor_email"`
	PriceCents      int64  `json:"price_cents"`
	AvailableSeat   int    `json:"available_seat"`
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
