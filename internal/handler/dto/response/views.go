package response

import (
	"time"

	"course-enrollment/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ClassResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	ImageURL        string    `json:"imageUrl"`
	InstructorName  string    `json:"instructorName"`
	InstructorEmail string    `json:"instructorEmail"`
	PriceCents      int64     `json:"priceCents"`
	AvailableSeat   int       `json:"availableSeat"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type SelectionResponse struct {
	ID           uuid.UUID `json:"id"`
	StudentEmail string    `json:"studentEmail"`
	ClassID      uuid.UUID `json:"classId"`
	ClassName    string    `json:"className"`
	PriceCents   int64     `json:"priceCents"`
	CreatedAt    time.Time `json:"createdAt"`
}

type EnrollmentResponse struct {
	ID              uuid.UUID `json:"id"`
	TransactionID   string    `json:"transactionId"`
	StudentEmail    string    `json:"studentEmail"`
	ClassID         uuid.UUID `json:"classId"`
	ClassName       string    `json:"className"`
	ClassImage      string    `json:"classImage"`
	InstructorName  string    `json:"instructorName"`
	InstructorEmail string    `json:"instructorEmail"`
	PriceCents      int64     `json:"priceCents"`
	AvailableSeat   int       `json:"availableSeat"`
	CreatedAt       time.Time `json:"createdAt"`
}

type ClassEnrollmentResponse struct {
	ClassName       string `json:"className"`
	TotalEnrollment int64  `json:"totalEnrollment"`
	ClassImage      string `json:"classImage"`
	InstructorName  string `json:"instructorName"`
	InstructorEmail string `json:"instructorEmail"`
	PriceCents      int64  `json:"priceCents"`
	AvailableSeat   int    `json:"availableSeat"`
}

type EnrollmentCountResponse struct {
	InstructorName string `json:"instructorName"`
	Total          int64  `json:"total"`
}

type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

func FromClassView(v *queries.ClassView) (*ClassResponse, error) {
	var out ClassResponse
	if err := copier.Copy(&out, v); err != nil {
		return nil, err
	}
	return &out, nil
}

func FromClassViews(vs []queries.ClassView) ([]ClassResponse, error) {
	return copyList[ClassResponse](vs)
}

func FromSelectionViews(vs []queries.SelectionView) ([]SelectionResponse, error) {
	return copyList[SelectionResponse](vs)
}

func FromEnrollmentViews(vs []queries.EnrollmentView) ([]EnrollmentResponse, error) {
	return copyList[EnrollmentResponse](vs)
}

func FromClassEnrollmentViews(vs []queries.ClassEnrollmentView) ([]ClassEnrollmentResponse, error) {
	return copyList[ClassEnrollmentResponse](vs)
}

// copyList always returns a non-nil slice so empty lists encode as [].
func copyList[T any, S any](src []S) ([]T, error) {
	out := make([]T, 0, len(src))
	if len(src) == 0 {
		return out, nil
	}
	if err := copier.Copy(&out, &src); err != nil {
		return nil, err
	}
	return out, nil
}
