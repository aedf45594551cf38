package mongostore

import (
	"time"

	"course-enrollment/internal/domain/class"
	"course-enrollment/internal/domain/enrollment"
	"course-enrollment/internal/domain/payment"
	"course-enrollment/internal/domain/selection"
	"course-enrollment/internal/domain/settlement"

	"github.com/google/uuid"
)

// Identifiers are stored as their canonical string form.

type classDoc struct {
	ID              string    `bson:"_id"`
	Name            string    `bson:"name"`
	ImageURL        string    `bson:"imageUrl"`
	InstructorName  string    `bson:"instructorName"`
	InstructorEmail string    `bson:"instructorEmail"`
	PriceCents      int64     `bson:"priceCents"`
	AvailableSeat   int       `bson:"availableSeat"`
	Status          string    `bson:"status"`
	SeatHolds       []string  `bson:"seatHolds,omitempty"`
	CreatedAt       time.Time `bson:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt"`
}

func toClassDoc(c *class.Class) classDoc {
	return classDoc{
		ID:              c.ID().String(),
		Name:            c.Name(),
		ImageURL:        c.ImageURL(),
		InstructorName:  c.InstructorName(),
		InstructorEmail: c.InstructorEmail(),
		PriceCents:      c.PriceCents(),
		AvailableSeat:   c.AvailableSeat(),
		Status:          c.Status().String(),
		CreatedAt:       c.CreatedAt(),
		UpdatedAt:       c.UpdatedAt(),
	}
}

func (d classDoc) toDomain() (*class.Class, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	spec := class.Spec{
		Name:            d.Name,
		ImageURL:        d.ImageURL,
		InstructorName:  d.InstructorName,
		InstructorEmail: d.InstructorEmail,
		PriceCents:      d.PriceCents,
		AvailableSeat:   d.AvailableSeat,
	}
	return class.Reconstruct(id, spec, class.Status(d.Status), d.CreatedAt.UTC(), d.UpdatedAt.UTC()), nil
}

type selectionDoc struct {
	ID           string    `bson:"_id"`
	StudentEmail string    `bson:"studentEmail"`
	ClassID      string    `bson:"classId"`
	ClassName    string    `bson:"className"`
	PriceCents   int64     `bson:"priceCents"`
	CreatedAt    time.Time `bson:"createdAt"`
}

func toSelectionDoc(s *selection.Selection) selectionDoc {
	return selectionDoc{
		ID:           s.ID.String(),
		StudentEmail: s.StudentEmail,
		ClassID:      s.ClassID.String(),
		ClassName:    s.ClassName,
		PriceCents:   s.PriceCents,
		CreatedAt:    s.CreatedAt,
	}
}

func (d selectionDoc) toDomain() (*selection.Selection, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	classID, err := uuid.Parse(d.ClassID)
	if err != nil {
		return nil, err
	}
	return &selection.Selection{
		ID:           id,
		StudentEmail: d.StudentEmail,
		ClassID:      classID,
		ClassName:    d.ClassName,
		PriceCents:   d.PriceCents,
		CreatedAt:    d.CreatedAt.UTC(),
	}, nil
}

type paymentDoc struct {
	ID            string    `bson:"_id"`
	TransactionID string    `bson:"transactionId"`
	AmountCents   int64     `bson:"amountCents"`
	ClassID       string    `bson:"classId"`
	ClassName     string    `bson:"className"`
	StudentEmail  string    `bson:"studentEmail"`
	CreatedAt     time.Time `bson:"createdAt"`
}

func toPaymentDoc(p *payment.Payment) paymentDoc {
	return paymentDoc{
		ID:            p.ID.String(),
		TransactionID: p.TransactionID.String(),
		AmountCents:   p.AmountCents,
		ClassID:       p.ClassID.String(),
		ClassName:     p.ClassName,
		StudentEmail:  p.StudentEmail,
		CreatedAt:     p.CreatedAt,
	}
}

func (d paymentDoc) toDomain() (*payment.Payment, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	classID, err := uuid.Parse(d.ClassID)
	if err != nil {
		return nil, err
	}
	return &payment.Payment{
		ID:            id,
		TransactionID: payment.TransactionID(d.TransactionID),
		AmountCents:   d.AmountCents,
		ClassID:       classID,
		ClassName:     d.ClassName,
		StudentEmail:  d.StudentEmail,
		CreatedAt:     d.CreatedAt.UTC(),
	}, nil
}

type enrollmentDoc struct {
	ID              string    `bson:"_id"`
	TransactionID   string    `bson:"transactionId"`
	StudentEmail    string    `bson:"studentEmail"`
	ClassID         string    `bson:"classId"`
	ClassName       string    `bson:"className"`
	ClassImage      string    `bson:"classImage"`
	InstructorName  string    `bson:"instructorName"`
	InstructorEmail string    `bson:"instructorEmail"`
	PriceCents      int64     `bson:"priceCents"`
	AvailableSeat   int       `bson:"availableSeat"`
	CreatedAt       time.Time `bson:"createdAt"`
}

func toEnrollmentDoc(e *enrollment.Enrollment) enrollmentDoc {
	return enrollmentDoc{
		ID:              e.ID.String(),
		TransactionID:   e.TransactionID.String(),
		StudentEmail:    e.StudentEmail,
		ClassID:         e.ClassID.String(),
		ClassName:       e.ClassName,
		ClassImage:      e.ClassImage,
		InstructorName:  e.InstructorName,
		InstructorEmail: e.InstructorEmail,
		PriceCents:      e.PriceCents,
		AvailableSeat:   e.AvailableSeat,
		CreatedAt:       e.CreatedAt,
	}
}

func (d enrollmentDoc) toDomain() (*enrollment.Enrollment, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	classID, err := uuid.Parse(d.ClassID)
	if err != nil {
		return nil, err
	}
	return &enrollment.Enrollment{
		ID:            id,
		TransactionID: payment.TransactionID(d.TransactionID),
		StudentEmail:  d.StudentEmail,
		ClassSnapshot: enrollment.ClassSnapshot{
			ClassID:         classID,
			ClassName:       d.ClassName,
			ClassImage:      d.ClassImage,
			InstructorName:  d.InstructorName,
			InstructorEmail: d.InstructorEmail,
			PriceCents:      d.PriceCents,
			AvailableSeat:   d.AvailableSeat,
		},
		CreatedAt: d.CreatedAt.UTC(),
	}, nil
}

type settlementDoc struct {
	TransactionID   string    `bson:"_id"`
	SelectionID     string    `bson:"selectionId"`
	StudentEmail    string    `bson:"studentEmail"`
	ClassID         string    `bson:"classId"`
	ClassName       string    `bson:"className"`
	ClassImage      string    `bson:"classImage"`
	InstructorName  string    `bson:"instructorName"`
	InstructorEmail string    `bson:"instructorEmail"`
	PriceCents      int64     `bson:"priceCents"`
	AmountCents     int64     `bson:"amountCents"`
	Status          string    `bson:"status"`
	Active          bool      `bson:"active"`
	Stage           int       `bson:"stage"`
	PaymentID       string    `bson:"paymentId,omitempty"`
	EnrollmentID    string    `bson:"enrollmentId,omitempty"`
	SeatsRemaining  int       `bson:"seatsRemaining"`
	Attempts        int       `bson:"attempts"`
	LeaseExpiresAt  time.Time `bson:"leaseExpiresAt"`
	CreatedAt       time.Time `bson:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt"`
}

func toSettlementDoc(s *settlement.Settlement) settlementDoc {
	snap := s.Snapshot
	return settlementDoc{
		TransactionID:   s.TransactionID.String(),
		SelectionID:     snap.SelectionID.String(),
		StudentEmail:    snap.StudentEmail,
		ClassID:         snap.ClassID.String(),
		ClassName:       snap.ClassName,
		ClassImage:      snap.ClassImage,
		InstructorName:  snap.InstructorName,
		InstructorEmail: snap.InstructorEmail,
		PriceCents:      snap.PriceCents,
		AmountCents:     s.AmountCents,
		Status:          string(s.Status),
		Active:          s.Status != settlement.StatusReleased,
		Stage:           int(s.Stage),
		PaymentID:       uuidString(s.PaymentID),
		EnrollmentID:    uuidString(s.EnrollmentID),
		SeatsRemaining:  s.SeatsRemaining,
		Attempts:        s.Attempts,
		LeaseExpiresAt:  s.LeaseExpiresAt,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func (d settlementDoc) toDomain() (*settlement.Settlement, error) {
	selectionID, err := uuid.Parse(d.SelectionID)
	if err != nil {
		return nil, err
	}
	classID, err := uuid.Parse(d.ClassID)
	if err != nil {
		return nil, err
	}
	paymentID, err := parseUUIDPtr(d.PaymentID)
	if err != nil {
		return nil, err
	}
	enrollmentID, err := parseUUIDPtr(d.EnrollmentID)
	if err != nil {
		return nil, err
	}
	return &settlement.Settlement{
		TransactionID: payment.TransactionID(d.TransactionID),
		Snapshot: settlement.Snapshot{
			SelectionID:  selectionID,
			StudentEmail: d.StudentEmail,
			ClassSnapshot: enrollment.ClassSnapshot{
				ClassID:         classID,
				ClassName:       d.ClassName,
				ClassImage:      d.ClassImage,
				InstructorName:  d.InstructorName,
				InstructorEmail: d.InstructorEmail,
				PriceCents:      d.PriceCents,
			},
		},
		AmountCents:    d.AmountCents,
		Status:         settlement.Status(d.Status),
		Stage:          settlement.Stage(d.Stage),
		PaymentID:      paymentID,
		EnrollmentID:   enrollmentID,
		SeatsRemaining: d.SeatsRemaining,
		Attempts:       d.Attempts,
		LeaseExpiresAt: d.LeaseExpiresAt.UTC(),
		CreatedAt:      d.CreatedAt.UTC(),
		UpdatedAt:      d.UpdatedAt.UTC(),
	}, nil
}

func uuidString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}

func parseUUIDPtr(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
