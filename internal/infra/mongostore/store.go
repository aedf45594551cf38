package mongostore

import (
	"course-enrollment/internal/usecase/shared"

	"go.mongodb.org/mongo-driver/mongo"
)

// Store maps the record collections onto collections of one database.
type Store struct {
	classes     *ClassRepository
	selections  *SelectionRepository
	payments    *PaymentRepository
	enrollments *EnrollmentRepository
	settlements *SettlementRepository
	seats       *SeatLedger
}

func NewStore(db *mongo.Database) *Store {
	return &Store{
		classes:     NewClassRepository(db),
		selections:  NewSelectionRepository(db),
		payments:    NewPaymentRepository(db),
		enrollments: NewEnrollmentRepository(db),
		settlements: NewSettlementRepository(db),
		seats:       NewSeatLedger(db),
	}
}

func (s *Store) Classes() shared.ClassRepository          { return s.classes }
func (s *Store) Selections() shared.SelectionRepository   { return s.selections }
func (s *Store) Payments() shared.PaymentRepository       { return s.payments }
func (s *Store) Enrollments() shared.EnrollmentRepository { return s.enrollments }
func (s *Store) Settlements() shared.SettlementRepository { return s.settlements }
func (s *Store) Seats() shared.SeatLedger                 { return s.seats }
