package repository

import (
	"course-enrollment/internal/infra/uow"
	"course-enrollment/internal/usecase/shared"
)

// PostgresStore maps the record collections onto tables of one database.
type PostgresStore struct {
	classes     *ClassRepository
	selections  *SelectionRepository
	payments    *PaymentRepository
	enrollments *EnrollmentRepository
	settlements *SettlementRepository
	seats       *SeatLedger
}

func NewPostgresStore(u *uow.PostgresUoW) *PostgresStore {
	pool := u.DB()
	return &PostgresStore{
		classes:     NewClassRepository(pool),
		selections:  NewSelectionRepository(pool),
		payments:    NewPaymentRepository(pool),
		enrollments: NewEnrollmentRepository(pool),
		settlements: NewSettlementRepository(pool),
		seats:       NewSeatLedger(u),
	}
}

func (s *PostgresStore) Classes() shared.ClassRepository          { return s.classes }
func (s *PostgresStore) Selections() shared.SelectionRepository   { return s.selections }
func (s *PostgresStore) Payments() shared.PaymentRepository       { return s.payments }
func (s *PostgresStore) Enrollments() shared.EnrollmentRepository { return s.enrollments }
func (s *PostgresStore) Settlements() shared.SettlementRepository { return s.settlements }
func (s *PostgresStore) Seats() shared.SeatLedger                 { return s.seats }
