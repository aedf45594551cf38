package repository

import (
	"context"
	"time"

	"course-enrollment/internal/domain/payment"
	"course-enrollment/internal/domain/settlement"
	"course-enrollment/internal/infra"
	"course-enrollment/internal/infra/db"
	"course-enrollment/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	settlementColumns = `transaction_id, selection_id, student_email, class_id, class_name, class_image,
instructor_name, instructor_email, price_cents, amount_cents, status, stage, payment_id, enrollment_id,
seats_remaining, attempts, lease_expires_at, created_at, updated_at`

	insertSettlementSQL = `
INSERT INTO settlements (` + settlementColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

	selectSettlementSQL = `SELECT ` + settlementColumns + ` FROM settlements WHERE transaction_id = $1`

	reclaimSettlementSQL = `
UPDATE settlements SET
    selection_id = $2, student_email = $3, class_id = $4, class_name = $5, class_image = $6,
    instructor_name = $7, instructor_email = $8, price_cents = $9, amount_cents = $10,
    status = 'processing', stage = $11, attempts = $12, lease_expires_at = $13, updated_at = $14
WHERE transaction_id = $1 AND attempts = $12 - 1
  AND (status = 'released' OR (status = 'processing' AND lease_expires_at <= $14))`

	saveSettlementProgressSQL = `
UPDATE settlements
SET stage = $2, payment_id = $3, enrollment_id = $4, seats_remaining = $5, updated_at = $6
WHERE transaction_id = $1 AND status = 'processing' AND attempts = $7`

	completeSettlementSQL = `
UPDATE settlements
SET status = 'completed', stage = $2, payment_id = $3, enrollment_id = $4, updated_at = $5
WHERE transaction_id = $1 AND status = 'processing' AND attempts = $6`

	releaseSettlementSQL = `
UPDATE settlements SET status = 'released', stage = 0, updated_at = $2
WHERE transaction_id = $1 AND status = 'processing' AND attempts = $3`

	expireSettlementLeaseSQL = `
UPDATE settlements SET lease_expires_at = $2, updated_at = $2
WHERE transaction_id = $1 AND status = 'processing' AND attempts = $3`

	selectStaleSettlementsSQL = `SELECT ` + settlementColumns + ` FROM settlements
WHERE status = 'processing' AND lease_expires_at <= $1
ORDER BY lease_expires_at
LIMIT $2`
)

type SettlementRepository struct {
	db db.DBTX
}

func NewSettlementRepository(db db.DBTX) *SettlementRepository {
	return &SettlementRepository{db: db}
}

func (r *SettlementRepository) Claim(ctx context.Context, s *settlement.Settlement) error {
	snap := s.Snapshot
	_, err := r.db.Exec(ctx, insertSettlementSQL,
		s.TransactionID.String(), snap.SelectionID, snap.StudentEmail, snap.ClassID, snap.ClassName, snap.ClassImage,
		snap.InstructorName, snap.InstructorEmail, snap.PriceCents, s.AmountCents, string(s.Status), int16(s.Stage),
		pgconv.UUIDPtrToPgtype(s.PaymentID), pgconv.UUIDPtrToPgtype(s.EnrollmentID),
		s.SeatsRemaining, s.Attempts, s.LeaseExpiresAt, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to claim settlement", err)
	}
	return nil
}

func (r *SettlementRepository) FindByTransactionID(ctx context.Context, txn payment.TransactionID) (*settlement.Settlement, error) {
	s, err := scanSettlement(r.db.QueryRow(ctx, selectSettlementSQL, txn.String()))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("settlement not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get settlement", err)
	}
	return s, nil
}

func (r *SettlementRepository) Reclaim(ctx context.Context, s *settlement.Settlement, now time.Time) (bool, error) {
	snap := s.Snapshot
	tag, err := r.db.Exec(ctx, reclaimSettlementSQL,
		s.TransactionID.String(), snap.SelectionID, snap.StudentEmail, snap.ClassID, snap.ClassName, snap.ClassImage,
		snap.InstructorName, snap.InstructorEmail, snap.PriceCents, s.AmountCents,
		int16(s.Stage), s.Attempts, s.LeaseExpiresAt, now,
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to reclaim settlement", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *SettlementRepository) SaveProgress(ctx context.Context, s *settlement.Settlement) error {
	tag, err := r.db.Exec(ctx, saveSettlementProgressSQL,
		s.TransactionID.String(), int16(s.Stage),
		pgconv.UUIDPtrToPgtype(s.PaymentID), pgconv.UUIDPtrToPgtype(s.EnrollmentID),
		s.SeatsRemaining, s.UpdatedAt, s.Attempts,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to save settlement progress", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "processing settlement not found", nil)
	}
	return nil
}

func (r *SettlementRepository) Complete(ctx context.Context, s *settlement.Settlement) error {
	tag, err := r.db.Exec(ctx, completeSettlementSQL,
		s.TransactionID.String(), int16(s.Stage),
		pgconv.UUIDPtrToPgtype(s.PaymentID), pgconv.UUIDPtrToPgtype(s.EnrollmentID), s.UpdatedAt, s.Attempts,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to complete settlement", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "processing settlement not found", nil)
	}
	return nil
}

func (r *SettlementRepository) Release(ctx context.Context, s *settlement.Settlement, now time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, releaseSettlementSQL, s.TransactionID.String(), now, s.Attempts)
	if err != nil {
		return false, infra.WrapRepoErr("failed to release settlement", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *SettlementRepository) ExpireLease(ctx context.Context, s *settlement.Settlement, now time.Time) error {
	if _, err := r.db.Exec(ctx, expireSettlementLeaseSQL, s.TransactionID.String(), now, s.Attempts); err != nil {
		return infra.WrapRepoErr("failed to expire settlement lease", err)
	}
	return nil
}

func (r *SettlementRepository) ListStale(ctx context.Context, now time.Time, limit int) ([]*settlement.Settlement, error) {
	rows, err := r.db.Query(ctx, selectStaleSettlementsSQL, now, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list stale settlements", err)
	}
	defer rows.Close()

	var out []*settlement.Settlement
	for rows.Next() {
		s, err := scanSettlement(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan settlement", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate settlements", err)
	}
	return out, nil
}

func scanSettlement(row pgx.Row) (*settlement.Settlement, error) {
	var (
		s                       settlement.Settlement
		txnID, status           string
		stage                   int16
		paymentID, enrollmentID pgtype.UUID
		seats, attempts         int32
		lease, created, updated pgtype.Timestamptz
	)
	snap := &s.Snapshot
	if err := row.Scan(
		&txnID, &snap.SelectionID, &snap.StudentEmail, &snap.ClassID, &snap.ClassName, &snap.ClassImage,
		&snap.InstructorName, &snap.InstructorEmail, &snap.PriceCents, &s.AmountCents, &status, &stage,
		&paymentID, &enrollmentID, &seats, &attempts, &lease, &created, &updated,
	); err != nil {
		return nil, err
	}
	s.TransactionID = payment.TransactionID(txnID)
	s.Status = settlement.Status(status)
	s.Stage = settlement.Stage(stage)
	s.PaymentID = pgconv.UUIDPtrFromPgtype(paymentID)
	s.EnrollmentID = pgconv.UUIDPtrFromPgtype(enrollmentID)
	s.SeatsRemaining = int(seats)
	s.Attempts = int(attempts)
	s.LeaseExpiresAt = pgconv.TimeFromPgtype(lease)
	s.CreatedAt = pgconv.TimeFromPgtype(created)
	s.UpdatedAt = pgconv.TimeFromPgtype(updated)
	return &s, nil
}
