package repository

import (
	"context"

	"course-enrollment/internal/domain/payment"
	"course-enrollment/internal/infra"
	"course-enrollment/internal/infra/db"
	"course-enrollment/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

const (
	insertPaymentSQL = `
INSERT INTO payments (id, transaction_id, amount_cents, class_id, class_name, student_email, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	selectPaymentByTxnSQL = `
SELECT id, transaction_id, amount_cents, class_id, class_name, student_email, created_at
FROM payments WHERE transaction_id = $1`
)

// PaymentRepository has no update or delete: payments are permanent facts.
type PaymentRepository struct {
	db db.DBTX
}

func NewPaymentRepository(db db.DBTX) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Append(ctx context.Context, p *payment.Payment) error {
	_, err := r.db.Exec(ctx, insertPaymentSQL,
		p.ID, p.TransactionID.String(), p.AmountCents, p.ClassID, p.ClassName, p.StudentEmail, p.CreatedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to append payment", err)
	}
	return nil
}

func (r *PaymentRepository) FindByTransactionID(ctx context.Context, txn payment.TransactionID) (*payment.Payment, error) {
	var (
		p         payment.Payment
		txnID     string
		createdAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, selectPaymentByTxnSQL, txn.String()).
		Scan(&p.ID, &txnID, &p.AmountCents, &p.ClassID, &p.ClassName, &p.StudentEmail, &createdAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get payment by transaction id", err)
	}
	p.TransactionID = payment.TransactionID(txnID)
	p.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	return &p, nil
}
