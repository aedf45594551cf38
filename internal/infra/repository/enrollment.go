package repository

import (
	"context"

	"course-enrollment/internal/domain/enrollment"
	"course-enrollment/internal/domain/payment"
	"course-enrollment/internal/infra"
	"course-enrollment/internal/infra/db"
	"course-enrollment/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	enrollmentColumns = `id, transaction_id, student_email, class_id, class_name, class_image,
instructor_name, instructor_email, price_cents, available_seat, created_at`

	insertEnrollmentSQL = `
INSERT INTO enrollments (` + enrollmentColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	selectEnrollmentByTxnSQL = `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE transaction_id = $1`

	existsEnrollmentSQL = `
SELECT EXISTS (SELECT 1 FROM enrollments WHERE student_email = $1 AND class_id = $2)`
)

type EnrollmentRepository struct {
	db db.DBTX
}

func NewEnrollmentRepository(db db.DBTX) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

func (r *EnrollmentRepository) Append(ctx context.Context, e *enrollment.Enrollment) error {
	_, err := r.db.Exec(ctx, insertEnrollmentSQL,
		e.ID, e.TransactionID.String(), e.StudentEmail, e.ClassID, e.ClassName, e.ClassImage,
		e.InstructorName, e.InstructorEmail, e.PriceCents, e.AvailableSeat, e.CreatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to append enrollment", err)
	}
	return nil
}

func (r *EnrollmentRepository) FindByTransactionID(ctx context.Context, txn payment.TransactionID) (*enrollment.Enrollment, error) {
	e, err := scanEnrollment(r.db.QueryRow(ctx, selectEnrollmentByTxnSQL, txn.String()))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("enrollment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get enrollment by transaction id", err)
	}
	return e, nil
}

func (r *EnrollmentRepository) ExistsForStudent(ctx context.Context, studentEmail string, classID uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, existsEnrollmentSQL, studentEmail, classID).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check enrollment", err)
	}
	return exists, nil
}

func scanEnrollment(row pgx.Row) (*enrollment.Enrollment, error) {
	var (
		e         enrollment.Enrollment
		txnID     string
		seats     int32
		createdAt pgtype.Timestamptz
	)
	if err := row.Scan(
		&e.ID, &txnID, &e.StudentEmail, &e.ClassID, &e.ClassName, &e.ClassImage,
		&e.InstructorName, &e.InstructorEmail, &e.PriceCents, &seats, &createdAt,
	); err != nil {
		return nil, err
	}
	e.TransactionID = payment.TransactionID(txnID)
	e.AvailableSeat = int(seats)
	e.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	return &e, nil
}
