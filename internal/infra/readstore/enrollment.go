package readstore

import (
	"context"

	"course-enrollment/internal/infra"
	"course-enrollment/internal/infra/db"
	"course-enrollment/internal/pkg/pgconv"
	"course-enrollment/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgtype"
)

const (
	// first-seen fields come from the earliest enrollment of each class
	enrollmentsByClassSQL = `
SELECT class_name,
       COUNT(*) AS total_enrollment,
       (array_agg(class_image ORDER BY created_at, id))[1],
       (array_agg(instructor_name ORDER BY created_at, id))[1],
       (array_agg(instructor_email ORDER BY created_at, id))[1],
       (array_agg(price_cents ORDER BY created_at, id))[1],
       (array_agg(available_seat ORDER BY created_at, id))[1]
FROM enrollments
GROUP BY class_name
ORDER BY total_enrollment DESC, class_name ASC`

	countByInstructorSQL = `SELECT COUNT(*) FROM enrollments WHERE instructor_name = $1`

	enrollmentsByStudentSQL = `
SELECT id, transaction_id, student_email, class_id, class_name, class_image,
       instructor_name, instructor_email, price_cents, available_seat, created_at
FROM enrollments
WHERE student_email = $1
ORDER BY created_at DESC, id`
)

type EnrollmentReadStore struct {
	db db.DBTX
}

func NewEnrollmentReadStore(db db.DBTX) *EnrollmentReadStore {
	return &EnrollmentReadStore{db: db}
}

func (r *EnrollmentReadStore) EnrollmentsByClass(ctx context.Context) ([]queries.ClassEnrollmentView, error) {
	rows, err := r.db.Query(ctx, enrollmentsByClassSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to aggregate enrollments by class", err)
	}
	defer rows.Close()

	out := make([]queries.ClassEnrollmentView, 0)
	for rows.Next() {
		var (
			v     queries.ClassEnrollmentView
			seats int32
		)
		if err := rows.Scan(&v.ClassName, &v.TotalEnrollment, &v.ClassImage,
			&v.InstructorName, &v.InstructorEmail, &v.PriceCents, &seats); err != nil {
			return nil, infra.WrapRepoErr("failed to scan enrollment rollup", err)
		}
		v.AvailableSeat = int(seats)
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate enrollment rollup", err)
	}
	return out, nil
}

func (r *EnrollmentReadStore) CountByInstructor(ctx context.Context, instructorName string) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, countByInstructorSQL, instructorName).Scan(&n); err != nil {
		return 0, infra.WrapRepoErr("failed to count enrollments by instructor", err)
	}
	return n, nil
}

func (r *EnrollmentReadStore) ListByStudent(ctx context.Context, studentEmail string) ([]queries.EnrollmentView, error) {
	rows, err := r.db.Query(ctx, enrollmentsByStudentSQL, studentEmail)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list enrollments by student", err)
	}
	defer rows.Close()

	out := make([]queries.EnrollmentView, 0)
	for rows.Next() {
		var (
			v         queries.EnrollmentView
			seats     int32
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&v.ID, &v.TransactionID, &v.StudentEmail, &v.ClassID, &v.ClassName, &v.ClassImage,
			&v.InstructorName, &v.InstructorEmail, &v.PriceCents, &seats, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan enrollment", err)
		}
		v.AvailableSeat = int(seats)
		v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate enrollments", err)
	}
	return out, nil
}
