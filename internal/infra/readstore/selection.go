package readstore

import (
	"context"

	"course-enrollment/internal/infra"
	"course-enrollment/internal/infra/db"
	"course-enrollment/internal/pkg/pgconv"
	"course-enrollment/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgtype"
)

const selectionsByStudentSQL = `
SELECT id, student_email, class_id, class_name, price_cents, created_at
FROM selections
WHERE student_email = $1
ORDER BY created_at DESC, id`

type SelectionReadStore struct {
	db db.DBTX
}

func NewSelectionReadStore(db db.DBTX) *SelectionReadStore {
	return &SelectionReadStore{db: db}
}

func (r *SelectionReadStore) ListByStudent(ctx context.Context, studentEmail string) ([]queries.SelectionView, error) {
	rows, err := r.db.Query(ctx, selectionsByStudentSQL, studentEmail)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list selections", err)
	}
	defer rows.Close()

	out := make([]queries.SelectionView, 0)
	for rows.Next() {
		var (
			v         queries.SelectionView
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&v.ID, &v.StudentEmail, &v.ClassID, &v.ClassName, &v.PriceCents, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan selection", err)
		}
		v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate selections", err)
	}
	return out, nil
}
