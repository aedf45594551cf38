package readstore

import (
	"context"
	"strconv"
	"strings"

	"course-enrollment/internal/infra"
	"course-enrollment/internal/infra/db"
	"course-enrollment/internal/pkg/pgconv"
	"course-enrollment/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const classViewColumns = `id, name, image_url, instructor_name, instructor_email, price_cents,
available_seat, status, created_at, updated_at`

type ClassReadStore struct {
	db db.DBTX
}

func NewClassReadStore(db db.DBTX) *ClassReadStore {
	return &ClassReadStore{db: db}
}

func (r *ClassReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ClassView, error) {
	v, err := scanClassView(r.db.QueryRow(ctx, `SELECT `+classViewColumns+` FROM classes WHERE id = $1`, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("class not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get class view by id", err)
	}
	return v, nil
}

func (r *ClassReadStore) List(ctx context.Context, filter queries.ClassFilter) ([]queries.ClassView, error) {
	var (
		where []string
		args  []any
	)
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, "status = $"+strconv.Itoa(len(args)))
	}
	if filter.InstructorEmail != "" {
		args = append(args, strings.ToLower(filter.InstructorEmail))
		where = append(where, "instructor_email = $"+strconv.Itoa(len(args)))
	}
	sql := `SELECT ` + classViewColumns + ` FROM classes`
	if len(where) > 0 {
		sql += ` WHERE ` + strings.Join(where, " AND ")
	}
	args = append(args, filter.Limit)
	sql += ` ORDER BY created_at DESC, id LIMIT $` + strconv.Itoa(len(args))

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list classes", err)
	}
	defer rows.Close()

	out := make([]queries.ClassView, 0)
	for rows.Next() {
		v, err := scanClassView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan class", err)
		}
		out = append(out, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate classes", err)
	}
	return out, nil
}

func scanClassView(row pgx.Row) (*queries.ClassView, error) {
	var (
		v                  queries.ClassView
		seats              int32
		createdAt, updated pgtype.Timestamptz
	)
	if err := row.Scan(&v.ID, &v.Name, &v.ImageURL, &v.InstructorName, &v.InstructorEmail,
		&v.PriceCents, &seats, &v.Status, &createdAt, &updated); err != nil {
		return nil, err
	}
	v.AvailableSeat = int(seats)
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.UpdatedAt = pgconv.TimeFromPgtype(updated)
	return &v, nil
}
