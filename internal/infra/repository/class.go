package repository

import (
	"context"

	"course-enrollment/internal/domain/class"
	"course-enrollment/internal/infra"
	"course-enrollment/internal/infra/db"
	"course-enrollment/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	classColumns = `id, name, image_url, instructor_name, instructor_email, price_cents, available_seat, status, created_at, updated_at`

	insertClassSQL = `
INSERT INTO classes (` + classColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	selectClassByIDSQL = `SELECT ` + classColumns + ` FROM classes WHERE id = $1`

	updateClassStatusSQL = `UPDATE classes SET status = $2, updated_at = $3 WHERE id = $1`
)

type ClassRepository struct {
	db db.DBTX
}

func NewClassRepository(db db.DBTX) *ClassRepository {
	return &ClassRepository{db: db}
}

func (r *ClassRepository) Create(ctx context.Context, c *class.Class) error {
	_, err := r.db.Exec(ctx, insertClassSQL,
		c.ID(), c.Name(), c.ImageURL(), c.InstructorName(), c.InstructorEmail(),
		c.PriceCents(), c.AvailableSeat(), c.Status().String(), c.CreatedAt(), c.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create class", err)
	}
	return nil
}

func (r *ClassRepository) FindByID(ctx context.Context, id uuid.UUID) (*class.Class, error) {
	c, err := scanClass(r.db.QueryRow(ctx, selectClassByIDSQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("class not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get class by id", err)
	}
	return c, nil
}

func (r *ClassRepository) UpdateStatus(ctx context.Context, c *class.Class) error {
	tag, err := r.db.Exec(ctx, updateClassStatusSQL, c.ID(), c.Status().String(), c.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to update class status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "class not found", nil)
	}
	return nil
}

func scanClass(row pgx.Row) (*class.Class, error) {
	var (
		id        uuid.UUID
		spec      class.Spec
		seats     int32
		status    string
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(
		&id, &spec.Name, &spec.ImageURL, &spec.InstructorName, &spec.InstructorEmail,
		&spec.PriceCents, &seats, &status, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	spec.AvailableSeat = int(seats)
	return class.Reconstruct(id, spec, class.Status(status),
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt)), nil
}
