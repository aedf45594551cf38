package repository

import (
	"context"

	"course-enrollment/internal/domain/selection"
	"course-enrollment/internal/infra"
	"course-enrollment/internal/infra/db"
	"course-enrollment/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	insertSelectionSQL = `
INSERT INTO selections (id, student_email, class_id, class_name, price_cents, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	selectSelectionByIDSQL = `
SELECT id, student_email, class_id, class_name, price_cents, created_at
FROM selections WHERE id = $1`

	deleteSelectionSQL = `DELETE FROM selections WHERE id = $1`
)

type SelectionRepository struct {
	db db.DBTX
}

func NewSelectionRepository(db db.DBTX) *SelectionRepository {
	return &SelectionRepository{db: db}
}

func (r *SelectionRepository) Create(ctx context.Context, s *selection.Selection) error {
	_, err := r.db.Exec(ctx, insertSelectionSQL,
		s.ID, s.StudentEmail, s.ClassID, s.ClassName, s.PriceCents, s.CreatedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to create selection", err)
	}
	return nil
}

func (r *SelectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*selection.Selection, error) {
	var (
		s         selection.Selection
		createdAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, selectSelectionByIDSQL, id).
		Scan(&s.ID, &s.StudentEmail, &s.ClassID, &s.ClassName, &s.PriceCents, &createdAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("selection not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get selection by id", err)
	}
	s.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	return &s, nil
}

func (r *SelectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteSelectionSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete selection", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "selection not found", nil)
	}
	return nil
}
