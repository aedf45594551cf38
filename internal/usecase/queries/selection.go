package queries

//go:generate mockgen -source=selection.go -destination=../../../tests/mock/queries/selection.go -package=queriesmock

import (
	"context"

	"course-enrollment/internal/domain/user"
	"course-enrollment/internal/pkg/errs"
)

type SelectionReadStore interface {
	ListByStudent(ctx context.Context, studentEmail string) ([]SelectionView, error)
}

type SelectionQueries interface {
	ListByStudent(ctx context.Context, caller user.Caller, studentEmail string) ([]SelectionView, error)
}

type selectionQueriesImpl struct {
	store SelectionReadStore
}

func NewSelectionQueries(store SelectionReadStore) SelectionQueries {
	return &selectionQueriesImpl{store: store}
}

func (q *selectionQueriesImpl) ListByStudent(ctx context.Context, caller user.Caller, studentEmail string) ([]SelectionView, error) {
	email, err := user.NewEmail(studentEmail)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidQuery)
	}
	if err := user.RequireOwnerOrAdmin(caller, email.Value()); err != nil {
		return nil, errs.Mark(err, ErrAccessDenied)
	}
	rows, err := q.store.ListByStudent(ctx, email.Value())
	if err != nil {
		return nil, markReadErr(err)
	}
	return rows, nil
}
