package queries

//go:generate mockgen -source=class.go -destination=../../../tests/mock/queries/class.go -package=queriesmock

import (
	"context"

	"course-enrollment/internal/domain/class"
	"course-enrollment/internal/pkg/errs"

	"github.com/google/uuid"
)

type ClassReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ClassView, error)
	List(ctx context.Context, filter ClassFilter) ([]ClassView, error)
}

type ClassQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ClassView, error)
	List(ctx context.Context, filter ClassFilter) ([]ClassView, error)
}

type classQueriesImpl struct {
	store ClassReadStore
}

func NewClassQueries(store ClassReadStore) ClassQueries {
	return &classQueriesImpl{store: store}
}

func (q *classQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ClassView, error) {
	v, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, markReadErr(err)
	}
	return v, nil
}

func (q *classQueriesImpl) List(ctx context.Context, filter ClassFilter) ([]ClassView, error) {
	if filter.Status != "" {
		if _, err := class.ParseStatus(filter.Status); err != nil {
			return nil, errs.Mark(err, ErrInvalidQuery)
		}
	}
	filter.Limit = clampLimit(filter.Limit)
	rows, err := q.store.List(ctx, filter)
	if err != nil {
		return nil, markReadErr(err)
	}
	return rows, nil
}
