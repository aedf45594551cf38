//go:build unit

package queries_test

import (
	"context"
	"testing"

	"course-enrollment/internal/domain/user"
	"course-enrollment/internal/infra"
	"course-enrollment/internal/usecase/queries"
	"course-enrollment/tests/common/authtest"
	"course-enrollment/tests/common/builder"
	"course-enrollment/tests/common/testutil"
	queriesmock "course-enrollment/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestClassQueries_GetByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := queriesmock.NewMockClassReadStore(ctrl)
	q := queries.NewClassQueries(store)
	view := builder.NewClassBuilder().BuildView()

	store.EXPECT().FindByID(gomock.Any(), view.ID).Return(&view, nil)
	got, err := q.GetByID(context.Background(), view.ID)
	require.NoError(t, err)
	assert.Equal(t, view.Name, got.Name)

	missing := uuid.New()
	store.EXPECT().FindByID(gomock.Any(), missing).
		Return(nil, infra.NewRepoErr(infra.KindNotFound, "class not found", nil))
	_, err = q.GetByID(context.Background(), missing)
	testutil.AssertIs(t, err, queries.ErrNotFound)
}

func TestClassQueries_List(t *testing.T) {
	cases := []struct {
		name      string
		filter    queries.ClassFilter
		wantLimit int
		wantErr   error
	}{
		{name: "default limit", filter: queries.ClassFilter{}, wantLimit: queries.DefaultListLimit},
		{name: "limit is capped", filter: queries.ClassFilter{Limit: 10_000}, wantLimit: queries.MaxListLimit},
		{name: "status filter", filter: queries.ClassFilter{Status: "Approved", Limit: 5}, wantLimit: 5},
		{name: "unknown status", filter: queries.ClassFilter{Status: "archived"}, wantErr: queries.ErrInvalidQuery},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := queriesmock.NewMockClassReadStore(ctrl)
			q := queries.NewClassQueries(store)

			if tc.wantErr == nil {
				store.EXPECT().List(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, f queries.ClassFilter) ([]queries.ClassView, error) {
						assert.Equal(t, tc.wantLimit, f.Limit)
						assert.Equal(t, tc.filter.Status, f.Status)
						return []queries.ClassView{}, nil
					})
			}

			_, err := q.List(context.Background(), tc.filter)
			if tc.wantErr != nil {
				testutil.AssertIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestSelectionQueries_ListByStudent(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := queriesmock.NewMockSelectionReadStore(ctrl)
	q := queries.NewSelectionQueries(store)
	amy := authtest.Caller("amy@example.com", user.RoleStudent)

	store.EXPECT().ListByStudent(gomock.Any(), "amy@example.com").
		Return([]queries.SelectionView{{ClassName: "Guitar101", PriceCents: 4900}}, nil)
	rows, err := q.ListByStudent(context.Background(), amy, "amy@example.com")
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = q.ListByStudent(context.Background(), amy, "bob@example.com")
	testutil.AssertIs(t, err, queries.ErrAccessDenied)

	store.EXPECT().ListByStudent(gomock.Any(), "amy@example.com").
		Return(nil, infra.NewRepoErr(infra.KindUnavailable, "down", nil))
	_, err = q.ListByStudent(context.Background(), amy, "amy@example.com")
	testutil.AssertIs(t, err, queries.ErrStoreUnavailable)
}
