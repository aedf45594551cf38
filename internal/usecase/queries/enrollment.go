package queries

//go:generate mockgen -source=enrollment.go -destination=../../../tests/mock/queries/enrollment.go -package=queriesmock

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"course-enrollment/internal/domain/user"
	"course-enrollment/internal/pkg/errs"

	"golang.org/x/sync/singleflight"
)

const enrollmentsByClassKey = "enrollments:by-class"

type EnrollmentReadStore interface {
	EnrollmentsByClass(ctx context.Context) ([]ClassEnrollmentView, error)
	CountByInstructor(ctx context.Context, instructorName string) (int64, error)
	ListByStudent(ctx context.Context, studentEmail string) ([]EnrollmentView, error)
}

// ReportCache holds the per-class rollup under a generation that every
// invalidation advances. Get reports the current generation, on a miss too;
// Set files rows under the generation they were read in, so rows scanned
// before an invalidation are never served after it.
type ReportCache interface {
	GetEnrollmentsByClass(ctx context.Context) (rows []ClassEnrollmentView, generation int64, ok bool, err error)
	SetEnrollmentsByClass(ctx context.Context, generation int64, rows []ClassEnrollmentView) error
}

type EnrollmentQueries interface {
	EnrollmentsByClass(ctx context.Context) ([]ClassEnrollmentView, error)
	TotalEnrolledStudents(ctx context.Context, instructorName string) (int64, error)
	ListByStudent(ctx context.Context, caller user.Caller, studentEmail string) ([]EnrollmentView, error)
}

type enrollmentQueriesImpl struct {
	store  EnrollmentReadStore
	cache  ReportCache
	group  singleflight.Group
	logger *slog.Logger
}

func NewEnrollmentQueries(store EnrollmentReadStore, cache ReportCache, logger *slog.Logger) EnrollmentQueries {
	return &enrollmentQueriesImpl{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// EnrollmentsByClass serves the rollup from cache when possible. Concurrent
// misses within one cache generation share one scan of the enrollment
// collection.
func (q *enrollmentQueriesImpl) EnrollmentsByClass(ctx context.Context) ([]ClassEnrollmentView, error) {
	cacheable := false
	var generation int64
	if q.cache != nil {
		rows, gen, ok, err := q.cache.GetEnrollmentsByClass(ctx)
		switch {
		case err != nil:
			q.logger.WarnContext(ctx, "report cache read failed", "error", err)
		case ok:
			return rows, nil
		default:
			cacheable, generation = true, gen
		}
	}

	key := enrollmentsByClassKey + ":" + strconv.FormatInt(generation, 10)
	if !cacheable {
		key = enrollmentsByClassKey + ":uncached"
	}
	v, err, _ := q.group.Do(key, func() (any, error) {
		// shared by every waiter, so one caller's cancellation must not fail the rest
		ctx := context.WithoutCancel(ctx)
		rows, err := q.store.EnrollmentsByClass(ctx)
		if err != nil {
			return nil, err
		}
		if cacheable {
			if err := q.cache.SetEnrollmentsByClass(ctx, generation, rows); err != nil {
				q.logger.WarnContext(ctx, "report cache write failed", "error", err)
			}
		}
		return rows, nil
	})
	if err != nil {
		return nil, markReadErr(err)
	}
	rows := v.([]ClassEnrollmentView)
	out := make([]ClassEnrollmentView, len(rows))
	copy(out, rows)
	return out, nil
}

func (q *enrollmentQueriesImpl) TotalEnrolledStudents(ctx context.Context, instructorName string) (int64, error) {
	name := strings.TrimSpace(instructorName)
	if name == "" {
		return 0, errs.Mark(errs.New("instructor name is required"), ErrInvalidQuery)
	}
	n, err := q.store.CountByInstructor(ctx, name)
	if err != nil {
		return 0, markReadErr(err)
	}
	return n, nil
}

func (q *enrollmentQueriesImpl) ListByStudent(ctx context.Context, caller user.Caller, studentEmail string) ([]EnrollmentView, error) {
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
