//go:build e2e

package storetest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"course-enrollment/internal/domain/enrollment"
	"course-enrollment/internal/domain/payment"
	"course-enrollment/internal/usecase/queries"
	"course-enrollment/internal/usecase/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunReports checks the enrollment read model against records written
// through the store of the same backend.
func RunReports(t *testing.T, newBackend func(t *testing.T) (shared.Store, queries.EnrollmentReadStore)) {
	t.Run("enrollments by class", func(t *testing.T) {
		store, reads := newBackend(t)
		testEnrollmentsByClass(t, store, reads)
	})
	t.Run("empty rollup", func(t *testing.T) {
		_, reads := newBackend(t)
		rows, err := reads.EnrollmentsByClass(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, rows)
		assert.Empty(t, rows)
	})
}

func testEnrollmentsByClass(t *testing.T, store shared.Store, reads queries.EnrollmentReadStore) {
	ctx := context.Background()
	guitarID, pianoID := uuid.New(), uuid.New()
	guitar := func(image string, seats int) enrollment.ClassSnapshot {
		return enrollment.ClassSnapshot{
			ClassID:         guitarID,
			ClassName:       "Guitar101",
			ClassImage:      image,
			InstructorName:  "Dana Reyes",
			InstructorEmail: "dana@example.com",
			PriceCents:      4900,
			AvailableSeat:   seats,
		}
	}
	piano := enrollment.ClassSnapshot{
		ClassID:         pianoID,
		ClassName:       "Piano201",
		ClassImage:      "piano.png",
		InstructorName:  "Lee Park",
		InstructorEmail: "lee@example.com",
		PriceCents:      7500,
		AvailableSeat:   3,
	}

	// written out of time order: the earliest Guitar101 enrollment goes in second
	rows := []struct {
		snap enrollment.ClassSnapshot
		at   time.Duration
	}{
		{guitar("guitar-v2.png", 8), 2 * time.Minute},
		{guitar("guitar-v1.png", 9), time.Minute},
		{piano, 90 * time.Second},
		{guitar("guitar-v3.png", 7), 3 * time.Minute},
	}
	for i, r := range rows {
		txn := payment.TransactionID(fmt.Sprintf("pi_report_%d", i))
		e := enrollment.NewEnrollment(txn, fmt.Sprintf("student%d@example.com", i), r.snap, now.Add(r.at))
		require.NoError(t, store.Enrollments().Append(ctx, e))
	}

	got, err := reads.EnrollmentsByClass(ctx)
	require.NoError(t, err)

	want := []queries.ClassEnrollmentView{
		{
			ClassName:       "Guitar101",
			TotalEnrollment: 3,
			ClassImage:      "guitar-v1.png",
			InstructorName:  "Dana Reyes",
			InstructorEmail: "dana@example.com",
			PriceCents:      4900,
			AvailableSeat:   9,
		},
		{
			ClassName:       "Piano201",
			TotalEnrollment: 1,
			ClassImage:      "piano.png",
			InstructorName:  "Lee Park",
			InstructorEmail: "lee@example.com",
			PriceCents:      7500,
			AvailableSeat:   3,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("EnrollmentsByClass mismatch (-want +got):\n%s", diff)
	}

	var total int64
	for _, row := range got {
		total += row.TotalEnrollment
	}
	assert.Equal(t, int64(len(rows)), total, "totals add up to the enrollment records")

	n, err := reads.CountByInstructor(ctx, "Dana Reyes")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	n, err = reads.CountByInstructor(ctx, "Lee Park")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = reads.CountByInstructor(ctx, "Nobody")
	require.NoError(t, err)
	assert.Zero(t, n)
}
