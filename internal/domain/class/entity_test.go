//go:build unit

package class_test

import (
	"testing"
	"time"

	"course-enrollment/internal/domain/class"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func validSpec() class.Spec {
	return class.Spec{
		Name:            "Guitar101",
		ImageURL:        "https://img.example.com/guitar.png",
		InstructorName:  "Jimi",
		InstructorEmail: "Jimi@Example.com",
		PriceCents:      4999,
		AvailableSeat:   10,
	}
}

func TestNewClass(t *testing.T) {
	t.Run("valid submission is pending", func(t *testing.T) {
		c, err := class.NewClass(validSpec(), now)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, c.ID())
		assert.Equal(t, class.StatusPending, c.Status())
		assert.False(t, c.IsOpenForSelection())

		want := validSpec()
		want.InstructorEmail = "jimi@example.com"
		if diff := cmp.Diff(want, c.Spec()); diff != "" {
			t.Errorf("spec mismatch (-want +got):\n%s", diff)
		}
	})

	tests := []struct {
		name   string
		mutate func(*class.Spec)
		errIs  error
	}{
		{name: "zero seats OK", mutate: func(s *class.Spec) { s.AvailableSeat = 0 }},
		{name: "free class OK", mutate: func(s *class.Spec) { s.PriceCents = 0 }},
		{name: "blank name NG", mutate: func(s *class.Spec) { s.Name = "  " }, errIs: class.ErrInvalidName},
		{name: "negative seats NG", mutate: func(s *class.Spec) { s.AvailableSeat = -1 }, errIs: class.ErrNegativeSeats},
		{name: "negative price NG", mutate: func(s *class.Spec) { s.PriceCents = -1 }, errIs: class.ErrNegativePrice},
		{name: "missing instructor NG", mutate: func(s *class.Spec) { s.InstructorName = "" }, errIs: class.ErrInvalidInstructor},
		{name: "bad instructor email NG", mutate: func(s *class.Spec) { s.InstructorEmail = "jimi" }, errIs: class.ErrInvalidInstructor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := validSpec()
			tt.mutate(&spec)
			c, err := class.NewClass(spec, now)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestClassStatusTransitions(t *testing.T) {
	later := now.Add(time.Hour)

	t.Run("approve from pending", func(t *testing.T) {
		c, _ := class.NewClass(validSpec(), now)
		require.NoError(t, c.Approve(later))
		assert.Equal(t, class.StatusApproved, c.Status())
		assert.Equal(t, later, c.UpdatedAt())
		assert.True(t, c.IsOpenForSelection())
	})

	t.Run("deny from pending", func(t *testing.T) {
		c, _ := class.NewClass(validSpec(), now)
		require.NoError(t, c.Deny(later))
		assert.Equal(t, class.StatusDenied, c.Status())
	})

	t.Run("decided classes cannot change", func(t *testing.T) {
		c, _ := class.NewClass(validSpec(), now)
		require.NoError(t, c.Approve(later))
		assert.ErrorIs(t, c.Deny(later), class.ErrInvalidStatusTransition)
		assert.ErrorIs(t, c.Approve(later), class.ErrInvalidStatusTransition)
		assert.Equal(t, class.StatusApproved, c.Status())
	})
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"Pending", "Approved", "Denied"} {
		st, err := class.ParseStatus(s)
		require.NoError(t, err)
		assert.Equal(t, s, st.String())
	}
	_, err := class.ParseStatus("approved")
	assert.ErrorIs(t, err, class.ErrInvalidStatus)
}
