//go:build unit

package events

import (
	"encoding/json"
	"testing"
	"time"

	"course-enrollment/internal/usecase/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSettled(t *testing.T) {
	valid := shared.EnrollmentSettledEvent{
		Type:          shared.EventEnrollmentSettled,
		TransactionID: "txn-1",
		PaymentID:     uuid.New(),
		EnrollmentID:  uuid.New(),
		StudentEmail:  "kim@example.com",
		ClassID:       uuid.New(),
		ClassName:     "Guitar 101",
		AmountCents:   4500,
		SettledAt:     time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC),
	}
	validJSON, err := json.Marshal(valid)
	require.NoError(t, err)

	t.Run("valid payload", func(t *testing.T) {
		got, err := DecodeSettled(validJSON)
		require.NoError(t, err)
		if diff := cmp.Diff(valid, got); diff != "" {
			t.Errorf("event mismatch (-want +got):\n%s", diff)
		}
	})

	tests := []struct {
		name    string
		payload []byte
	}{
		{"not json", []byte("{oops")},
		{"wrong type", []byte(`{"type":"class.created","transactionId":"t","studentEmail":"a@b.c"}`)},
		{"missing transaction", []byte(`{"type":"enrollment.settled","studentEmail":"a@b.c"}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeSettled(tt.payload)
			assert.Error(t, err)
		})
	}
}
