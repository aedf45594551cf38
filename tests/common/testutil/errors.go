//go:build unit || e2e

package testutil

import (
	"testing"

	"course-enrollment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

// AssertIs checks err against a sentinel applied with errs.Mark, which the
// standard errors.Is does not see.
func AssertIs(t *testing.T, err, target error) bool {
	t.Helper()
	return assert.Truef(t, errs.Is(err, target), "expected error marked %q, got %v", target, err)
}
