package queries

import (
	"course-enrollment/internal/infra"
	"course-enrollment/internal/pkg/errs"
)

var (
	ErrNotFound         = errs.New("record not found")
	ErrAccessDenied     = errs.New("access denied")
	ErrInvalidQuery     = errs.New("invalid query")
	ErrStoreUnavailable = errs.New("store unavailable")
)

func markReadErr(err error) error {
	if infra.IsNotFound(err) {
		return errs.Mark(err, ErrNotFound)
	}
	return errs.Mark(err, ErrStoreUnavailable)
}
