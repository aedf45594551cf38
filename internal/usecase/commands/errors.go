package commands

import (
	"course-enrollment/internal/infra"
	"course-enrollment/internal/pkg/errs"
)

var (
	ErrSeatUnavailable      = errs.New("seat unavailable")
	ErrSelectionNotFound    = errs.New("selection not found")
	ErrClassNotFound        = errs.New("class not found")
	ErrStoreUnavailable     = errs.New("store unavailable")
	ErrSettlementInProgress = errs.New("settlement in progress")
	ErrTransactionConflict  = errs.New("transaction id belongs to another selection")
	ErrSelectionBusy        = errs.New("selection is being settled by another transaction")
	ErrAmountMismatch       = errs.New("amount does not match the selection price")
	ErrInvalidSettlement    = errs.New("invalid settlement request")
	ErrForbidden            = errs.New("forbidden")
	ErrDomainValidation     = errs.New("domain validation error")
	ErrConflict             = errs.New("conflicting state")
)

// storeErr maps an unexpected repository failure. Nothing about the remote
// state is assumed; the caller retries the whole operation.
func storeErr(err error) error {
	return errs.Mark(err, ErrStoreUnavailable)
}

func notFoundOr(err error, sentinel error) error {
	if infra.IsNotFound(err) {
		return errs.Mark(err, sentinel)
	}
	return storeErr(err)
}
