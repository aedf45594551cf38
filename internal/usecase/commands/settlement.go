package commands

//go:generate mockgen -source=settlement.go -destination=../../../tests/mock/commands/settlement.go -package=commandsmock

import (
	"context"
	"log/slog"
	"time"

	"course-enrollment/internal/domain/class"
	"course-enrollment/internal/domain/enrollment"
	"course-enrollment/internal/domain/payment"
	"course-enrollment/internal/domain/selection"
	"course-enrollment/internal/domain/settlement"
	"course-enrollment/internal/domain/user"
	"course-enrollment/internal/infra"
	"course-enrollment/internal/pkg/clock"
	"course-enrollment/internal/pkg/errs"
	"course-enrollment/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	policyCompensate  = "compensate"
	policyRollForward = "roll_forward"
)

type SettleInput struct {
	SelectionID   uuid.UUID
	TransactionID string
	AmountCents   int64
}

type SettlementResult struct {
	TransactionID payment.TransactionID
	PaymentID     uuid.UUID
	EnrollmentID  uuid.UUID
	Replayed      bool
}

type ReconcileReport struct {
	Scanned   int
	Completed int
	Released  int
	Failed    int
}

type SettlementCommands interface {
	// Settle converts a paid selection into a payment and an enrollment. The
	// transaction id is the idempotency key: a repeated call returns the
	// first call's ids with Replayed set.
	Settle(ctx context.Context, caller user.Caller, in SettleInput) (*SettlementResult, error)
	// Reconcile resumes settlements whose lease expired mid-flight.
	Reconcile(ctx context.Context, limit int) (ReconcileReport, error)
}

type SettlementOptions struct {
	Lease time.Duration
}

type settlementUseCaseImpl struct {
	store       shared.Store
	publisher   shared.EventPublisher
	invalidator shared.ReportInvalidator
	metrics     shared.SettlementMetrics
	clock       clock.Clock
	logger      *slog.Logger
	lease       time.Duration
}

func NewSettlementUseCase(
	store shared.Store,
	publisher shared.EventPublisher,
	invalidator shared.ReportInvalidator,
	metrics shared.SettlementMetrics,
	clock clock.Clock,
	logger *slog.Logger,
	opts SettlementOptions,
) SettlementCommands {
	lease := opts.Lease
	if lease <= 0 {
		lease = 30 * time.Second
	}
	return &settlementUseCaseImpl{
		store:       store,
		publisher:   publisher,
		invalidator: invalidator,
		metrics:     metrics,
		clock:       clock,
		logger:      logger,
		lease:       lease,
	}
}

func (u *settlementUseCaseImpl) Settle(ctx context.Context, caller user.Caller, in SettleInput) (*SettlementResult, error) {
	start := u.clock.Now()
	res, err := u.settle(ctx, caller, in)
	u.metrics.ObserveSettlement(outcomeOf(res, err), u.clock.Now().Sub(start))
	return res, err
}

func (u *settlementUseCaseImpl) settle(ctx context.Context, caller user.Caller, in SettleInput) (*SettlementResult, error) {
	if err := user.RequireRole(caller, user.RoleStudent, user.RoleAdmin); err != nil {
		return nil, errs.Mark(err, ErrForbidden)
	}
	txn, err := payment.NewTransactionID(in.TransactionID)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidSettlement)
	}
	if in.SelectionID == uuid.Nil {
		return nil, errs.Mark(errs.New("selection id is required"), ErrInvalidSettlement)
	}
	if in.AmountCents <= 0 {
		return nil, errs.Mark(payment.ErrInvalidAmount, ErrInvalidSettlement)
	}

	rec, err := u.store.Settlements().FindByTransactionID(ctx, txn)
	switch {
	case err == nil:
		return u.handleExisting(ctx, caller, in, rec)
	case infra.IsNotFound(err):
		return u.startNew(ctx, caller, in, txn)
	default:
		return nil, storeErr(err)
	}
}

func (u *settlementUseCaseImpl) handleExisting(
	ctx context.Context,
	caller user.Caller,
	in SettleInput,
	rec *settlement.Settlement,
) (*SettlementResult, error) {
	if rec.Snapshot.SelectionID != in.SelectionID {
		return nil, ErrTransactionConflict
	}
	if err := user.RequireOwnerOrAdmin(caller, rec.Snapshot.StudentEmail); err != nil {
		return nil, errs.Mark(err, ErrForbidden)
	}
	if rec.AmountCents != in.AmountCents {
		return nil, ErrAmountMismatch
	}

	switch rec.Status {
	case settlement.StatusCompleted:
		u.logger.InfoContext(ctx, "settlement replayed",
			"transaction_id", rec.TransactionID.String(),
			"enrollment_id", rec.EnrollmentID)
		return replayResult(rec), nil

	case settlement.StatusProcessing:
		if rec.LeaseActive(u.clock.Now()) {
			return nil, ErrSettlementInProgress
		}
		return u.resume(ctx, rec, false)

	case settlement.StatusReleased:
		// nothing of a released attempt survives; start again from the
		// current selection and class
		sel, err := u.store.Selections().FindByID(ctx, in.SelectionID)
		if err != nil {
			return nil, notFoundOr(err, ErrSelectionNotFound)
		}
		snap, err := u.snapshot(ctx, sel)
		if err != nil {
			return nil, err
		}
		if sel.PriceCents != in.AmountCents {
			return nil, ErrAmountMismatch
		}
		rec.Snapshot = snap
		return u.resume(ctx, rec, true)

	default:
		return nil, errs.Newf("unknown settlement status %q", rec.Status)
	}
}

func (u *settlementUseCaseImpl) startNew(
	ctx context.Context,
	caller user.Caller,
	in SettleInput,
	txn payment.TransactionID,
) (*SettlementResult, error) {
	sel, err := u.store.Selections().FindByID(ctx, in.SelectionID)
	if err != nil {
		if !infra.IsNotFound(err) {
			return nil, storeErr(err)
		}
		// a concurrent call with the same transaction id may have consumed it
		rec, findErr := u.store.Settlements().FindByTransactionID(ctx, txn)
		if findErr == nil {
			return u.handleExisting(ctx, caller, in, rec)
		}
		return nil, errs.Mark(err, ErrSelectionNotFound)
	}
	if err := user.RequireOwnerOrAdmin(caller, sel.StudentEmail); err != nil {
		return nil, errs.Mark(err, ErrForbidden)
	}
	if sel.PriceCents != in.AmountCents {
		return nil, ErrAmountMismatch
	}

	snap, err := u.snapshot(ctx, sel)
	if err != nil {
		return nil, err
	}

	rec := settlement.New(txn, snap, in.AmountCents, u.clock.Now(), u.lease)
	if err := u.store.Settlements().Claim(ctx, rec); err != nil {
		if !infra.IsDuplicateKey(err) {
			return nil, storeErr(err)
		}
		existing, findErr := u.store.Settlements().FindByTransactionID(ctx, txn)
		if findErr == nil {
			return u.handleExisting(ctx, caller, in, existing)
		}
		if infra.IsNotFound(findErr) {
			return nil, errs.Mark(err, ErrSelectionBusy)
		}
		return nil, storeErr(findErr)
	}
	return u.run(ctx, rec, true)
}

func (u *settlementUseCaseImpl) snapshot(ctx context.Context, sel *selection.Selection) (settlement.Snapshot, error) {
	c, err := u.store.Classes().FindByID(ctx, sel.ClassID)
	if err != nil {
		return settlement.Snapshot{}, notFoundOr(err, ErrClassNotFound)
	}
	return settlement.Snapshot{
		SelectionID:  sel.ID,
		StudentEmail: sel.StudentEmail,
		ClassSnapshot: enrollment.ClassSnapshot{
			ClassID:         c.ID(),
			ClassName:       c.Name(),
			ClassImage:      c.ImageURL(),
			InstructorName:  c.InstructorName(),
			InstructorEmail: c.InstructorEmail(),
			PriceCents:      sel.PriceCents,
		},
	}, nil
}

// resume takes over a record whose previous attempt is gone. verified tells
// run that this attempt has seen the selection alive.
func (u *settlementUseCaseImpl) resume(ctx context.Context, rec *settlement.Settlement, verified bool) (*SettlementResult, error) {
	now := u.clock.Now()
	rec.Reclaim(now, u.lease)
	ok, err := u.store.Settlements().Reclaim(ctx, rec, now)
	if err != nil {
		if infra.IsDuplicateKey(err) {
			return nil, errs.Mark(err, ErrSelectionBusy)
		}
		return nil, storeErr(err)
	}
	if !ok {
		current, err := u.store.Settlements().FindByTransactionID(ctx, rec.TransactionID)
		if err != nil {
			return nil, storeErr(err)
		}
		if current.IsCompleted() {
			return replayResult(current), nil
		}
		return nil, ErrSettlementInProgress
	}
	u.logger.InfoContext(ctx, "settlement resumed",
		"transaction_id", rec.TransactionID.String(),
		"stage", rec.Stage.String(),
		"attempt", rec.Attempts)
	return u.run(ctx, rec, verified)
}

// run drives the steps from the record's stage. Every step is idempotent
// under the transaction id, so a run may start from any recorded stage.
//
// Failure policy: until the selection is removed a failure is compensated
// (record released first, then the seat hold) and the student may retry
// with the same transaction id. Once the selection is gone the settlement
// only rolls forward: the record keeps its stage with an expired lease and
// is finished by a retry or by Reconcile.
func (u *settlementUseCaseImpl) run(ctx context.Context, rec *settlement.Settlement, verified bool) (*SettlementResult, error) {
	settlements := u.store.Settlements()

	if !rec.Reached(settlement.StageSeatReserved) {
		seat, err := u.store.Seats().ReserveSeat(ctx, rec.Snapshot.ClassID, rec.TransactionID)
		switch {
		case errs.Is(err, class.ErrSeatUnavailable):
			u.releaseRecord(ctx, rec)
			return nil, errs.Mark(err, ErrSeatUnavailable)
		case infra.IsNotFound(err):
			u.releaseRecord(ctx, rec)
			return nil, errs.Mark(err, ErrClassNotFound)
		case err != nil:
			return nil, u.compensate(ctx, rec, "reserve_seat", err)
		}
		if err := rec.RecordSeat(seat.Remaining, u.clock.Now()); err != nil {
			return nil, u.compensate(ctx, rec, "reserve_seat", err)
		}
		if err := settlements.SaveProgress(ctx, rec); err != nil {
			return nil, u.compensate(ctx, rec, "reserve_seat", err)
		}
	}

	if !rec.Reached(settlement.StageSelectionRemoved) {
		err := u.store.Selections().Delete(ctx, rec.Snapshot.SelectionID)
		if err != nil {
			if !infra.IsNotFound(err) {
				return nil, u.compensate(ctx, rec, "remove_selection", err)
			}
			if verified {
				// removed by the student while this attempt was running
				u.metrics.IncStepFailure("remove_selection", policyCompensate)
				if u.undo(ctx, rec, "remove_selection", err) {
					return nil, errs.Mark(err, ErrSelectionNotFound)
				}
				return nil, errs.Mark(err, ErrStoreUnavailable)
			}
			// an earlier attempt already removed it
		}
		if err := rec.Advance(settlement.StageSelectionRemoved, u.clock.Now()); err != nil {
			return nil, u.rollForward(ctx, rec, "remove_selection", err)
		}
		if err := settlements.SaveProgress(ctx, rec); err != nil {
			return nil, u.rollForward(ctx, rec, "remove_selection", err)
		}
	}

	if !rec.Reached(settlement.StagePaymentRecorded) {
		p, err := u.appendPayment(ctx, rec)
		if err != nil {
			return nil, u.rollForward(ctx, rec, "record_payment", err)
		}
		if err := rec.RecordPayment(p.ID, u.clock.Now()); err != nil {
			return nil, u.rollForward(ctx, rec, "record_payment", err)
		}
		if err := settlements.SaveProgress(ctx, rec); err != nil {
			return nil, u.rollForward(ctx, rec, "record_payment", err)
		}
	}

	if !rec.Reached(settlement.StageEnrollmentRecorded) {
		e, err := u.appendEnrollment(ctx, rec)
		if err != nil {
			return nil, u.rollForward(ctx, rec, "record_enrollment", err)
		}
		if err := rec.RecordEnrollment(e.ID, u.clock.Now()); err != nil {
			return nil, u.rollForward(ctx, rec, "record_enrollment", err)
		}
	}

	if err := rec.Complete(u.clock.Now()); err != nil {
		return nil, u.rollForward(ctx, rec, "complete", err)
	}
	if err := settlements.Complete(ctx, rec); err != nil {
		return nil, u.rollForward(ctx, rec, "complete", err)
	}

	u.afterSettled(ctx, rec)
	return &SettlementResult{
		TransactionID: rec.TransactionID,
		PaymentID:     *rec.PaymentID,
		EnrollmentID:  *rec.EnrollmentID,
	}, nil
}

func (u *settlementUseCaseImpl) appendPayment(ctx context.Context, rec *settlement.Settlement) (*payment.Payment, error) {
	p, err := rec.NewPayment(u.clock.Now())
	if err != nil {
		return nil, err
	}
	err = u.store.Payments().Append(ctx, p)
	if err == nil {
		return p, nil
	}
	if infra.IsDuplicateKey(err) {
		return u.store.Payments().FindByTransactionID(ctx, rec.TransactionID)
	}
	return nil, err
}

func (u *settlementUseCaseImpl) appendEnrollment(ctx context.Context, rec *settlement.Settlement) (*enrollment.Enrollment, error) {
	e := rec.NewEnrollment(u.clock.Now())
	err := u.store.Enrollments().Append(ctx, e)
	if err == nil {
		return e, nil
	}
	if infra.IsDuplicateKey(err) {
		return u.store.Enrollments().FindByTransactionID(ctx, rec.TransactionID)
	}
	return nil, err
}

func (u *settlementUseCaseImpl) compensate(ctx context.Context, rec *settlement.Settlement, step string, cause error) error {
	u.metrics.IncStepFailure(step, policyCompensate)
	u.undo(ctx, rec, step, cause)
	return errs.Mark(cause, ErrStoreUnavailable)
}

// undo gives back a settlement whose selection is still in place and reports
// whether the record was released. The record goes before the seat so that a
// failure in between leaks a seat rather than oversells one: a retry with the
// same key finds the hold and does not decrement again. The seat is only
// returned when this attempt still owned the record; otherwise the hold
// belongs to whichever attempt took over.
func (u *settlementUseCaseImpl) undo(ctx context.Context, rec *settlement.Settlement, step string, cause error) bool {
	log := u.logger.With(
		"transaction_id", rec.TransactionID.String(),
		"class_id", rec.Snapshot.ClassID,
		"step", step)

	if ctx.Err() != nil {
		// the caller went away; completed steps stay for the retry
		log.WarnContext(ctx, "settlement interrupted", "error", cause)
		return false
	}
	log.ErrorContext(ctx, "settlement step failed, compensating", "error", cause)

	released, err := u.store.Settlements().Release(ctx, rec, u.clock.Now())
	if err != nil {
		log.ErrorContext(ctx, "failed to release settlement, left for reconciliation", "error", err)
		u.expireLease(ctx, rec)
		return false
	}
	if !released {
		log.WarnContext(ctx, "settlement taken over by a later attempt, seat hold kept",
			"attempt", rec.Attempts)
		return false
	}
	if _, err := u.store.Seats().ReleaseSeat(ctx, rec.Snapshot.ClassID, rec.TransactionID); err != nil {
		log.ErrorContext(ctx, "failed to release seat hold", "error", err)
	}
	return true
}

func (u *settlementUseCaseImpl) rollForward(ctx context.Context, rec *settlement.Settlement, step string, cause error) error {
	u.metrics.IncStepFailure(step, policyRollForward)
	u.logger.ErrorContext(ctx, "settlement step failed, will resume",
		"transaction_id", rec.TransactionID.String(),
		"stage", rec.Stage.String(),
		"step", step,
		"error", cause)
	if ctx.Err() == nil {
		u.expireLease(ctx, rec)
	}
	return errs.Mark(cause, ErrStoreUnavailable)
}

func (u *settlementUseCaseImpl) expireLease(ctx context.Context, rec *settlement.Settlement) {
	if err := u.store.Settlements().ExpireLease(ctx, rec, u.clock.Now()); err != nil {
		u.logger.WarnContext(ctx, "failed to expire settlement lease",
			"transaction_id", rec.TransactionID.String(),
			"error", err)
	}
}

func (u *settlementUseCaseImpl) releaseRecord(ctx context.Context, rec *settlement.Settlement) {
	if _, err := u.store.Settlements().Release(ctx, rec, u.clock.Now()); err != nil {
		u.logger.WarnContext(ctx, "failed to release settlement",
			"transaction_id", rec.TransactionID.String(),
			"error", err)
	}
}

func (u *settlementUseCaseImpl) afterSettled(ctx context.Context, rec *settlement.Settlement) {
	evt := shared.EnrollmentSettledEvent{
		Type:            shared.EventEnrollmentSettled,
		TransactionID:   rec.TransactionID.String(),
		PaymentID:       *rec.PaymentID,
		EnrollmentID:    *rec.EnrollmentID,
		StudentEmail:    rec.Snapshot.StudentEmail,
		ClassID:         rec.Snapshot.ClassID,
		ClassName:       rec.Snapshot.ClassName,
		InstructorName:  rec.Snapshot.InstructorName,
		InstructorEmail: rec.Snapshot.InstructorEmail,
		AmountCents:     rec.AmountCents,
		SettledAt:       rec.UpdatedAt,
	}
	if err := u.publisher.PublishEnrollmentSettled(ctx, evt); err != nil {
		u.logger.WarnContext(ctx, "failed to publish settlement event",
			"transaction_id", evt.TransactionID,
			"error", err)
	}
	if err := u.invalidator.InvalidateEnrollmentReports(ctx); err != nil {
		u.logger.WarnContext(ctx, "failed to invalidate enrollment reports", "error", err)
	}
	u.logger.InfoContext(ctx, "settlement completed",
		"transaction_id", evt.TransactionID,
		"payment_id", evt.PaymentID,
		"enrollment_id", evt.EnrollmentID,
		"seats_remaining", rec.SeatsRemaining)
}

func (u *settlementUseCaseImpl) Reconcile(ctx context.Context, limit int) (ReconcileReport, error) {
	var report ReconcileReport
	now := u.clock.Now()

	stale, err := u.store.Settlements().ListStale(ctx, now, limit)
	if err != nil {
		return report, storeErr(err)
	}
	report.Scanned = len(stale)

	for _, rec := range stale {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		_, err := u.resume(ctx, rec, false)
		outcome := shared.OutcomeResumed
		switch {
		case err == nil:
			report.Completed++
		case errs.Is(err, ErrSeatUnavailable), errs.Is(err, ErrClassNotFound):
			report.Released++
			outcome = shared.OutcomeSeatUnavailable
		case errs.Is(err, ErrSettlementInProgress):
			// picked up by a concurrent retry
			continue
		default:
			report.Failed++
			outcome = shared.OutcomeStoreUnavailable
			u.logger.WarnContext(ctx, "reconcile attempt failed",
				"transaction_id", rec.TransactionID.String(),
				"error", err)
		}
		u.metrics.IncReconciled(outcome)
	}
	return report, nil
}

func replayResult(rec *settlement.Settlement) *SettlementResult {
	res := &SettlementResult{TransactionID: rec.TransactionID, Replayed: true}
	if rec.PaymentID != nil {
		res.PaymentID = *rec.PaymentID
	}
	if rec.EnrollmentID != nil {
		res.EnrollmentID = *rec.EnrollmentID
	}
	return res
}

func outcomeOf(res *SettlementResult, err error) shared.SettlementOutcome {
	switch {
	case err == nil && res.Replayed:
		return shared.OutcomeReplayed
	case err == nil:
		return shared.OutcomeSettled
	case errs.Is(err, ErrSeatUnavailable):
		return shared.OutcomeSeatUnavailable
	case errs.Is(err, ErrStoreUnavailable):
		return shared.OutcomeStoreUnavailable
	default:
		return shared.OutcomeRejected
	}
}
