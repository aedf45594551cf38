package repository

import (
	"context"

	"course-enrollment/internal/domain/class"
	"course-enrollment/internal/domain/payment"
	"course-enrollment/internal/infra"
	"course-enrollment/internal/infra/db"
	"course-enrollment/internal/infra/uow"
	"course-enrollment/internal/pkg/pgconv"
	"course-enrollment/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	insertSeatHoldSQL = `
INSERT INTO seat_holds (class_id, hold_key) VALUES ($1, $2)
ON CONFLICT (class_id, hold_key) DO NOTHING`

	decrementSeatSQL = `
UPDATE classes SET available_seat = available_seat - 1, updated_at = now()
WHERE id = $1 AND available_seat > 0
RETURNING available_seat`

	selectSeatSQL = `SELECT available_seat FROM classes WHERE id = $1`

	deleteSeatHoldSQL = `DELETE FROM seat_holds WHERE class_id = $1 AND hold_key = $2`

	incrementSeatSQL = `
UPDATE classes SET available_seat = available_seat + 1, updated_at = now()
WHERE id = $1
RETURNING available_seat`
)

// SeatLedger guards classes.available_seat. The decrement carries its own
// "> 0" predicate, so concurrent reservations serialize on the class row and
// the counter never goes negative; the hold row makes retries with the same
// key harmless.
type SeatLedger struct {
	uow *uow.PostgresUoW
}

func NewSeatLedger(u *uow.PostgresUoW) *SeatLedger {
	return &SeatLedger{uow: u}
}

func (l *SeatLedger) ReserveSeat(ctx context.Context, classID uuid.UUID, holdKey payment.TransactionID) (shared.SeatReservation, error) {
	var res shared.SeatReservation
	err := l.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		tag, err := tx.Exec(ctx, insertSeatHoldSQL, classID, holdKey.String())
		if err != nil {
			err = infra.WrapRepoErr("failed to record seat hold", err)
			if infra.IsKind(err, infra.KindForeignKeyViolated) {
				return infra.NewRepoErr(infra.KindNotFound, "class not found", err)
			}
			return err
		}

		var remaining int32
		if tag.RowsAffected() == 0 {
			if err := tx.QueryRow(ctx, selectSeatSQL, classID).Scan(&remaining); err != nil {
				return infra.WrapRepoErr("failed to read seat count", err)
			}
			res = shared.SeatReservation{Remaining: int(remaining), AlreadyHeld: true}
			return nil
		}

		if err := tx.QueryRow(ctx, decrementSeatSQL, classID).Scan(&remaining); err != nil {
			if pgconv.IsNoRows(err) {
				return class.ErrSeatUnavailable
			}
			return infra.WrapRepoErr("failed to decrement seat", err)
		}
		res = shared.SeatReservation{Remaining: int(remaining)}
		return nil
	})
	if err != nil {
		return shared.SeatReservation{}, err
	}
	return res, nil
}

func (l *SeatLedger) ReleaseSeat(ctx context.Context, classID uuid.UUID, holdKey payment.TransactionID) (bool, error) {
	released := false
	err := l.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		tag, err := tx.Exec(ctx, deleteSeatHoldSQL, classID, holdKey.String())
		if err != nil {
			return infra.WrapRepoErr("failed to delete seat hold", err)
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		var remaining int32
		if err := tx.QueryRow(ctx, incrementSeatSQL, classID).Scan(&remaining); err != nil {
			return infra.WrapRepoErr("failed to increment seat", err)
		}
		released = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return released, nil
}
