package commands

//go:generate mockgen -source=selection.go -destination=../../../tests/mock/commands/selection.go -package=commandsmock

import (
	"context"
	"log/slog"

	"course-enrollment/internal/domain/selection"
	"course-enrollment/internal/domain/user"
	"course-enrollment/internal/infra"
	"course-enrollment/internal/pkg/clock"
	"course-enrollment/internal/pkg/errs"
	"course-enrollment/internal/usecase/shared"

	"github.com/google/uuid"
)

type SelectionCommands interface {
	Create(ctx context.Context, caller user.Caller, classID uuid.UUID) (uuid.UUID, error)
	Remove(ctx context.Context, caller user.Caller, id uuid.UUID) error
}

type selectionUseCaseImpl struct {
	store  shared.Store
	clock  clock.Clock
	logger *slog.Logger
}

func NewSelectionUseCase(store shared.Store, clock clock.Clock, logger *slog.Logger) SelectionCommands {
	return &selectionUseCaseImpl{
		store:  store,
		clock:  clock,
		logger: logger,
	}
}

// Create adds a class to the student's cart. A student holds at most one
// open selection per class and none for a class they are enrolled in.
func (u *selectionUseCaseImpl) Create(ctx context.Context, caller user.Caller, classID uuid.UUID) (uuid.UUID, error) {
	if err := user.RequireRole(caller, user.RoleStudent); err != nil {
		return uuid.Nil, errs.Mark(err, ErrForbidden)
	}

	c, err := u.store.Classes().FindByID(ctx, classID)
	if err != nil {
		return uuid.Nil, notFoundOr(err, ErrClassNotFound)
	}

	enrolled, err := u.store.Enrollments().ExistsForStudent(ctx, caller.Email, classID)
	if err != nil {
		return uuid.Nil, storeErr(err)
	}
	if enrolled {
		return uuid.Nil, errs.Mark(selection.ErrAlreadyEnrolled, ErrConflict)
	}

	sel, err := selection.NewSelection(caller.Email, c, u.clock.Now())
	if err != nil {
		if errs.Is(err, selection.ErrClassNotOpen) {
			return uuid.Nil, errs.Mark(err, ErrConflict)
		}
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	if err := u.store.Selections().Create(ctx, sel); err != nil {
		if infra.IsDuplicateKey(err) {
			return uuid.Nil, errs.Mark(selection.ErrAlreadySelected, ErrConflict)
		}
		return uuid.Nil, storeErr(err)
	}
	return sel.ID, nil
}

func (u *selectionUseCaseImpl) Remove(ctx context.Context, caller user.Caller, id uuid.UUID) error {
	sel, err := u.store.Selections().FindByID(ctx, id)
	if err != nil {
		return notFoundOr(err, ErrSelectionNotFound)
	}
	if err := user.RequireOwnerOrAdmin(caller, sel.StudentEmail); err != nil {
		return errs.Mark(err, ErrForbidden)
	}
	if err := u.store.Selections().Delete(ctx, id); err != nil {
		return notFoundOr(err, ErrSelectionNotFound)
	}
	u.logger.InfoContext(ctx, "selection removed",
		"selection_id", id,
		"class_id", sel.ClassID)
	return nil
}
