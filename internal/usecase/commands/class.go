package commands

//go:generate mockgen -source=class.go -destination=../../../tests/mock/commands/class.go -package=commandsmock

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"course-enrollment/internal/domain/class"
	"course-enrollment/internal/domain/user"
	"course-enrollment/internal/pkg/clock"
	"course-enrollment/internal/pkg/errs"
	"course-enrollment/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateClassInput struct {
	Name            string
	ImageURL        string
	InstructorName  string
	InstructorEmail string
	PriceCents      int64
	AvailableSeat   int
}

type ClassCommands interface {
	Create(ctx context.Context, caller user.Caller, in CreateClassInput) (uuid.UUID, error)
	Approve(ctx context.Context, caller user.Caller, id uuid.UUID) error
	Deny(ctx context.Context, caller user.Caller, id uuid.UUID) error
}

type classUseCaseImpl struct {
	classes shared.ClassRepository
	clock   clock.Clock
	logger  *slog.Logger
}

func NewClassUseCase(store shared.Store, clock clock.Clock, logger *slog.Logger) ClassCommands {
	return &classUseCaseImpl{
		classes: store.Classes(),
		clock:   clock,
		logger:  logger,
	}
}

// Create registers a Pending class. Instructors always submit under their
// own email; admins may submit on behalf of an instructor.
func (u *classUseCaseImpl) Create(ctx context.Context, caller user.Caller, in CreateClassInput) (uuid.UUID, error) {
	if err := user.RequireRole(caller, user.RoleInstructor, user.RoleAdmin); err != nil {
		return uuid.Nil, errs.Mark(err, ErrForbidden)
	}
	if caller.Role == user.RoleInstructor || in.InstructorEmail == "" {
		in.InstructorEmail = caller.Email
	}

	c, err := class.NewClass(class.Spec{
		Name:            in.Name,
		ImageURL:        in.ImageURL,
		InstructorName:  in.InstructorName,
		InstructorEmail: in.InstructorEmail,
		PriceCents:      in.PriceCents,
		AvailableSeat:   in.AvailableSeat,
	}, u.clock.Now())
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	if err := u.classes.Create(ctx, c); err != nil {
		return uuid.Nil, storeErr(err)
	}
	u.logger.InfoContext(ctx, "class submitted",
		"class_id", c.ID(),
		"name", c.Name(),
		"instructor_email", c.InstructorEmail())
	return c.ID(), nil
}

func (u *classUseCaseImpl) Approve(ctx context.Context, caller user.Caller, id uuid.UUID) error {
	return u.decide(ctx, caller, id, (*class.Class).Approve)
}

func (u *classUseCaseImpl) Deny(ctx context.Context, caller user.Caller, id uuid.UUID) error {
	return u.decide(ctx, caller, id, (*class.Class).Deny)
}

func (u *classUseCaseImpl) decide(
	ctx context.Context,
	caller user.Caller,
	id uuid.UUID,
	transition func(*class.Class, time.Time) error,
) error {
	if err := user.RequireRole(caller, user.RoleAdmin); err != nil {
		return errs.Mark(err, ErrForbidden)
	}
	c, err := u.classes.FindByID(ctx, id)
	if err != nil {
		return notFoundOr(err, ErrClassNotFound)
	}
	if err := transition(c, u.clock.Now()); err != nil {
		if errors.Is(err, class.ErrInvalidStatusTransition) {
			return errs.Mark(err, ErrConflict)
		}
		return errs.Mark(err, ErrDomainValidation)
	}
	if err := u.classes.UpdateStatus(ctx, c); err != nil {
		return notFoundOr(err, ErrClassNotFound)
	}
	u.logger.InfoContext(ctx, "class status changed",
		"class_id", c.ID(),
		"status", c.Status().String(),
		"admin_id", caller.UserID)
	return nil
}
