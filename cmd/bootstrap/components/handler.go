package components

import (
	"course-enrollment/internal/handler"
	"course-enrollment/internal/handler/api"
	"course-enrollment/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewSettlementHandler,
		api.NewEnrollmentHandler,
		api.NewClassHandler,
		api.NewSelectionHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	settlement *api.SettlementHandler,
	enrollment *api.EnrollmentHandler,
	class *api.ClassHandler,
	selection *api.SelectionHandler,
) handler.Handlers {
	return handler.Handlers{
		Settlement: settlement,
		Enrollment: enrollment,
		Class:      class,
		Selection:  selection,
	}
}
