package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"artcc_backend/internals/cache/rolecache"
	auditsvc "artcc_backend/internals/features/audit/service"
	eventcontroller "artcc_backend/internals/features/events/controller"
	eventservice "artcc_backend/internals/features/events/service"
	notifsvc "artcc_backend/internals/features/notifications/service"
	"artcc_backend/internals/helpers/banner"
	"artcc_backend/internals/middlewares"
	authmw "artcc_backend/internals/middlewares/auth"
)

// =======================
// Event Routes
// =======================
func EventRoutes(api fiber.Router, db *gorm.DB, roles *rolecache.Cache, uploader banner.Uploader) {
	svc := eventservice.NewEventService(
		eventservice.NewGormStore(db),
		eventservice.NewGormUserStore(db),
		auditsvc.NewRecorder(db),
		notifsvc.NewEmailLogNotifier(db),
	)
	ctrl := eventcontroller.NewEventController(svc, roles, uploader)

	events := api.Group("/events")

	// Member-visible reads. Auth is optional; staff tokens also see
	// closed events.
	events.Get("/", authmw.AuthOptional(), ctrl.GetEvents)
	events.Get("/:eventId<int>", authmw.AuthOptional(), ctrl.GetEvent)
	events.Get("/:eventId<int>/positions", authmw.AuthOptional(), ctrl.GetPositions)

	// Member self-service registration.
	events.Post("/registrations", authmw.AuthRequired(), middlewares.EventWriteRateLimiter(), ctrl.CreateRegistration)
	events.Get("/:eventId<int>/registration/own", authmw.AuthRequired(), ctrl.GetOwnRegistration)
	events.Delete("/:eventId<int>/registration/own", authmw.AuthRequired(), ctrl.DeleteOwnRegistration)

	// Staff-only management.
	events.Post("/", authmw.AuthRequired(), middlewares.EventWriteRateLimiter(), ctrl.CreateEvent)
	events.Put("/", authmw.AuthRequired(), middlewares.EventWriteRateLimiter(), ctrl.UpdateEvent)
	events.Delete("/:eventId<int>", authmw.AuthRequired(), ctrl.DeleteEvent)

	events.Post("/positions", authmw.AuthRequired(), ctrl.CreatePosition)
	events.Delete("/positions/:eventPositionId<int>", authmw.AuthRequired(), ctrl.DeletePosition)

	events.Get("/:eventId<int>/registrations", authmw.AuthRequired(), ctrl.GetRegistrations)
	events.Put("/assign", authmw.AuthRequired(), ctrl.AssignRegistration)
	events.Put("/relief", authmw.AuthRequired(), ctrl.AssignRelief)
	events.Delete("/registrations/:eventRegistrationId<int>", authmw.AuthRequired(), ctrl.DeleteRegistration)
}
