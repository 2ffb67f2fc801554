package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"artcc_backend/internals/cache/rolecache"
	"artcc_backend/internals/constants"
	auditsvc "artcc_backend/internals/features/audit/service"
	"artcc_backend/internals/features/events/dto"
	"artcc_backend/internals/features/events/service"
	"artcc_backend/internals/helpers"
	"artcc_backend/internals/helpers/banner"
	authmw "artcc_backend/internals/middlewares/auth"
)

type EventController struct {
	Service *service.EventService
	Roles   *rolecache.Cache
	Banner  banner.Uploader
}

func NewEventController(svc *service.EventService, roles *rolecache.Cache, uploader banner.Uploader) *EventController {
	return &EventController{Service: svc, Roles: roles, Banner: uploader}
}

// canManageEvents gates the staff-only event endpoints.
func (ctrl *EventController) canManageEvents(c *fiber.Ctx) bool {
	ok, err := ctrl.Roles.Validate(c.Context(), authmw.Cid(c), constants.CanEvents)
	if err != nil {
		log.Printf("[WARN] role check failed for cid=%d: %v", authmw.Cid(c), err)
		return false
	}
	return ok
}

/* =========================================
   Events
========================================= */

// POST /v1/events (multipart: fields + optional banner file)
func (ctrl *EventController) CreateEvent(c *fiber.Ctx) error {
	if !ctrl.canManageEvents(c) {
		return helper.JsonForbidden(c, "Forbidden")
	}

	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonValidationFailure(c, helper.BodyParseFailure(err))
	}
	if failures := helper.ValidateStruct(req); failures != nil {
		return helper.JsonValidationFailure(c, failures)
	}

	event := req.ToModel()
	if fh, err := c.FormFile("banner"); err == nil && fh != nil && ctrl.Banner != nil {
		url, upErr := ctrl.Banner.Upload(c.Context(), fh)
		if upErr != nil {
			return helper.JsonServerError(c, upErr)
		}
		event.EventBannerURL = &url
	}

	created, err := ctrl.Service.CreateEvent(c.Context(), auditsvc.ActorFromCtx(c), &event)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Event created", created)
}

// GET /v1/events
func (ctrl *EventController) GetEvents(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 10, 100)
	events, total, err := ctrl.Service.ListEvents(c.Context(), paging.Offset, paging.Size, ctrl.canManageEvents(c))
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, "Events retrieved", len(events), int(total), events)
}

// GET /v1/events/:eventId
func (ctrl *EventController) GetEvent(c *fiber.Ctx) error {
	eventID, err := c.ParamsInt("eventId")
	if err != nil {
		return helper.JsonNotFound(c, "Event not found")
	}
	event, err := ctrl.Service.GetEvent(c.Context(), eventID, ctrl.canManageEvents(c))
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Event retrieved", event)
}

// PUT /v1/events
func (ctrl *EventController) UpdateEvent(c *fiber.Ctx) error {
	if !ctrl.canManageEvents(c) {
		return helper.JsonForbidden(c, "Forbidden")
	}

	var req dto.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonValidationFailure(c, helper.BodyParseFailure(err))
	}
	if failures := helper.ValidateStruct(req); failures != nil {
		return helper.JsonValidationFailure(c, failures)
	}

	event := req.ToModel()
	if fh, err := c.FormFile("banner"); err == nil && fh != nil && ctrl.Banner != nil {
		url, upErr := ctrl.Banner.Upload(c.Context(), fh)
		if upErr != nil {
			return helper.JsonServerError(c, upErr)
		}
		event.EventBannerURL = &url
	}

	updated, err := ctrl.Service.UpdateEvent(c.Context(), auditsvc.ActorFromCtx(c), &event)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Event updated", updated)
}

// DELETE /v1/events/:eventId
func (ctrl *EventController) DeleteEvent(c *fiber.Ctx) error {
	if !ctrl.canManageEvents(c) {
		return helper.JsonForbidden(c, "Forbidden")
	}
	eventID, err := c.ParamsInt("eventId")
	if err != nil {
		return helper.JsonNotFound(c, "Event not found")
	}

	event, err := ctrl.Service.DeleteEvent(c.Context(), auditsvc.ActorFromCtx(c), eventID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if event.EventBannerURL != nil && ctrl.Banner != nil {
		if delErr := ctrl.Banner.Delete(c.Context(), *event.EventBannerURL); delErr != nil {
			log.Printf("[WARN] banner cleanup for event %d: %v", eventID, delErr)
		}
	}
	return helper.JsonOK(c, "Event deleted", event)
}

/* =========================================
   Positions
========================================= */

// POST /v1/events/positions
func (ctrl *EventController) CreatePosition(c *fiber.Ctx) error {
	if !ctrl.canManageEvents(c) {
		return helper.JsonForbidden(c, "Forbidden")
	}

	var req dto.CreateEventPositionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonValidationFailure(c, helper.BodyParseFailure(err))
	}
	if failures := helper.ValidateStruct(req); failures != nil {
		return helper.JsonValidationFailure(c, failures)
	}

	position := req.ToModel()
	created, err := ctrl.Service.CreatePosition(c.Context(), auditsvc.ActorFromCtx(c), &position)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Event position created", created)
}

// GET /v1/events/:eventId/positions
func (ctrl *EventController) GetPositions(c *fiber.Ctx) error {
	eventID, err := c.ParamsInt("eventId")
	if err != nil {
		return helper.JsonNotFound(c, "Event not found")
	}
	positions, err := ctrl.Service.ListPositions(c.Context(), eventID, ctrl.canManageEvents(c))
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, "Event positions retrieved", len(positions), len(positions), positions)
}

// DELETE /v1/events/positions/:eventPositionId
func (ctrl *EventController) DeletePosition(c *fiber.Ctx) error {
	if !ctrl.canManageEvents(c) {
		return helper.JsonForbidden(c, "Forbidden")
	}
	positionID, err := c.ParamsInt("eventPositionId")
	if err != nil {
		return helper.JsonNotFound(c, "Event position not found")
	}

	if err := ctrl.Service.DeletePosition(c.Context(), auditsvc.ActorFromCtx(c), positionID); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Event position deleted", nil)
}

/* =========================================
   Registrations
========================================= */

// POST /v1/events/registrations
func (ctrl *EventController) CreateRegistration(c *fiber.Ctx) error {
	cid := authmw.Cid(c)
	ok, err := ctrl.Roles.Validate(c.Context(), cid, []string{constants.CanRegisterForEvents})
	if err != nil {
		return helper.JsonServerError(c, err)
	}
	if !ok {
		return helper.JsonForbidden(c, "Event registration is disabled for this account")
	}

	var req dto.CreateEventRegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonValidationFailure(c, helper.BodyParseFailure(err))
	}
	if failures := helper.ValidateStruct(req); failures != nil {
		return helper.JsonValidationFailure(c, failures)
	}

	registration := req.ToModel()
	created, err := ctrl.Service.CreateRegistration(c.Context(), auditsvc.ActorFromCtx(c), cid, &registration)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Event registration created", created)
}

// GET /v1/events/:eventId/registration/own
func (ctrl *EventController) GetOwnRegistration(c *fiber.Ctx) error {
	eventID, err := c.ParamsInt("eventId")
	if err != nil {
		return helper.JsonNotFound(c, "Event not found")
	}
	registration, err := ctrl.Service.GetOwnRegistration(c.Context(), eventID, authmw.Cid(c))
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Event registration retrieved", registration)
}

// GET /v1/events/:eventId/registrations
func (ctrl *EventController) GetRegistrations(c *fiber.Ctx) error {
	if !ctrl.canManageEvents(c) {
		return helper.JsonForbidden(c, "Forbidden")
	}
	eventID, err := c.ParamsInt("eventId")
	if err != nil {
		return helper.JsonNotFound(c, "Event not found")
	}
	registrations, err := ctrl.Service.ListRegistrations(c.Context(), eventID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, "Event registrations retrieved", len(registrations), len(registrations), registrations)
}

// PUT /v1/events/assign?eventRegistrationId=
func (ctrl *EventController) AssignRegistration(c *fiber.Ctx) error {
	if !ctrl.canManageEvents(c) {
		return helper.JsonForbidden(c, "Forbidden")
	}
	registrationID := helper.QueryInt(c, "eventRegistrationId")
	if registrationID == 0 {
		return helper.JsonNotFound(c, "Event registration not found")
	}

	registration, err := ctrl.Service.AssignRegistration(c.Context(), auditsvc.ActorFromCtx(c), registrationID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Event registration assigned", registration)
}

// PUT /v1/events/relief?eventId=
func (ctrl *EventController) AssignRelief(c *fiber.Ctx) error {
	if !ctrl.canManageEvents(c) {
		return helper.JsonForbidden(c, "Forbidden")
	}
	eventID := helper.QueryInt(c, "eventId")
	if eventID == 0 {
		return helper.JsonNotFound(c, "Event not found")
	}

	relieved, err := ctrl.Service.AssignRelief(c.Context(), auditsvc.ActorFromCtx(c), eventID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, "Pending registrations assigned as relief", len(relieved), len(relieved), relieved)
}

// DELETE /v1/events/:eventId/registration/own
func (ctrl *EventController) DeleteOwnRegistration(c *fiber.Ctx) error {
	eventID, err := c.ParamsInt("eventId")
	if err != nil {
		return helper.JsonNotFound(c, "Event not found")
	}
	if err := ctrl.Service.DeleteOwnRegistration(c.Context(), auditsvc.ActorFromCtx(c), eventID, authmw.Cid(c)); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Event registration deleted", nil)
}

// DELETE /v1/events/registrations/:eventRegistrationId
func (ctrl *EventController) DeleteRegistration(c *fiber.Ctx) error {
	if !ctrl.canManageEvents(c) {
		return helper.JsonForbidden(c, "Forbidden")
	}
	registrationID, err := c.ParamsInt("eventRegistrationId")
	if err != nil {
		return helper.JsonNotFound(c, "Event registration not found")
	}
	if err := ctrl.Service.DeleteRegistration(c.Context(), auditsvc.ActorFromCtx(c), registrationID); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Event registration deleted", nil)
}
