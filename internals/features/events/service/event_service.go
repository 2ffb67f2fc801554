package service

import (
	"context"
	"fmt"
	"time"

	"artcc_backend/internals/apperr"
	auditsvc "artcc_backend/internals/features/audit/service"
	"artcc_backend/internals/features/events/model"
	notifsvc "artcc_backend/internals/features/notifications/service"
)

// registrationSlack is how far a requested shift may poke out past the
// event bounds on either side.
const registrationSlack = time.Minute

type EventService struct {
	store  Store
	users  UserStore
	audit  auditsvc.Logger
	notify notifsvc.Notifier
	now    func() time.Time
}

func NewEventService(store Store, users UserStore, audit auditsvc.Logger, notify notifsvc.Notifier) *EventService {
	return &EventService{
		store:  store,
		users:  users,
		audit:  audit,
		notify: notify,
		now:    time.Now,
	}
}

/* =========================================
   Events
========================================= */

// CreateEvent validates the schedule and persists the event. Start/end
// sanity is only checked here, never on update.
func (s *EventService) CreateEvent(ctx context.Context, actor auditsvc.Actor, event *model.EventModel) (*model.EventModel, error) {
	now := s.now().UTC()
	var failures []apperr.FieldFailure
	if !event.EventStart.After(now) {
		failures = append(failures, apperr.FieldFailure{
			PropertyName:   "EventStart",
			AttemptedValue: event.EventStart,
			ErrorMessage:   "Start time must be in the future",
		})
	}
	if event.EventStart.After(event.EventEnd) {
		failures = append(failures, apperr.FieldFailure{
			PropertyName:   "EventStart",
			AttemptedValue: event.EventStart,
			ErrorMessage:   "Start time must be before end time",
		})
	}
	if !event.EventEnd.After(now) {
		failures = append(failures, apperr.FieldFailure{
			PropertyName:   "EventEnd",
			AttemptedValue: event.EventEnd,
			ErrorMessage:   "End time must be in the future",
		})
	}
	if len(failures) > 0 {
		return nil, apperr.Validation(failures...)
	}

	if err := s.store.CreateEvent(ctx, event); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, actor, fmt.Sprintf("Created event '%d'", event.EventID), nil, event)
	return event, nil
}

// GetEvent hides closed events from members without staff visibility.
func (s *EventService) GetEvent(ctx context.Context, eventID int, includeClosed bool) (*model.EventModel, error) {
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil || (!includeClosed && !event.EventIsOpen) {
		return nil, apperr.NotFound("Event '%d' not found", eventID)
	}
	return event, nil
}

func (s *EventService) ListEvents(ctx context.Context, offset, limit int, includeClosed bool) ([]model.EventModel, int64, error) {
	events, err := s.store.ListEvents(ctx, offset, limit, includeClosed)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.store.CountEvents(ctx, includeClosed)
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, actor auditsvc.Actor, event *model.EventModel) (*model.EventModel, error) {
	existing, err := s.store.GetEvent(ctx, event.EventID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperr.NotFound("Event '%d' not found", event.EventID)
	}

	event.EventCreatedAt = existing.EventCreatedAt
	event.EventUpdatedAt = s.now().UTC()
	if err := s.store.SaveEvent(ctx, event); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, actor, fmt.Sprintf("Updated event '%d'", event.EventID), existing, event)
	return event, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, actor auditsvc.Actor, eventID int) (*model.EventModel, error) {
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperr.NotFound("Event '%d' not found", eventID)
	}

	if err := s.store.DeleteEvent(ctx, event); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, actor, fmt.Sprintf("Deleted event '%d'", eventID), event, nil)
	return event, nil
}

/* =========================================
   Positions
========================================= */

func (s *EventService) CreatePosition(ctx context.Context, actor auditsvc.Actor, position *model.EventPositionModel) (*model.EventPositionModel, error) {
	exists, err := s.store.EventExists(ctx, position.EventPositionEventID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Event '%d' not found", position.EventPositionEventID)
	}

	if err := s.store.CreatePosition(ctx, position); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, actor, fmt.Sprintf("Created event position '%d'", position.EventPositionID), nil, position)
	return position, nil
}

func (s *EventService) ListPositions(ctx context.Context, eventID int, includeClosed bool) ([]model.EventPositionModel, error) {
	if _, err := s.GetEvent(ctx, eventID, includeClosed); err != nil {
		return nil, err
	}
	return s.store.ListPositions(ctx, eventID)
}

// DeletePosition removes the position's registrations one at a time,
// each audited and each triggering a position-removed notice, then the
// position itself. A failure partway through leaves the earlier deletes
// committed.
func (s *EventService) DeletePosition(ctx context.Context, actor auditsvc.Actor, positionID int) error {
	position, err := s.store.GetPosition(ctx, positionID)
	if err != nil {
		return err
	}
	if position == nil {
		return apperr.NotFound("Event position '%d' not found", positionID)
	}

	registrations, err := s.store.ListRegistrationsByPosition(ctx, positionID)
	if err != nil {
		return err
	}
	for i := range registrations {
		registration := registrations[i]
		if err := s.store.DeleteRegistration(ctx, &registration); err != nil {
			return err
		}
		s.audit.Record(ctx, actor,
			fmt.Sprintf("Deleted event registration '%d'", registration.EventRegistrationID), registration, nil)
		s.notifyUser(ctx, registration.EventRegistrationUserCid,
			"Event position removed",
			fmt.Sprintf("Position '%s' was removed; your registration was withdrawn.", position.EventPositionName))
	}

	if err := s.store.DeletePosition(ctx, position); err != nil {
		return err
	}
	s.audit.Record(ctx, actor, fmt.Sprintf("Deleted event position '%d'", positionID), position, nil)
	return nil
}

/* =========================================
   Registrations
========================================= */

// CreateRegistration runs the eligibility checks and stores the claim as
// PENDING. The duplicate check short-circuits on its own; rating and
// time-window violations are collected and returned together.
func (s *EventService) CreateRegistration(ctx context.Context, actor auditsvc.Actor, cid int, registration *model.EventRegistrationModel) (*model.EventRegistrationModel, error) {
	event, err := s.store.GetEvent(ctx, registration.EventRegistrationEventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperr.NotFound("Event '%d' not found", registration.EventRegistrationEventID)
	}

	position, err := s.store.GetPosition(ctx, registration.EventRegistrationPositionID)
	if err != nil {
		return nil, err
	}
	if position == nil {
		return nil, apperr.NotFound("Event position '%d' not found", registration.EventRegistrationPositionID)
	}

	user, err := s.users.GetUser(ctx, cid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}

	// The duplicate check deliberately returns alone instead of joining
	// the collected failures below; confirmed as inherited behavior.
	duplicate, err := s.store.HasRegistration(ctx, event.EventID, cid)
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, apperr.Validation(apperr.FieldFailure{
			PropertyName:   "EventRegistrationEventID",
			AttemptedValue: event.EventID,
			ErrorMessage:   fmt.Sprintf("User already has an event registration for event '%d'", event.EventID),
		})
	}

	var failures []apperr.FieldFailure
	if user.UserRating < position.EventPositionMinRating {
		failures = append(failures, apperr.FieldFailure{
			PropertyName:   "UserRating",
			AttemptedValue: user.UserRating,
			ErrorMessage:   fmt.Sprintf("User rating is less than %d", position.EventPositionMinRating),
		})
	}

	windowStart := event.EventStart.Add(-registrationSlack)
	windowEnd := event.EventEnd.Add(registrationSlack)
	if registration.EventRegistrationStart.Before(windowStart) {
		failures = append(failures, apperr.FieldFailure{
			PropertyName:   "EventRegistrationStart",
			AttemptedValue: registration.EventRegistrationStart,
			ErrorMessage: fmt.Sprintf("Registration start '%s' is invalid, must be after event start '%s'",
				registration.EventRegistrationStart.UTC().Format(time.RFC3339), event.EventStart.UTC().Format(time.RFC3339)),
		})
	}
	if registration.EventRegistrationStart.After(windowEnd) {
		failures = append(failures, apperr.FieldFailure{
			PropertyName:   "EventRegistrationStart",
			AttemptedValue: registration.EventRegistrationStart,
			ErrorMessage: fmt.Sprintf("Registration start '%s' is invalid, must be before event end '%s'",
				registration.EventRegistrationStart.UTC().Format(time.RFC3339), event.EventEnd.UTC().Format(time.RFC3339)),
		})
	}
	if registration.EventRegistrationEnd.Before(windowStart) {
		failures = append(failures, apperr.FieldFailure{
			PropertyName:   "EventRegistrationEnd",
			AttemptedValue: registration.EventRegistrationEnd,
			ErrorMessage: fmt.Sprintf("Registration end '%s' is invalid, must be after event start '%s'",
				registration.EventRegistrationEnd.UTC().Format(time.RFC3339), event.EventStart.UTC().Format(time.RFC3339)),
		})
	}
	if registration.EventRegistrationEnd.After(windowEnd) {
		failures = append(failures, apperr.FieldFailure{
			PropertyName:   "EventRegistrationEnd",
			AttemptedValue: registration.EventRegistrationEnd,
			ErrorMessage: fmt.Sprintf("Registration end '%s' is invalid, must be before event end '%s'",
				registration.EventRegistrationEnd.UTC().Format(time.RFC3339), event.EventEnd.UTC().Format(time.RFC3339)),
		})
	}
	if len(failures) > 0 {
		return nil, apperr.Validation(failures...)
	}

	registration.EventRegistrationUserCid = cid
	registration.EventRegistrationStatus = model.RegistrationPending
	if err := s.store.CreateRegistration(ctx, registration); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor,
		fmt.Sprintf("Created event registration '%d'", registration.EventRegistrationID), nil, registration)
	s.notify.Send(ctx, []string{user.UserEmail},
		"Event registration received",
		fmt.Sprintf("Your registration for '%s' was received and is pending assignment.", event.EventTitle))

	return registration, nil
}

func (s *EventService) GetOwnRegistration(ctx context.Context, eventID, cid int) (*model.EventRegistrationModel, error) {
	exists, err := s.store.EventExists(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Event '%d' not found", eventID)
	}

	registration, err := s.store.GetRegistrationForUser(ctx, eventID, cid)
	if err != nil {
		return nil, err
	}
	if registration == nil {
		return nil, apperr.NotFound("Event registration not found")
	}
	return registration, nil
}

// ListRegistrations returns every registration under the event,
// collected through its positions.
func (s *EventService) ListRegistrations(ctx context.Context, eventID int) ([]model.EventRegistrationModel, error) {
	exists, err := s.store.EventExists(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Event '%d' not found", eventID)
	}

	positions, err := s.store.ListPositions(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return s.store.ListRegistrationsByPositions(ctx, positionIDs(positions))
}

// AssignRegistration moves the registration to ASSIGNED and marks its
// position unavailable, both in one transaction. There is no guard
// against the position already being taken; the last assignment wins.
func (s *EventService) AssignRegistration(ctx context.Context, actor auditsvc.Actor, registrationID int) (*model.EventRegistrationModel, error) {
	registration, err := s.store.GetRegistration(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if registration == nil {
		return nil, apperr.NotFound("Event registration '%d' not found", registrationID)
	}

	position, err := s.store.GetPosition(ctx, registration.EventRegistrationPositionID)
	if err != nil {
		return nil, err
	}
	if position == nil {
		return nil, apperr.NotFound("Event position '%d' not found", registration.EventRegistrationPositionID)
	}

	before := *registration
	registration.EventRegistrationStatus = model.RegistrationAssigned
	registration.EventRegistrationUpdatedAt = s.now().UTC()
	position.EventPositionAvailable = false
	if err := s.store.AssignRegistration(ctx, registration, position); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor,
		fmt.Sprintf("Assigned event registration '%d' to event position '%d'", registrationID, position.EventPositionID),
		before, registration)
	s.notifyUser(ctx, registration.EventRegistrationUserCid,
		"Event position assigned",
		fmt.Sprintf("You have been assigned to '%s'.", position.EventPositionName))

	return registration, nil
}

// AssignRelief marks every still-PENDING registration under the event as
// RELIEF, one row and one audit entry at a time.
func (s *EventService) AssignRelief(ctx context.Context, actor auditsvc.Actor, eventID int) ([]model.EventRegistrationModel, error) {
	exists, err := s.store.EventExists(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Event '%d' not found", eventID)
	}

	positions, err := s.store.ListPositions(ctx, eventID)
	if err != nil {
		return nil, err
	}
	pending, err := s.store.ListPendingRegistrationsByPositions(ctx, positionIDs(positions))
	if err != nil {
		return nil, err
	}

	for i := range pending {
		before := pending[i]
		pending[i].EventRegistrationStatus = model.RegistrationRelief
		pending[i].EventRegistrationUpdatedAt = s.now().UTC()
		if err := s.store.SaveRegistration(ctx, &pending[i]); err != nil {
			return nil, err
		}
		s.audit.Record(ctx, actor,
			fmt.Sprintf("Assigned event registration '%d' as relief", pending[i].EventRegistrationID),
			before, pending[i])
		s.notifyUser(ctx, pending[i].EventRegistrationUserCid,
			"Event relief assignment",
			"You have been placed on the relief roster for this event.")
	}

	return pending, nil
}

// DeleteOwnRegistration withdraws the caller's registration for an event.
func (s *EventService) DeleteOwnRegistration(ctx context.Context, actor auditsvc.Actor, eventID, cid int) error {
	registration, err := s.GetOwnRegistration(ctx, eventID, cid)
	if err != nil {
		return err
	}
	return s.deleteRegistration(ctx, actor, registration,
		fmt.Sprintf("User deleted event registration '%d'", registration.EventRegistrationID))
}

// DeleteRegistration is the staff-initiated variant, addressed by
// registration id.
func (s *EventService) DeleteRegistration(ctx context.Context, actor auditsvc.Actor, registrationID int) error {
	registration, err := s.store.GetRegistration(ctx, registrationID)
	if err != nil {
		return err
	}
	if registration == nil {
		return apperr.NotFound("Event registration '%d' not found", registrationID)
	}
	return s.deleteRegistration(ctx, actor, registration,
		fmt.Sprintf("Deleted event registration '%d'", registration.EventRegistrationID))
}

// deleteRegistration removes the row and frees the position in one
// transaction, regardless of what status the registration reached.
func (s *EventService) deleteRegistration(ctx context.Context, actor auditsvc.Actor, registration *model.EventRegistrationModel, action string) error {
	position, err := s.store.GetPosition(ctx, registration.EventRegistrationPositionID)
	if err != nil {
		return err
	}
	if position == nil {
		return apperr.NotFound("Event position not found")
	}

	position.EventPositionAvailable = true
	if err := s.store.ReleaseRegistration(ctx, registration, position); err != nil {
		return err
	}
	s.audit.Record(ctx, actor, action, registration, nil)
	return nil
}

func (s *EventService) notifyUser(ctx context.Context, cid int, subject, body string) {
	user, err := s.users.GetUser(ctx, cid)
	if err != nil || user == nil {
		return
	}
	s.notify.Send(ctx, []string{user.UserEmail}, subject, body)
}

func positionIDs(positions []model.EventPositionModel) []int {
	ids := make([]int, 0, len(positions))
	for _, p := range positions {
		ids = append(ids, p.EventPositionID)
	}
	return ids
}
