package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artcc_backend/internals/apperr"
	auditsvc "artcc_backend/internals/features/audit/service"
	"artcc_backend/internals/features/events/model"
	usermodel "artcc_backend/internals/features/users/model"
)

/* =========================================
   In-memory fakes
========================================= */

type fakeStore struct {
	events        map[int]*model.EventModel
	positions     map[int]*model.EventPositionModel
	registrations map[int]*model.EventRegistrationModel
	nextID        int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		events:        map[int]*model.EventModel{},
		positions:     map[int]*model.EventPositionModel{},
		registrations: map[int]*model.EventRegistrationModel{},
		nextID:        1,
	}
}

func (f *fakeStore) id() int {
	id := f.nextID
	f.nextID++
	return id
}

func (f *fakeStore) GetEvent(_ context.Context, eventID int) (*model.EventModel, error) {
	if e, ok := f.events[eventID]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeStore) EventExists(_ context.Context, eventID int) (bool, error) {
	_, ok := f.events[eventID]
	return ok, nil
}

func (f *fakeStore) ListEvents(_ context.Context, offset, limit int, includeClosed bool) ([]model.EventModel, error) {
	var out []model.EventModel
	for _, e := range f.events {
		if includeClosed || e.EventIsOpen {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeStore) CountEvents(_ context.Context, includeClosed bool) (int64, error) {
	var n int64
	for _, e := range f.events {
		if includeClosed || e.EventIsOpen {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) CreateEvent(_ context.Context, event *model.EventModel) error {
	event.EventID = f.id()
	copied := *event
	f.events[event.EventID] = &copied
	return nil
}

func (f *fakeStore) SaveEvent(_ context.Context, event *model.EventModel) error {
	copied := *event
	f.events[event.EventID] = &copied
	return nil
}

func (f *fakeStore) DeleteEvent(_ context.Context, event *model.EventModel) error {
	delete(f.events, event.EventID)
	return nil
}

func (f *fakeStore) GetPosition(_ context.Context, positionID int) (*model.EventPositionModel, error) {
	if p, ok := f.positions[positionID]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeStore) ListPositions(_ context.Context, eventID int) ([]model.EventPositionModel, error) {
	var out []model.EventPositionModel
	for _, p := range f.positions {
		if p.EventPositionEventID == eventID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeStore) CreatePosition(_ context.Context, position *model.EventPositionModel) error {
	position.EventPositionID = f.id()
	copied := *position
	f.positions[position.EventPositionID] = &copied
	return nil
}

func (f *fakeStore) DeletePosition(_ context.Context, position *model.EventPositionModel) error {
	delete(f.positions, position.EventPositionID)
	return nil
}

func (f *fakeStore) GetRegistration(_ context.Context, registrationID int) (*model.EventRegistrationModel, error) {
	if r, ok := f.registrations[registrationID]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeStore) GetRegistrationForUser(_ context.Context, eventID, cid int) (*model.EventRegistrationModel, error) {
	for _, r := range f.registrations {
		if r.EventRegistrationEventID == eventID && r.EventRegistrationUserCid == cid {
			copied := *r
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) HasRegistration(ctx context.Context, eventID, cid int) (bool, error) {
	r, err := f.GetRegistrationForUser(ctx, eventID, cid)
	return r != nil, err
}

func (f *fakeStore) ListRegistrationsByPositions(_ context.Context, positionIDs []int) ([]model.EventRegistrationModel, error) {
	var out []model.EventRegistrationModel
	for _, r := range f.registrations {
		for _, id := range positionIDs {
			if r.EventRegistrationPositionID == id {
				out = append(out, *r)
			}
		}
	}
	return out, nil
}

func (f *fakeStore) ListPendingRegistrationsByPositions(ctx context.Context, positionIDs []int) ([]model.EventRegistrationModel, error) {
	all, err := f.ListRegistrationsByPositions(ctx, positionIDs)
	if err != nil {
		return nil, err
	}
	var out []model.EventRegistrationModel
	for _, r := range all {
		if r.EventRegistrationStatus == model.RegistrationPending {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) ListRegistrationsByPosition(_ context.Context, positionID int) ([]model.EventRegistrationModel, error) {
	var out []model.EventRegistrationModel
	for _, r := range f.registrations {
		if r.EventRegistrationPositionID == positionID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateRegistration(_ context.Context, registration *model.EventRegistrationModel) error {
	registration.EventRegistrationID = f.id()
	copied := *registration
	f.registrations[registration.EventRegistrationID] = &copied
	return nil
}

func (f *fakeStore) SaveRegistration(_ context.Context, registration *model.EventRegistrationModel) error {
	copied := *registration
	f.registrations[registration.EventRegistrationID] = &copied
	return nil
}

func (f *fakeStore) DeleteRegistration(_ context.Context, registration *model.EventRegistrationModel) error {
	delete(f.registrations, registration.EventRegistrationID)
	return nil
}

func (f *fakeStore) AssignRegistration(ctx context.Context, registration *model.EventRegistrationModel, position *model.EventPositionModel) error {
	if err := f.SaveRegistration(ctx, registration); err != nil {
		return err
	}
	copied := *position
	f.positions[position.EventPositionID] = &copied
	return nil
}

func (f *fakeStore) ReleaseRegistration(ctx context.Context, registration *model.EventRegistrationModel, position *model.EventPositionModel) error {
	if err := f.DeleteRegistration(ctx, registration); err != nil {
		return err
	}
	copied := *position
	f.positions[position.EventPositionID] = &copied
	return nil
}

type fakeUserStore struct {
	users map[int]*usermodel.UserModel
}

func (f *fakeUserStore) GetUser(_ context.Context, cid int) (*usermodel.UserModel, error) {
	if u, ok := f.users[cid]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

type recordedAudit struct {
	action string
}

type fakeAudit struct {
	entries []recordedAudit
}

func (f *fakeAudit) Record(_ context.Context, _ auditsvc.Actor, action string, _, _ interface{}) {
	f.entries = append(f.entries, recordedAudit{action: action})
}

type sentMail struct {
	to      []string
	subject string
}

type fakeNotifier struct {
	sent []sentMail
}

func (f *fakeNotifier) Send(_ context.Context, to []string, subject, _ string) {
	f.sent = append(f.sent, sentMail{to: to, subject: subject})
}

/* =========================================
   Fixture
========================================= */

type fixture struct {
	svc    *EventService
	store  *fakeStore
	users  *fakeUserStore
	audit  *fakeAudit
	notify *fakeNotifier
	now    time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newFakeStore()
	users := &fakeUserStore{users: map[int]*usermodel.UserModel{}}
	audit := &fakeAudit{}
	notify := &fakeNotifier{}
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	svc := NewEventService(store, users, audit, notify)
	svc.now = func() time.Time { return now }
	return &fixture{svc: svc, store: store, users: users, audit: audit, notify: notify, now: now}
}

func (fx *fixture) addUser(cid int, rating usermodel.Rating) {
	fx.users.users[cid] = &usermodel.UserModel{
		UserCid:    cid,
		UserEmail:  "member@example.com",
		UserRating: rating,
	}
}

func (fx *fixture) addEvent(start, end time.Time, open bool) *model.EventModel {
	event := &model.EventModel{
		EventTitle:  "Memphis FNO",
		EventHost:   "ZME",
		EventStart:  start,
		EventEnd:    end,
		EventIsOpen: open,
	}
	_ = fx.store.CreateEvent(context.Background(), event)
	return event
}

func (fx *fixture) addPosition(eventID int, minRating usermodel.Rating) *model.EventPositionModel {
	position := &model.EventPositionModel{
		EventPositionEventID:   eventID,
		EventPositionName:      "MEM_TWR",
		EventPositionMinRating: minRating,
		EventPositionAvailable: true,
	}
	_ = fx.store.CreatePosition(context.Background(), position)
	return position
}

var actor = auditsvc.Actor{Cid: 800000, Name: "Test Staff", IP: "localhost"}

/* =========================================
   Events
========================================= */

func TestCreateEventRejectsPastStart(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.svc.CreateEvent(context.Background(), actor, &model.EventModel{
		EventTitle: "Stale",
		EventStart: fx.now.Add(-time.Hour),
		EventEnd:   fx.now.Add(time.Hour),
	})

	ve, ok := apperr.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "EventStart", ve.Failures[0].PropertyName)
}

func TestCreateEventRejectsInvertedWindow(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.svc.CreateEvent(context.Background(), actor, &model.EventModel{
		EventTitle: "Backwards",
		EventStart: fx.now.Add(3 * time.Hour),
		EventEnd:   fx.now.Add(time.Hour),
	})

	ve, ok := apperr.AsValidation(err)
	require.True(t, ok)
	assert.NotEmpty(t, ve.Failures)
}

func TestGetEventHidesClosedFromMembers(t *testing.T) {
	fx := newFixture(t)
	event := fx.addEvent(fx.now.Add(time.Hour), fx.now.Add(3*time.Hour), false)

	_, err := fx.svc.GetEvent(context.Background(), event.EventID, false)
	assert.True(t, apperr.IsNotFound(err))

	got, err := fx.svc.GetEvent(context.Background(), event.EventID, true)
	require.NoError(t, err)
	assert.Equal(t, event.EventID, got.EventID)
}

/* =========================================
   Registration eligibility
========================================= */

func registrationFor(event *model.EventModel, position *model.EventPositionModel) *model.EventRegistrationModel {
	return &model.EventRegistrationModel{
		EventRegistrationEventID:    event.EventID,
		EventRegistrationPositionID: position.EventPositionID,
		EventRegistrationStart:      event.EventStart,
		EventRegistrationEnd:        event.EventEnd,
	}
}

func TestCreateRegistrationHappyPath(t *testing.T) {
	fx := newFixture(t)
	fx.addUser(1000000, usermodel.RatingS3)
	event := fx.addEvent(fx.now.Add(time.Hour), fx.now.Add(3*time.Hour), true)
	position := fx.addPosition(event.EventID, usermodel.RatingS2)

	created, err := fx.svc.CreateRegistration(context.Background(), actor, 1000000, registrationFor(event, position))
	require.NoError(t, err)

	assert.Equal(t, model.RegistrationPending, created.EventRegistrationStatus)
	assert.Equal(t, 1000000, created.EventRegistrationUserCid)
	require.Len(t, fx.notify.sent, 1)
	assert.Equal(t, []string{"member@example.com"}, fx.notify.sent[0].to)
	assert.Len(t, fx.audit.entries, 1)
}

func TestCreateRegistrationDuplicateShortCircuits(t *testing.T) {
	fx := newFixture(t)
	// Rating is too low AND the window is wrong, but the duplicate check
	// fires first and returns alone.
	fx.addUser(1000000, usermodel.RatingOBS)
	event := fx.addEvent(fx.now.Add(time.Hour), fx.now.Add(3*time.Hour), true)
	position := fx.addPosition(event.EventID, usermodel.RatingC1)

	_ = fx.store.CreateRegistration(context.Background(), &model.EventRegistrationModel{
		EventRegistrationEventID:    event.EventID,
		EventRegistrationPositionID: position.EventPositionID,
		EventRegistrationUserCid:    1000000,
		EventRegistrationStatus:     model.RegistrationPending,
	})

	bad := registrationFor(event, position)
	bad.EventRegistrationStart = event.EventStart.Add(-2 * time.Hour)

	_, err := fx.svc.CreateRegistration(context.Background(), actor, 1000000, bad)
	ve, ok := apperr.AsValidation(err)
	require.True(t, ok)
	require.Len(t, ve.Failures, 1)
	assert.Equal(t, "EventRegistrationEventID", ve.Failures[0].PropertyName)
}

func TestCreateRegistrationCollectsRatingAndWindowFailures(t *testing.T) {
	fx := newFixture(t)
	fx.addUser(1000000, usermodel.RatingS1)
	event := fx.addEvent(fx.now.Add(time.Hour), fx.now.Add(3*time.Hour), true)
	position := fx.addPosition(event.EventID, usermodel.RatingC1)

	reg := registrationFor(event, position)
	reg.EventRegistrationStart = event.EventStart.Add(-2 * time.Hour)
	reg.EventRegistrationEnd = event.EventEnd.Add(2 * time.Hour)

	_, err := fx.svc.CreateRegistration(context.Background(), actor, 1000000, reg)
	ve, ok := apperr.AsValidation(err)
	require.True(t, ok)

	props := make([]string, 0, len(ve.Failures))
	for _, f := range ve.Failures {
		props = append(props, f.PropertyName)
	}
	assert.Contains(t, props, "UserRating")
	assert.Contains(t, props, "EventRegistrationStart")
	assert.Contains(t, props, "EventRegistrationEnd")
	assert.Len(t, ve.Failures, 3)
}

func TestCreateRegistrationAllowsOneMinuteSlack(t *testing.T) {
	fx := newFixture(t)
	fx.addUser(1000000, usermodel.RatingC1)
	event := fx.addEvent(fx.now.Add(time.Hour), fx.now.Add(3*time.Hour), true)
	position := fx.addPosition(event.EventID, usermodel.RatingS2)

	reg := registrationFor(event, position)
	reg.EventRegistrationStart = event.EventStart.Add(-30 * time.Second)
	reg.EventRegistrationEnd = event.EventEnd.Add(30 * time.Second)

	_, err := fx.svc.CreateRegistration(context.Background(), actor, 1000000, reg)
	assert.NoError(t, err)
}

func TestCreateRegistrationUnknownEvent(t *testing.T) {
	fx := newFixture(t)
	fx.addUser(1000000, usermodel.RatingC1)

	_, err := fx.svc.CreateRegistration(context.Background(), actor, 1000000, &model.EventRegistrationModel{
		EventRegistrationEventID:    42,
		EventRegistrationPositionID: 7,
	})
	assert.True(t, apperr.IsNotFound(err))
}

/* =========================================
   Assignment workflow
========================================= */

func TestAssignRegistrationFlipsPositionAvailability(t *testing.T) {
	fx := newFixture(t)
	fx.addUser(1000000, usermodel.RatingC1)
	event := fx.addEvent(fx.now.Add(time.Hour), fx.now.Add(3*time.Hour), true)
	position := fx.addPosition(event.EventID, usermodel.RatingS2)

	created, err := fx.svc.CreateRegistration(context.Background(), actor, 1000000, registrationFor(event, position))
	require.NoError(t, err)

	assigned, err := fx.svc.AssignRegistration(context.Background(), actor, created.EventRegistrationID)
	require.NoError(t, err)

	assert.Equal(t, model.RegistrationAssigned, assigned.EventRegistrationStatus)
	stored := fx.store.positions[position.EventPositionID]
	assert.False(t, stored.EventPositionAvailable)
}

func TestAssignReliefOnlyTouchesPending(t *testing.T) {
	fx := newFixture(t)
	fx.addUser(1000000, usermodel.RatingC1)
	fx.addUser(1000001, usermodel.RatingC1)
	fx.addUser(1000002, usermodel.RatingC1)
	event := fx.addEvent(fx.now.Add(time.Hour), fx.now.Add(3*time.Hour), true)
	position := fx.addPosition(event.EventID, usermodel.RatingS2)

	first, err := fx.svc.CreateRegistration(context.Background(), actor, 1000000, registrationFor(event, position))
	require.NoError(t, err)

	// Same position, different users; the duplicate check is per event.
	second := registrationFor(event, position)
	second.EventRegistrationUserCid = 1000001
	_, err = fx.svc.CreateRegistration(context.Background(), actor, 1000001, second)
	require.NoError(t, err)

	_, err = fx.svc.AssignRegistration(context.Background(), actor, first.EventRegistrationID)
	require.NoError(t, err)

	relieved, err := fx.svc.AssignRelief(context.Background(), actor, event.EventID)
	require.NoError(t, err)
	require.Len(t, relieved, 1)
	assert.Equal(t, model.RegistrationRelief, relieved[0].EventRegistrationStatus)

	// The assigned one keeps its status.
	assert.Equal(t, model.RegistrationAssigned,
		fx.store.registrations[first.EventRegistrationID].EventRegistrationStatus)
}

func TestDeleteRegistrationFreesPosition(t *testing.T) {
	fx := newFixture(t)
	fx.addUser(1000000, usermodel.RatingC1)
	event := fx.addEvent(fx.now.Add(time.Hour), fx.now.Add(3*time.Hour), true)
	position := fx.addPosition(event.EventID, usermodel.RatingS2)

	created, err := fx.svc.CreateRegistration(context.Background(), actor, 1000000, registrationFor(event, position))
	require.NoError(t, err)
	_, err = fx.svc.AssignRegistration(context.Background(), actor, created.EventRegistrationID)
	require.NoError(t, err)

	require.NoError(t, fx.svc.DeleteRegistration(context.Background(), actor, created.EventRegistrationID))

	assert.Empty(t, fx.store.registrations)
	assert.True(t, fx.store.positions[position.EventPositionID].EventPositionAvailable)
}

func TestDeleteOwnRegistration(t *testing.T) {
	fx := newFixture(t)
	fx.addUser(1000000, usermodel.RatingC1)
	event := fx.addEvent(fx.now.Add(time.Hour), fx.now.Add(3*time.Hour), true)
	position := fx.addPosition(event.EventID, usermodel.RatingS2)

	_, err := fx.svc.CreateRegistration(context.Background(), actor, 1000000, registrationFor(event, position))
	require.NoError(t, err)

	require.NoError(t, fx.svc.DeleteOwnRegistration(context.Background(), actor, event.EventID, 1000000))
	assert.Empty(t, fx.store.registrations)

	err = fx.svc.DeleteOwnRegistration(context.Background(), actor, event.EventID, 1000000)
	assert.True(t, apperr.IsNotFound(err))
}

func TestDeletePositionCascadesRegistrations(t *testing.T) {
	fx := newFixture(t)
	fx.addUser(1000000, usermodel.RatingC1)
	fx.addUser(1000001, usermodel.RatingC1)
	event := fx.addEvent(fx.now.Add(time.Hour), fx.now.Add(3*time.Hour), true)
	position := fx.addPosition(event.EventID, usermodel.RatingS2)

	_, err := fx.svc.CreateRegistration(context.Background(), actor, 1000000, registrationFor(event, position))
	require.NoError(t, err)
	other := registrationFor(event, position)
	_, err = fx.svc.CreateRegistration(context.Background(), actor, 1000001, other)
	require.NoError(t, err)

	require.NoError(t, fx.svc.DeletePosition(context.Background(), actor, position.EventPositionID))

	assert.Empty(t, fx.store.registrations)
	assert.Empty(t, fx.store.positions)
	// Two registration deletes plus the position delete, all audited.
	assert.GreaterOrEqual(t, len(fx.audit.entries), 3)
	// Each displaced member got a notice on top of the two confirmations.
	assert.Len(t, fx.notify.sent, 4)
}

/* =========================================
   End to end
========================================= */

func TestRegistrationLifecycle(t *testing.T) {
	fx := newFixture(t)
	fx.addUser(1000000, usermodel.RatingC1) // rating 5
	event := fx.addEvent(fx.now.Add(time.Hour), fx.now.Add(3*time.Hour), true)
	position := fx.addPosition(event.EventID, usermodel.RatingS3) // min rating 4

	created, err := fx.svc.CreateRegistration(context.Background(), actor, 1000000, registrationFor(event, position))
	require.NoError(t, err)
	assert.Equal(t, model.RegistrationPending, created.EventRegistrationStatus)

	own, err := fx.svc.GetOwnRegistration(context.Background(), event.EventID, 1000000)
	require.NoError(t, err)
	assert.Equal(t, created.EventRegistrationID, own.EventRegistrationID)

	assigned, err := fx.svc.AssignRegistration(context.Background(), actor, created.EventRegistrationID)
	require.NoError(t, err)
	assert.Equal(t, model.RegistrationAssigned, assigned.EventRegistrationStatus)
	assert.False(t, fx.store.positions[position.EventPositionID].EventPositionAvailable)

	all, err := fx.svc.ListRegistrations(context.Background(), event.EventID)
	require.NoError(t, err)
	require.Len(t, all, 1)

	require.NoError(t, fx.svc.DeleteRegistration(context.Background(), actor, created.EventRegistrationID))
	assert.True(t, fx.store.positions[position.EventPositionID].EventPositionAvailable)
}
