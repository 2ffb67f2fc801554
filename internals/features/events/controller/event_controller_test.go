package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artcc_backend/internals/cache/rolecache"
	auditsvc "artcc_backend/internals/features/audit/service"
	"artcc_backend/internals/features/events/model"
	"artcc_backend/internals/features/events/service"
	usermodel "artcc_backend/internals/features/users/model"
)

// stubStore panics on anything a test forgot to override.
type stubStore struct {
	service.Store
	events []model.EventModel
}

func (s *stubStore) ListEvents(_ context.Context, _, _ int, includeClosed bool) ([]model.EventModel, error) {
	var out []model.EventModel
	for _, e := range s.events {
		if includeClosed || e.EventIsOpen {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *stubStore) CountEvents(ctx context.Context, includeClosed bool) (int64, error) {
	events, _ := s.ListEvents(ctx, 0, 0, includeClosed)
	return int64(len(events)), nil
}

func (s *stubStore) GetEvent(_ context.Context, eventID int) (*model.EventModel, error) {
	for _, e := range s.events {
		if e.EventID == eventID {
			copied := e
			return &copied, nil
		}
	}
	return nil, nil
}

type stubUsers struct{}

func (stubUsers) GetUser(_ context.Context, cid int) (*usermodel.UserModel, error) {
	return &usermodel.UserModel{UserCid: cid, UserEmail: "member@example.com", UserRating: usermodel.RatingC1}, nil
}

type noopAudit struct{}

func (noopAudit) Record(context.Context, auditsvc.Actor, string, interface{}, interface{}) {}

type noopNotify struct{}

func (noopNotify) Send(context.Context, []string, string, string) {}

type mapKV map[string]string

func (m mapKV) Get(_ context.Context, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", rolecache.ErrMiss
	}
	return v, nil
}
func (m mapKV) Set(_ context.Context, key, value string, _ time.Duration) error {
	m[key] = value
	return nil
}
func (m mapKV) Del(_ context.Context, key string) error {
	delete(m, key)
	return nil
}

type envelope struct {
	StatusCode  int             `json:"statusCode"`
	Message     string          `json:"message"`
	ResultCount int             `json:"resultCount"`
	TotalCount  int             `json:"totalCount"`
	Data        json.RawMessage `json:"data"`
}

func newTestApp(t *testing.T, store *stubStore, kv mapKV, cid int) *fiber.App {
	t.Helper()

	svc := service.NewEventService(store, stubUsers{}, noopAudit{}, noopNotify{})
	roles := rolecache.NewWithKV(nil, kv)
	ctrl := NewEventController(svc, roles, nil)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if cid != 0 {
			c.Locals("cid", cid)
		}
		return c.Next()
	})
	app.Get("/v1/events", ctrl.GetEvents)
	app.Get("/v1/events/:eventId<int>", ctrl.GetEvent)
	app.Post("/v1/events/registrations", ctrl.CreateRegistration)
	app.Put("/v1/events/assign", ctrl.AssignRegistration)
	return app
}

func decode(t *testing.T, resp io.Reader) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(resp).Decode(&env))
	return env
}

func TestGetEventsHidesClosedFromMembers(t *testing.T) {
	store := &stubStore{events: []model.EventModel{
		{EventID: 1, EventTitle: "Open Night", EventIsOpen: true},
		{EventID: 2, EventTitle: "Draft Event", EventIsOpen: false},
	}}
	kv := mapKV{"roles-1000000": `["CanRegisterForEvents"]`}
	app := newTestApp(t, store, kv, 1000000)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/events", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	env := decode(t, resp.Body)
	assert.Equal(t, 200, env.StatusCode)
	assert.Equal(t, 1, env.ResultCount)
	assert.Equal(t, 1, env.TotalCount)
}

func TestGetEventsShowsClosedToStaff(t *testing.T) {
	store := &stubStore{events: []model.EventModel{
		{EventID: 1, EventIsOpen: true},
		{EventID: 2, EventIsOpen: false},
	}}
	kv := mapKV{"roles-800000": `["EC"]`}
	app := newTestApp(t, store, kv, 800000)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/events", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	env := decode(t, resp.Body)
	assert.Equal(t, 2, env.ResultCount)
}

func TestGetEventNotFoundEnvelope(t *testing.T) {
	app := newTestApp(t, &stubStore{}, mapKV{}, 0)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/events/42", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 404, resp.StatusCode)
	env := decode(t, resp.Body)
	assert.Equal(t, 404, env.StatusCode)
	assert.Contains(t, env.Message, "42")
}

func TestCreateRegistrationRequiresCapability(t *testing.T) {
	kv := mapKV{"roles-1000000": `[]`}
	app := newTestApp(t, &stubStore{}, kv, 1000000)

	req := httptest.NewRequest("POST", "/v1/events/registrations", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 403, resp.StatusCode)
}

func TestCreateRegistrationValidatesBody(t *testing.T) {
	kv := mapKV{"roles-1000000": `["CanRegisterForEvents"]`}
	app := newTestApp(t, &stubStore{}, kv, 1000000)

	req := httptest.NewRequest("POST", "/v1/events/registrations", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 400, resp.StatusCode)
	env := decode(t, resp.Body)
	assert.Equal(t, "Validation failure", env.Message)

	var failures []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &failures))
	assert.NotEmpty(t, failures)
	assert.Contains(t, failures[0], "propertyName")
	assert.Contains(t, failures[0], "errorMessage")
}

func TestAssignRequiresEventStaff(t *testing.T) {
	kv := mapKV{"roles-1000000": `["CanRegisterForEvents"]`}
	app := newTestApp(t, &stubStore{}, kv, 1000000)

	resp, err := app.Test(httptest.NewRequest("PUT", "/v1/events/assign?eventRegistrationId=3", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 403, resp.StatusCode)
}
