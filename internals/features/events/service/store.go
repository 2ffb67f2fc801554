package service

import (
	"context"

	"artcc_backend/internals/features/events/model"
	usermodel "artcc_backend/internals/features/users/model"
)

// Store is the persistence surface of the event workflow. Lookups return
// (nil, nil) when the row is absent so callers decide which not-found
// error to surface.
type Store interface {
	GetEvent(ctx context.Context, eventID int) (*model.EventModel, error)
	EventExists(ctx context.Context, eventID int) (bool, error)
	ListEvents(ctx context.Context, offset, limit int, includeClosed bool) ([]model.EventModel, error)
	CountEvents(ctx context.Context, includeClosed bool) (int64, error)
	CreateEvent(ctx context.Context, event *model.EventModel) error
	SaveEvent(ctx context.Context, event *model.EventModel) error
	DeleteEvent(ctx context.Context, event *model.EventModel) error

	GetPosition(ctx context.Context, positionID int) (*model.EventPositionModel, error)
	ListPositions(ctx context.Context, eventID int) ([]model.EventPositionModel, error)
	CreatePosition(ctx context.Context, position *model.EventPositionModel) error
	DeletePosition(ctx context.Context, position *model.EventPositionModel) error

	GetRegistration(ctx context.Context, registrationID int) (*model.EventRegistrationModel, error)
	GetRegistrationForUser(ctx context.Context, eventID, cid int) (*model.EventRegistrationModel, error)
	HasRegistration(ctx context.Context, eventID, cid int) (bool, error)
	ListRegistrationsByPositions(ctx context.Context, positionIDs []int) ([]model.EventRegistrationModel, error)
	ListPendingRegistrationsByPositions(ctx context.Context, positionIDs []int) ([]model.EventRegistrationModel, error)
	ListRegistrationsByPosition(ctx context.Context, positionID int) ([]model.EventRegistrationModel, error)
	CreateRegistration(ctx context.Context, registration *model.EventRegistrationModel) error
	SaveRegistration(ctx context.Context, registration *model.EventRegistrationModel) error
	DeleteRegistration(ctx context.Context, registration *model.EventRegistrationModel) error

	// AssignRegistration persists the ASSIGNED status and the position's
	// availability flip in a single transaction.
	AssignRegistration(ctx context.Context, registration *model.EventRegistrationModel, position *model.EventPositionModel) error
	// ReleaseRegistration deletes the registration and frees its position
	// in a single transaction.
	ReleaseRegistration(ctx context.Context, registration *model.EventRegistrationModel, position *model.EventPositionModel) error
}

// UserStore is the slice of the users feature the workflow depends on.
type UserStore interface {
	GetUser(ctx context.Context, cid int) (*usermodel.UserModel, error)
}
