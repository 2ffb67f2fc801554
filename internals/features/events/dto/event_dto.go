package dto

import (
	"time"

	"artcc_backend/internals/features/events/model"
	usermodel "artcc_backend/internals/features/users/model"
)

// ============================
// Request DTOs
// ============================

type CreateEventRequest struct {
	EventTitle       string    `json:"event_title" form:"event_title" validate:"required,max=255"`
	EventDescription string    `json:"event_description" form:"event_description" validate:"required"`
	EventHost        string    `json:"event_host" form:"event_host" validate:"required,max=255"`
	EventStart       time.Time `json:"event_start" form:"event_start" validate:"required"`
	EventEnd         time.Time `json:"event_end" form:"event_end" validate:"required"`
	EventIsOpen      bool      `json:"event_is_open" form:"event_is_open"`
}

type UpdateEventRequest struct {
	EventID          int       `json:"event_id" form:"event_id" validate:"required"`
	EventTitle       string    `json:"event_title" form:"event_title" validate:"required,max=255"`
	EventDescription string    `json:"event_description" form:"event_description" validate:"required"`
	EventHost        string    `json:"event_host" form:"event_host" validate:"required,max=255"`
	EventStart       time.Time `json:"event_start" form:"event_start" validate:"required"`
	EventEnd         time.Time `json:"event_end" form:"event_end" validate:"required"`
	EventIsOpen      bool      `json:"event_is_open" form:"event_is_open"`
}

type CreateEventPositionRequest struct {
	EventPositionEventID   int              `json:"event_position_event_id" validate:"required"`
	EventPositionName      string           `json:"event_position_name" validate:"required,max=50"`
	EventPositionMinRating usermodel.Rating `json:"event_position_min_rating" validate:"required,gte=1"`
}

type CreateEventRegistrationRequest struct {
	EventRegistrationEventID    int       `json:"event_registration_event_id" validate:"required"`
	EventRegistrationPositionID int       `json:"event_registration_position_id" validate:"required"`
	EventRegistrationStart      time.Time `json:"event_registration_start" validate:"required"`
	EventRegistrationEnd        time.Time `json:"event_registration_end" validate:"required"`
}

// ============================
// Converters
// ============================

func (r CreateEventRequest) ToModel() model.EventModel {
	return model.EventModel{
		EventTitle:       r.EventTitle,
		EventDescription: r.EventDescription,
		EventHost:        r.EventHost,
		EventStart:       r.EventStart,
		EventEnd:         r.EventEnd,
		EventIsOpen:      r.EventIsOpen,
	}
}

func (r UpdateEventRequest) ToModel() model.EventModel {
	return model.EventModel{
		EventID:          r.EventID,
		EventTitle:       r.EventTitle,
		EventDescription: r.EventDescription,
		EventHost:        r.EventHost,
		EventStart:       r.EventStart,
		EventEnd:         r.EventEnd,
		EventIsOpen:      r.EventIsOpen,
	}
}

func (r CreateEventPositionRequest) ToModel() model.EventPositionModel {
	return model.EventPositionModel{
		EventPositionEventID:   r.EventPositionEventID,
		EventPositionName:      r.EventPositionName,
		EventPositionMinRating: r.EventPositionMinRating,
		EventPositionAvailable: true,
	}
}

func (r CreateEventRegistrationRequest) ToModel() model.EventRegistrationModel {
	return model.EventRegistrationModel{
		EventRegistrationEventID:    r.EventRegistrationEventID,
		EventRegistrationPositionID: r.EventRegistrationPositionID,
		EventRegistrationStart:      r.EventRegistrationStart,
		EventRegistrationEnd:        r.EventRegistrationEnd,
	}
}
