package model

import (
	"time"
)

// RegistrationStatus lifecycle:
//
//	PENDING --assign--> ASSIGNED
//	PENDING --relief--> RELIEF
//	(any)   --delete--> row removed, position freed
//
// There is no transition back to PENDING.
type RegistrationStatus string

const (
	RegistrationPending  RegistrationStatus = "PENDING"
	RegistrationAssigned RegistrationStatus = "ASSIGNED"
	RegistrationRelief   RegistrationStatus = "RELIEF"
)

// EventRegistrationModel is a member's claim on an event position. At
// most one registration exists per (user, event), enforced by a
// pre-insert existence check.
type EventRegistrationModel struct {
	EventRegistrationID         int                `gorm:"column:event_registration_id;primaryKey;autoIncrement" json:"event_registration_id"`
	EventRegistrationUserCid    int                `gorm:"column:event_registration_user_cid;not null;index" json:"event_registration_user_cid"`
	EventRegistrationEventID    int                `gorm:"column:event_registration_event_id;not null;index" json:"event_registration_event_id"`
	EventRegistrationPositionID int                `gorm:"column:event_registration_position_id;not null;index" json:"event_registration_position_id"`
	EventRegistrationStatus     RegistrationStatus `gorm:"column:event_registration_status;type:varchar(10);not null;default:'PENDING'" json:"event_registration_status"`
	EventRegistrationStart      time.Time          `gorm:"column:event_registration_start;not null" json:"event_registration_start"`
	EventRegistrationEnd        time.Time          `gorm:"column:event_registration_end;not null" json:"event_registration_end"`
	EventRegistrationCreatedAt  time.Time          `gorm:"column:event_registration_created_at;autoCreateTime" json:"event_registration_created_at"`
	EventRegistrationUpdatedAt  time.Time          `gorm:"column:event_registration_updated_at;autoUpdateTime" json:"event_registration_updated_at"`
}

func (EventRegistrationModel) TableName() string {
	return "event_registrations"
}
