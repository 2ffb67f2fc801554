package model

import (
	usermodel "artcc_backend/internals/features/users/model"
)

// EventPositionModel is a staffable slot on an event, gated by a minimum
// controller rating. Deleting a position cascades to its registrations.
type EventPositionModel struct {
	EventPositionID        int              `gorm:"column:event_position_id;primaryKey;autoIncrement" json:"event_position_id"`
	EventPositionEventID   int              `gorm:"column:event_position_event_id;not null;index" json:"event_position_event_id"`
	EventPositionName      string           `gorm:"column:event_position_name;size:50;not null" json:"event_position_name"`
	EventPositionMinRating usermodel.Rating `gorm:"column:event_position_min_rating;not null" json:"event_position_min_rating"`
	EventPositionAvailable bool             `gorm:"column:event_position_available;not null;default:true" json:"event_position_available"`
}

func (EventPositionModel) TableName() string {
	return "event_positions"
}
