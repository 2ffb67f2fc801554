package model

import (
	"time"
)

// EventModel is a time-bounded staffed activity (FNO, cross-the-pond
// leg, ...). Closed events are hidden from regular members.
type EventModel struct {
	EventID          int       `gorm:"column:event_id;primaryKey;autoIncrement" json:"event_id"`
	EventTitle       string    `gorm:"column:event_title;size:255;not null;index" json:"event_title"`
	EventDescription string    `gorm:"column:event_description;type:text;not null" json:"event_description"`
	EventHost        string    `gorm:"column:event_host;size:255;not null" json:"event_host"`
	EventBannerURL   *string   `gorm:"column:event_banner_url;size:500" json:"event_banner_url"`
	EventStart       time.Time `gorm:"column:event_start;not null;index" json:"event_start"`
	EventEnd         time.Time `gorm:"column:event_end;not null" json:"event_end"`
	EventIsOpen      bool      `gorm:"column:event_is_open;not null;default:false" json:"event_is_open"`
	EventCreatedAt   time.Time `gorm:"column:event_created_at;autoCreateTime" json:"event_created_at"`
	EventUpdatedAt   time.Time `gorm:"column:event_updated_at;autoUpdateTime" json:"event_updated_at"`
}

func (EventModel) TableName() string {
	return "events"
}
