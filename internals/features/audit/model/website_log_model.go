package model

import (
	"time"

	"gorm.io/datatypes"
)

// WebsiteLogModel is the append-only action log. Every mutating endpoint
// writes one row with JSON snapshots of the entity before and after.
type WebsiteLogModel struct {
	WebsiteLogID        int            `gorm:"column:website_log_id;primaryKey;autoIncrement" json:"website_log_id"`
	WebsiteLogCid       int            `gorm:"column:website_log_cid;index" json:"website_log_cid"`
	WebsiteLogName      string         `gorm:"column:website_log_name;size:200" json:"website_log_name"`
	WebsiteLogIP        string         `gorm:"column:website_log_ip;size:45;not null" json:"website_log_ip"`
	WebsiteLogAction    string         `gorm:"column:website_log_action;type:text;not null" json:"website_log_action"`
	WebsiteLogOldData   datatypes.JSON `gorm:"column:website_log_old_data" json:"website_log_old_data"`
	WebsiteLogNewData   datatypes.JSON `gorm:"column:website_log_new_data" json:"website_log_new_data"`
	WebsiteLogCreatedAt time.Time      `gorm:"column:website_log_created_at;autoCreateTime;index" json:"website_log_created_at"`
}

func (WebsiteLogModel) TableName() string {
	return "website_logs"
}
