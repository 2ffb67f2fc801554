package model

import (
	"time"

	"github.com/lib/pq"
)

// EmailLogModel records outbound notifications. Delivery itself is not
// wired up yet; rows double as the send queue once a mailer exists.
type EmailLogModel struct {
	EmailLogID        int            `gorm:"column:email_log_id;primaryKey;autoIncrement" json:"email_log_id"`
	EmailLogTo        pq.StringArray `gorm:"column:email_log_to;type:text[];not null" json:"email_log_to"`
	EmailLogSubject   string         `gorm:"column:email_log_subject;size:255;not null" json:"email_log_subject"`
	EmailLogBody      string         `gorm:"column:email_log_body;type:text;not null" json:"email_log_body"`
	EmailLogCreatedAt time.Time      `gorm:"column:email_log_created_at;autoCreateTime" json:"email_log_created_at"`
}

func (EmailLogModel) TableName() string {
	return "email_logs"
}
