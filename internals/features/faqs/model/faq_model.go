package model

import (
	"time"
)

type FaqModel struct {
	FaqID        int       `gorm:"column:faq_id;primaryKey;autoIncrement" json:"faq_id"`
	FaqQuestion  string    `gorm:"column:faq_question;size:500;not null" json:"faq_question"`
	FaqAnswer    string    `gorm:"column:faq_answer;type:text;not null" json:"faq_answer"`
	FaqOrder     int       `gorm:"column:faq_order;not null;default:0;index" json:"faq_order"`
	FaqCreatedAt time.Time `gorm:"column:faq_created_at;autoCreateTime" json:"faq_created_at"`
	FaqUpdatedAt time.Time `gorm:"column:faq_updated_at;autoUpdateTime" json:"faq_updated_at"`
}

func (FaqModel) TableName() string {
	return "faqs"
}
