package service

import (
	"context"
	"log"

	"gorm.io/gorm"

	"artcc_backend/internals/features/notifications/model"
)

// Notifier is the outbound-mail hook used by domain services.
type Notifier interface {
	Send(ctx context.Context, to []string, subject, body string)
}

// EmailLogNotifier only appends to email_logs. TODO: hand rows to a real
// mailer once the facility picks an email provider.
type EmailLogNotifier struct {
	DB *gorm.DB
}

func NewEmailLogNotifier(db *gorm.DB) *EmailLogNotifier {
	return &EmailLogNotifier{DB: db}
}

func (n *EmailLogNotifier) Send(ctx context.Context, to []string, subject, body string) {
	if len(to) == 0 {
		return
	}
	entry := model.EmailLogModel{
		EmailLogTo:      to,
		EmailLogSubject: subject,
		EmailLogBody:    body,
	}
	if err := n.DB.WithContext(ctx).Create(&entry).Error; err != nil {
		log.Printf("[ERROR] notifier: failed to log email %q: %v", subject, err)
	}
}
