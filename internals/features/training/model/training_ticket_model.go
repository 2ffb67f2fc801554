package model

import (
	"time"
)

// TrainingPerformance is the trainer's overall grade for a session.
type TrainingPerformance string

const (
	PerformanceUnsatisfactory TrainingPerformance = "UNSATISFACTORY"
	PerformanceMarginal       TrainingPerformance = "MARGINAL"
	PerformanceSatisfactory   TrainingPerformance = "SATISFACTORY"
	PerformanceGood           TrainingPerformance = "GOOD"
	PerformanceExcellent      TrainingPerformance = "EXCELLENT"
)

// TrainingTicketModel is the written record of a completed session.
// User notes are shown to the member; training notes stay with staff.
type TrainingTicketModel struct {
	TrainingTicketID            int                 `gorm:"column:training_ticket_id;primaryKey;autoIncrement" json:"training_ticket_id"`
	TrainingTicketUserCid       int                 `gorm:"column:training_ticket_user_cid;not null;index" json:"training_ticket_user_cid"`
	TrainingTicketTrainerCid    int                 `gorm:"column:training_ticket_trainer_cid;not null;index" json:"training_ticket_trainer_cid"`
	TrainingTicketRequestID     int                 `gorm:"column:training_ticket_request_id;not null;index" json:"training_ticket_request_id"`
	TrainingTicketPosition      TrainingPosition    `gorm:"column:training_ticket_position;type:varchar(10);not null;index" json:"training_ticket_position"`
	TrainingTicketFacility      string              `gorm:"column:training_ticket_facility;size:20;not null" json:"training_ticket_facility"`
	TrainingTicketPerformance   TrainingPerformance `gorm:"column:training_ticket_performance;type:varchar(15);not null;index" json:"training_ticket_performance"`
	TrainingTicketUserNotes     string              `gorm:"column:training_ticket_user_notes;type:text;not null" json:"training_ticket_user_notes"`
	TrainingTicketTrainingNotes string              `gorm:"column:training_ticket_training_notes;type:text;not null" json:"training_ticket_training_notes,omitempty"`
	TrainingTicketStart         time.Time           `gorm:"column:training_ticket_start;not null" json:"training_ticket_start"`
	TrainingTicketEnd           time.Time           `gorm:"column:training_ticket_end;not null" json:"training_ticket_end"`
	TrainingTicketCreatedAt     time.Time           `gorm:"column:training_ticket_created_at;autoCreateTime" json:"training_ticket_created_at"`
	TrainingTicketUpdatedAt     time.Time           `gorm:"column:training_ticket_updated_at;autoUpdateTime" json:"training_ticket_updated_at"`
}

func (TrainingTicketModel) TableName() string {
	return "training_tickets"
}
