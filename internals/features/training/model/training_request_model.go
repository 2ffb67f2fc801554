package model

import (
	"time"
)

// TrainingPosition is the position family a session is requested for.
type TrainingPosition string

const (
	PositionGround   TrainingPosition = "GROUND"
	PositionTower    TrainingPosition = "TOWER"
	PositionApproach TrainingPosition = "APPROACH"
	PositionCenter   TrainingPosition = "CENTER"
)

// TrainingRequestStatus tracks a request from submission to resolution.
//
//	PENDING   -> submitted, waiting for a trainer
//	ACCEPTED  -> a trainer picked it up
//	COMPLETED -> session done, a ticket exists for it
//	CANCELLED -> withdrawn by the member or staff
type TrainingRequestStatus string

const (
	TrainingPending   TrainingRequestStatus = "PENDING"
	TrainingAccepted  TrainingRequestStatus = "ACCEPTED"
	TrainingCompleted TrainingRequestStatus = "COMPLETED"
	TrainingCancelled TrainingRequestStatus = "CANCELLED"
)

type TrainingRequestModel struct {
	TrainingRequestID        int                   `gorm:"column:training_request_id;primaryKey;autoIncrement" json:"training_request_id"`
	TrainingRequestUserCid   int                   `gorm:"column:training_request_user_cid;not null;index" json:"training_request_user_cid"`
	TrainingRequestPosition  TrainingPosition      `gorm:"column:training_request_position;type:varchar(10);not null" json:"training_request_position"`
	TrainingRequestStart     time.Time             `gorm:"column:training_request_start;not null;index" json:"training_request_start"`
	TrainingRequestEnd       time.Time             `gorm:"column:training_request_end;not null" json:"training_request_end"`
	TrainingRequestStatus    TrainingRequestStatus `gorm:"column:training_request_status;type:varchar(10);not null;default:'PENDING';index" json:"training_request_status"`
	TrainingRequestTrainer   *int                  `gorm:"column:training_request_trainer" json:"training_request_trainer"`
	TrainingRequestCreatedAt time.Time             `gorm:"column:training_request_created_at;autoCreateTime" json:"training_request_created_at"`
	TrainingRequestUpdatedAt time.Time             `gorm:"column:training_request_updated_at;autoUpdateTime" json:"training_request_updated_at"`
}

func (TrainingRequestModel) TableName() string {
	return "training_requests"
}
