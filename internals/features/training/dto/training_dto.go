package dto

import (
	"time"

	"artcc_backend/internals/features/training/model"
)

type CreateTrainingRequestRequest struct {
	TrainingRequestPosition model.TrainingPosition `json:"training_request_position" validate:"required,oneof=GROUND TOWER APPROACH CENTER"`
	TrainingRequestStart    time.Time              `json:"training_request_start" validate:"required"`
	TrainingRequestEnd      time.Time              `json:"training_request_end" validate:"required"`
}

type CreateTrainingTicketRequest struct {
	TrainingTicketRequestID     int                       `json:"training_ticket_request_id" validate:"required"`
	TrainingTicketFacility      string                    `json:"training_ticket_facility" validate:"required,max=20"`
	TrainingTicketPerformance   model.TrainingPerformance `json:"training_ticket_performance" validate:"required,oneof=UNSATISFACTORY MARGINAL SATISFACTORY GOOD EXCELLENT"`
	TrainingTicketUserNotes     string                    `json:"training_ticket_user_notes" validate:"required"`
	TrainingTicketTrainingNotes string                    `json:"training_ticket_training_notes" validate:"required"`
	TrainingTicketStart         time.Time                 `json:"training_ticket_start" validate:"required"`
	TrainingTicketEnd           time.Time                 `json:"training_ticket_end" validate:"required"`
}

func (r CreateTrainingRequestRequest) ToModel() model.TrainingRequestModel {
	return model.TrainingRequestModel{
		TrainingRequestPosition: r.TrainingRequestPosition,
		TrainingRequestStart:    r.TrainingRequestStart,
		TrainingRequestEnd:      r.TrainingRequestEnd,
		TrainingRequestStatus:   model.TrainingPending,
	}
}
