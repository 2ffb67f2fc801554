package dto

import (
	"artcc_backend/internals/features/faqs/model"
)

type CreateFaqRequest struct {
	FaqQuestion string `json:"faq_question" validate:"required,max=500"`
	FaqAnswer   string `json:"faq_answer" validate:"required"`
	FaqOrder    int    `json:"faq_order" validate:"gte=0"`
}

type UpdateFaqRequest struct {
	FaqID       int    `json:"faq_id" validate:"required"`
	FaqQuestion string `json:"faq_question" validate:"required,max=500"`
	FaqAnswer   string `json:"faq_answer" validate:"required"`
	FaqOrder    int    `json:"faq_order" validate:"gte=0"`
}

func (r CreateFaqRequest) ToModel() model.FaqModel {
	return model.FaqModel{
		FaqQuestion: r.FaqQuestion,
		FaqAnswer:   r.FaqAnswer,
		FaqOrder:    r.FaqOrder,
	}
}
