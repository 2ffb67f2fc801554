package dto

import (
	"artcc_backend/internals/features/certifications/model"
	usermodel "artcc_backend/internals/features/users/model"
)

type CreateCertificationRequest struct {
	CertificationName           string           `json:"certification_name" validate:"required,max=100"`
	CertificationOrder          int              `json:"certification_order" validate:"gte=0"`
	CertificationRequiredRating usermodel.Rating `json:"certification_required_rating" validate:"required,gte=1,lte=12"`
}

type UpdateCertificationRequest struct {
	CertificationID             int              `json:"certification_id" validate:"required"`
	CertificationName           string           `json:"certification_name" validate:"required,max=100"`
	CertificationOrder          int              `json:"certification_order" validate:"gte=0"`
	CertificationRequiredRating usermodel.Rating `json:"certification_required_rating" validate:"required,gte=1,lte=12"`
}

type GrantCertificationRequest struct {
	UserCid         int                      `json:"user_cid" validate:"required"`
	CertificationID int                      `json:"certification_id" validate:"required"`
	Level           model.CertificationLevel `json:"level" validate:"required,oneof=TRAINING MINOR MAJOR SOLO"`
}

func (r CreateCertificationRequest) ToModel() model.CertificationModel {
	return model.CertificationModel{
		CertificationName:           r.CertificationName,
		CertificationOrder:          r.CertificationOrder,
		CertificationRequiredRating: r.CertificationRequiredRating,
	}
}
