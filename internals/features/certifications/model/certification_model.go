package model

import (
	"time"

	usermodel "artcc_backend/internals/features/users/model"
)

// CertificationModel is a facility-defined endorsement (GND, TWR, APP
// tiers and so on), ordered for display.
type CertificationModel struct {
	CertificationID             int              `gorm:"column:certification_id;primaryKey;autoIncrement" json:"certification_id"`
	CertificationName           string           `gorm:"column:certification_name;size:100;not null;uniqueIndex" json:"certification_name"`
	CertificationOrder          int              `gorm:"column:certification_order;not null;default:0;index" json:"certification_order"`
	CertificationRequiredRating usermodel.Rating `gorm:"column:certification_required_rating;not null;default:1" json:"certification_required_rating"`
	CertificationCreatedAt      time.Time        `gorm:"column:certification_created_at;autoCreateTime" json:"certification_created_at"`
	CertificationUpdatedAt      time.Time        `gorm:"column:certification_updated_at;autoUpdateTime" json:"certification_updated_at"`
}

func (CertificationModel) TableName() string {
	return "certifications"
}
