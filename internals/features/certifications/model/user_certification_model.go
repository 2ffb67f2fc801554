package model

import (
	"time"
)

// CertificationLevel grades how far a member may exercise a
// certification unsupervised.
type CertificationLevel string

const (
	CertificationTraining CertificationLevel = "TRAINING"
	CertificationMinor    CertificationLevel = "MINOR"
	CertificationMajor    CertificationLevel = "MAJOR"
	CertificationSolo     CertificationLevel = "SOLO"
)

// UserCertificationModel grants one certification to one member at a
// given level. One row per (user, certification) pair.
type UserCertificationModel struct {
	UserCertificationID              int                `gorm:"column:user_certification_id;primaryKey;autoIncrement" json:"user_certification_id"`
	UserCertificationUserCid         int                `gorm:"column:user_certification_user_cid;not null;index:idx_user_certifications_user_cert,unique" json:"user_certification_user_cid"`
	UserCertificationCertificationID int                `gorm:"column:user_certification_certification_id;not null;index:idx_user_certifications_user_cert,unique" json:"user_certification_certification_id"`
	UserCertificationLevel           CertificationLevel `gorm:"column:user_certification_level;type:varchar(10);not null" json:"user_certification_level"`
	UserCertificationGrantedBy       int                `gorm:"column:user_certification_granted_by;not null" json:"user_certification_granted_by"`
	UserCertificationCreatedAt       time.Time          `gorm:"column:user_certification_created_at;autoCreateTime" json:"user_certification_created_at"`
	UserCertificationUpdatedAt       time.Time          `gorm:"column:user_certification_updated_at;autoUpdateTime" json:"user_certification_updated_at"`

	Certification *CertificationModel `gorm:"foreignKey:UserCertificationCertificationID;references:CertificationID" json:"certification,omitempty"`
}

func (UserCertificationModel) TableName() string {
	return "user_certifications"
}
