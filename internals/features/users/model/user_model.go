package model

import (
	"time"
)

// Rating is the ordinal VATSIM controller rating. Higher is better.
type Rating int16

const (
	RatingOBS Rating = iota + 1
	RatingS1
	RatingS2
	RatingS3
	RatingC1
	RatingC2
	RatingC3
	RatingI1
	RatingI2
	RatingI3
	RatingSUP
	RatingADM
)

type UserStatus string

const (
	UserStatusActive  UserStatus = "ACTIVE"
	UserStatusLOA     UserStatus = "LOA"
	UserStatusRemoved UserStatus = "REMOVED"
)

// UserModel mirrors the users table. The primary key is the member's
// VATSIM CID, assigned by the identity provider, never generated here.
type UserModel struct {
	UserCid                  int         `gorm:"column:user_cid;primaryKey" json:"user_cid"`
	UserFirstName            string      `gorm:"column:user_first_name;size:100;not null" json:"user_first_name"`
	UserLastName             string      `gorm:"column:user_last_name;size:100;not null" json:"user_last_name"`
	UserEmail                string      `gorm:"column:user_email;size:255;not null;index" json:"user_email"`
	UserRating               Rating      `gorm:"column:user_rating;not null;index" json:"user_rating"`
	UserStatus               UserStatus  `gorm:"column:user_status;type:varchar(20);not null;default:'ACTIVE';index" json:"user_status"`
	UserCanRegisterForEvents bool        `gorm:"column:user_can_register_for_events;not null;default:true" json:"user_can_register_for_events"`
	UserCanRequestTraining   bool        `gorm:"column:user_can_request_training;not null;default:true" json:"user_can_request_training"`
	UserJoinedAt             time.Time   `gorm:"column:user_joined_at" json:"user_joined_at"`
	UserCreatedAt            time.Time   `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt            time.Time   `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at"`
	Roles                    []RoleModel `gorm:"many2many:user_roles;foreignKey:UserCid;joinForeignKey:user_cid;References:RoleID;joinReferences:role_id" json:"roles,omitempty"`
}

func (UserModel) TableName() string {
	return "users"
}
