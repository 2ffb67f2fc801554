package dto

import (
	"artcc_backend/internals/features/users/model"
)

type UpdateUserRequest struct {
	UserCid                  int              `json:"user_cid" validate:"required"`
	UserFirstName            string           `json:"user_first_name" validate:"required,max=100"`
	UserLastName             string           `json:"user_last_name" validate:"required,max=100"`
	UserEmail                string           `json:"user_email" validate:"required,email,max=255"`
	UserRating               model.Rating     `json:"user_rating" validate:"required,gte=1,lte=12"`
	UserStatus               model.UserStatus `json:"user_status" validate:"required,oneof=ACTIVE LOA REMOVED"`
	UserCanRegisterForEvents bool             `json:"user_can_register_for_events"`
	UserCanRequestTraining   bool             `json:"user_can_request_training"`
}

type AddRoleRequest struct {
	RoleID int `json:"role_id" validate:"required"`
}

// Apply copies the editable fields onto an existing row. CID, join date
// and create timestamp never change through this endpoint.
func (r UpdateUserRequest) Apply(user *model.UserModel) {
	user.UserFirstName = r.UserFirstName
	user.UserLastName = r.UserLastName
	user.UserEmail = r.UserEmail
	user.UserRating = r.UserRating
	user.UserStatus = r.UserStatus
	user.UserCanRegisterForEvents = r.UserCanRegisterForEvents
	user.UserCanRequestTraining = r.UserCanRequestTraining
}
