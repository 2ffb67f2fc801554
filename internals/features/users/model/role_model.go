package model

// RoleModel is a staff position (ATM, TA, EC, ...). Users hold any number
// of roles through the user_roles join table.
type RoleModel struct {
	RoleID        int    `gorm:"column:role_id;primaryKey;autoIncrement" json:"role_id"`
	RoleName      string `gorm:"column:role_name;size:100;not null" json:"role_name"`
	RoleNameShort string `gorm:"column:role_name_short;size:10;not null;uniqueIndex" json:"role_name_short"`
	RoleEmail     string `gorm:"column:role_email;size:255;not null" json:"role_email"`
}

func (RoleModel) TableName() string {
	return "roles"
}
