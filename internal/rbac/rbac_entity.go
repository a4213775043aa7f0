package rbac

import "time"

// RolePermission grants every user with Role the Action on Resource.
type RolePermission struct {
	ID        uint   `gorm:"primaryKey"`
	Role      string `gorm:"type:varchar(50);not null;uniqueIndex:uq_role_permission"`
	Resource  string `gorm:"type:varchar(50);not null;uniqueIndex:uq_role_permission"`
	Action    string `gorm:"type:varchar(50);not null;uniqueIndex:uq_role_permission"`
	CreatedAt time.Time
}

func (RolePermission) TableName() string {
	return "role_permissions"
}

type UserRoleRow struct {
	Username string
	Role     string
}
