package rbac

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetUserRoles(ctx context.Context) ([]UserRoleRow, error)
	GetRolePermissions(ctx context.Context) ([]RolePermission, error)
	GrantPermission(ctx context.Context, p *RolePermission) error
	RevokePermission(ctx context.Context, role, resource, action string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetUserRoles reads role assignments for active users.
func (r *repository) GetUserRoles(ctx context.Context) ([]UserRoleRow, error) {
	var result []UserRoleRow
	err := r.db.WithContext(ctx).
		Table("users").
		Select("username, role").
		Where("active = ?", true).
		Where("role <> ''").
		Scan(&result).Error
	return result, err
}

func (r *repository) GetRolePermissions(ctx context.Context) ([]RolePermission, error) {
	var result []RolePermission
	err := r.db.WithContext(ctx).Order("role, resource, action").Find(&result).Error
	return result, err
}

// GrantPermission is idempotent.
func (r *repository) GrantPermission(ctx context.Context, p *RolePermission) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(p).Error
}

func (r *repository) RevokePermission(ctx context.Context, role, resource, action string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("role = ? AND resource = ? AND action = ?", role, resource, action).
		Delete(&RolePermission{})
	return res.RowsAffected > 0, res.Error
}
