package repositories

import (
	"context"

	"musicweb-api/models"

	"gorm.io/gorm"
)

type PermissionRepository interface {
	RolePermissions(ctx context.Context, role models.UserRole) ([]string, error)
	UserPermissions(ctx context.Context, userID string) ([]string, error)
	// ReplaceUserPermissions swaps the direct grant set of a user atomically.
	ReplaceUserPermissions(ctx context.Context, userID string, permissions []string) error
}

type permissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) PermissionRepository {
	return &permissionRepository{db: db}
}

func (r *permissionRepository) RolePermissions(ctx context.Context, role models.UserRole) ([]string, error) {
	names := make([]string, 0)
	err := r.db.WithContext(ctx).Model(&models.RolePermission{}).
		Where("role = ?", role).
		Order("permission_name").
		Pluck("permission_name", &names).Error
	return names, err
}

func (r *permissionRepository) UserPermissions(ctx context.Context, userID string) ([]string, error) {
	names := make([]string, 0)
	err := r.db.WithContext(ctx).Model(&models.UserPermission{}).
		Where("user_id = ?", userID).
		Order("permission_name").
		Pluck("permission_name", &names).Error
	return names, err
}

func (r *permissionRepository) ReplaceUserPermissions(ctx context.Context, userID string, permissions []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserPermission{}).Error; err != nil {
			return err
		}
		if len(permissions) == 0 {
			return nil
		}
		rows := make([]models.UserPermission, 0, len(permissions))
		for _, p := range permissions {
			rows = append(rows, models.UserPermission{UserID: userID, PermissionName: p})
		}
		return tx.Create(&rows).Error
	})
}
