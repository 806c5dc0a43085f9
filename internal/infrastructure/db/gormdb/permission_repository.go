package gormdb

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fiori/inventory-api/internal/core/domain"
)

type PermissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) *PermissionRepository {
	return &PermissionRepository{db: db}
}

func (r *PermissionRepository) EnsurePermissions(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	rows := make([]permissionRow, 0, len(names))
	for _, n := range names {
		rows = append(rows, permissionRow{Name: n})
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&rows).Error
	return translate("ensure permissions", err)
}

func (r *PermissionRepository) List(ctx context.Context) ([]domain.Permission, error) {
	var rows []permissionRow
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, translate("list permissions", err)
	}
	out := make([]domain.Permission, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.Permission{ID: row.ID, Name: row.Name})
	}
	return out, nil
}

func (r *PermissionRepository) FindByName(ctx context.Context, name string) (*domain.Permission, error) {
	var row permissionRow
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&row).Error; err != nil {
		return nil, translate(fmt.Sprintf("find permission %q", name), err)
	}
	return &domain.Permission{ID: row.ID, Name: row.Name}, nil
}

func (r *PermissionRepository) Grant(ctx context.Context, userID, permissionID, grantedBy uint) error {
	row := userPermissionRow{UserID: userID, PermissionID: permissionID, CreatedBy: grantedBy}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "permission_id"}},
			DoNothing: true,
		}).
		Create(&row).Error
	return translate("grant permission", err)
}

func (r *PermissionRepository) Revoke(ctx context.Context, userID, permissionID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND permission_id = ?", userID, permissionID).
		Delete(&userPermissionRow{}).Error
	return translate("revoke permission", err)
}

func (r *PermissionRepository) GrantNames(ctx context.Context, userID uint) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&permissionRow{}).
		Joins("JOIN user_permissions ON user_permissions.permission_id = permissions.id").
		Where("user_permissions.user_id = ?", userID).
		Order("permissions.id").
		Pluck("permissions.name", &names).Error
	if err != nil {
		return nil, translate(fmt.Sprintf("grants of user %d", userID), err)
	}
	return names, nil
}

func (r *PermissionRepository) DeleteForUser(ctx context.Context, userID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? OR created_by = ?", userID, userID).
		Delete(&userPermissionRow{}).Error
	return translate(fmt.Sprintf("delete grants of user %d", userID), err)
}
