package gormdb

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/fiori/inventory-api/internal/core/domain"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var row userRow
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, translate(fmt.Sprintf("find user %d", id), err)
	}
	return row.toDomain(), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var row userRow
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&row).Error; err != nil {
		return nil, translate("find user by username", err)
	}
	return row.toDomain(), nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	var rows []userRow
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, translate("list users", err)
	}
	out := make([]*domain.User, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	row := userRow{Username: user.Username, Email: user.Email, PasswordHash: user.PasswordHash}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return translate("create user", err)
	}
	user.ID, user.CreatedAt = row.ID, row.CreatedAt
	return nil
}

// CreateWithID inserts user under its own ID. On PostgreSQL the id sequence
// is moved past it so later inserts do not collide.
func (r *UserRepository) CreateWithID(ctx context.Context, user *domain.User) error {
	row := userRow{ID: user.ID, Username: user.Username, Email: user.Email, PasswordHash: user.PasswordHash}
	db := r.db.WithContext(ctx)
	if err := db.Create(&row).Error; err != nil {
		return translate(fmt.Sprintf("create user %d", user.ID), err)
	}
	if db.Dialector.Name() == DriverPostgres {
		err := db.Exec("SELECT setval(pg_get_serial_sequence('users', 'id'), (SELECT MAX(id) FROM users))").Error
		if err != nil {
			return translate("advance users sequence", err)
		}
	}
	user.CreatedAt = row.CreatedAt
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	res := r.db.WithContext(ctx).Model(&userRow{ID: user.ID}).Updates(map[string]any{
		"username":      user.Username,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
	})
	if res.Error != nil {
		return translate(fmt.Sprintf("update user %d", user.ID), res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update user %d: %w", user.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&userRow{}, id)
	if res.Error != nil {
		return translate(fmt.Sprintf("delete user %d", id), res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete user %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
