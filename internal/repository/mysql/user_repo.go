package mysql

import (
	"context"

	"Project_Reviews/internal/model"
	"Project_Reviews/internal/pkg"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("username = ? OR email = ?", username, username).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByID(id uint64) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var usr model.User
	err := r.DB.Where("email = ?", email).First(&usr).Error
	return &usr, err
}

func (r *UserRepository) UpdatePassword(user *model.User, newPassword string) error {
	return r.DB.Model(user).Update("password", newPassword).Error
}

// UpdateProfile 只允许更新资料字段，角色/封禁不走这里
func (r *UserRepository) UpdateProfile(id uint64, fields map[string]any) error {
	return r.DB.Model(&model.User{}).Where("id = ?", id).Updates(fields).Error
}

// List 管理端用户分页，支持用户名/邮箱模糊搜索
func (r *UserRepository) List(ctx context.Context, q pkg.PageQuery) ([]model.User, int64, error) {
	tx := r.DB.WithContext(ctx).Model(&model.User{})
	if q.Search != "" {
		like := "%" + q.Search + "%"
		tx = tx.Where("username LIKE ? OR email LIKE ?", like, like)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.User
	err := tx.Order("id DESC").Offset(q.Offset()).Limit(q.PageSize).Find(&list).Error
	return list, total, err
}

func (r *UserRepository) SetRole(id uint64, role int) error {
	return r.DB.Model(&model.User{}).Where("id = ?", id).Update("role", role).Error
}

func (r *UserRepository) SetBanned(id uint64, banned bool) error {
	return r.DB.Model(&model.User{}).Where("id = ?", id).Update("banned", banned).Error
}

func (r *UserRepository) MarkEmailVerified(id uint64) error {
	return r.DB.Model(&model.User{}).Where("id = ?", id).Update("email_verified", true).Error
}
