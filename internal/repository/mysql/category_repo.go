package mysql

import (
	"context"

	"Project_Reviews/internal/model"
	"Project_Reviews/internal/pkg"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func (r *CategoryRepository) Create(c *model.Category) error {
	return r.DB.Create(c).Error
}

func (r *CategoryRepository) FindByID(id uint64) (*model.Category, error) {
	var cat model.Category
	err := r.DB.First(&cat, id).Error
	return &cat, err
}

// FindByNameCI 大小写不敏感的按名查找，创建去重用
func (r *CategoryRepository) FindByNameCI(name string) (*model.Category, error) {
	var cat model.Category
	err := r.DB.Where("LOWER(name) = LOWER(?)", name).First(&cat).Error
	return &cat, err
}

func (r *CategoryRepository) Update(id uint64, fields map[string]any) error {
	return r.DB.Model(&model.Category{}).Where("id = ?", id).Updates(fields).Error
}

func (r *CategoryRepository) DeleteByID(id uint64) error {
	return r.DB.Delete(&model.Category{}, id).Error
}

// CountProjects 引用计数，删除前的应用层守卫
func (r *CategoryRepository) CountProjects(id uint64) (int64, error) {
	var n int64
	err := r.DB.Model(&model.Project{}).Where("category_id = ?", id).Count(&n).Error
	return n, err
}

// List 按名字模糊搜索的分页列表
func (r *CategoryRepository) List(ctx context.Context, q pkg.PageQuery) ([]model.Category, int64, error) {
	tx := r.DB.WithContext(ctx).Model(&model.Category{})
	if q.Search != "" {
		tx = tx.Where("LOWER(name) LIKE LOWER(?)", "%"+q.Search+"%")
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.Category
	err := tx.Order("name ASC").Offset(q.Offset()).Limit(q.PageSize).Find(&list).Error
	return list, total, err
}
