package mysql

import (
	"context"
	"time"

	"Project_Reviews/internal/model"
	"Project_Reviews/internal/pkg"

	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

func (r *CommentRepository) Create(c *model.Comment) error {
	return r.DB.Create(c).Error
}

func (r *CommentRepository) FindByID(id uint64) (*model.Comment, error) {
	var c model.Comment
	err := r.DB.First(&c, id).Error
	return &c, err
}

// SoftDelete 打墓碑：行保留、正文清空，只有作者本人可删；幂等
func (r *CommentRepository) SoftDelete(ctx context.Context, id, authorID uint64) (int64, error) {
	now := time.Now()
	tx := r.DB.WithContext(ctx).Model(&model.Comment{}).
		Where("id = ? AND author_id = ? AND deleted_at IS NULL", id, authorID).
		Updates(map[string]any{"deleted_at": &now, "body": ""})
	return tx.RowsAffected, tx.Error
}

// ListByRelease 分页列表，墓碑行保留用于占位
func (r *CommentRepository) ListByRelease(ctx context.Context, releaseID uint64, q pkg.PageQuery) ([]model.Comment, int64, error) {
	tx := r.DB.WithContext(ctx).Model(&model.Comment{}).Where("release_id = ?", releaseID)
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.Comment
	err := tx.Order("created_at ASC, id ASC").Offset(q.Offset()).Limit(q.PageSize).Find(&list).Error
	return list, total, err
}
