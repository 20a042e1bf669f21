package mysql

import (
	"context"

	"Project_Reviews/internal/model"
	"Project_Reviews/internal/pkg"

	"gorm.io/gorm"
)

type ReleaseRepository struct {
	DB *gorm.DB
}

func (r *ReleaseRepository) Create(rel *model.Release) error {
	return r.DB.Create(rel).Error
}

func (r *ReleaseRepository) FindByID(id uint64) (*model.Release, error) {
	var rel model.Release
	err := r.DB.First(&rel, id).Error
	return &rel, err
}

func (r *ReleaseRepository) Update(id uint64, fields map[string]any) error {
	return r.DB.Model(&model.Release{}).Where("id = ?", id).Updates(fields).Error
}

// Delete 版本删除时清掉名下的评论/评价/投票
func (r *ReleaseRepository) Delete(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var commentIDs, reviewIDs []uint64
		if err := tx.Model(&model.Comment{}).Where("release_id = ?", id).
			Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Review{}).Where("release_id = ?", id).
			Pluck("id", &reviewIDs).Error; err != nil {
			return err
		}
		if err := deleteVotesOn(tx, model.TargetComment, commentIDs); err != nil {
			return err
		}
		if err := deleteVotesOn(tx, model.TargetReview, reviewIDs); err != nil {
			return err
		}
		if err := tx.Where("release_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("release_id = ?", id).Delete(&model.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("target = ? AND target_id = ?", model.TargetRelease, id).
			Delete(&model.Vote{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Release{}, id).Error
	})
}

// ListByProject 某个项目下的版本分页，公开视角只看 PUBLIC
func (r *ReleaseRepository) ListByProject(ctx context.Context, projectID uint64, ownerView bool, q pkg.PageQuery) ([]model.Release, int64, error) {
	tx := r.DB.WithContext(ctx).Model(&model.Release{}).Where("project_id = ?", projectID)
	if !ownerView {
		tx = tx.Where("visibility = ?", model.VisibilityPublic)
	}
	if q.Search != "" {
		like := "%" + q.Search + "%"
		tx = tx.Where("title LIKE ? OR version LIKE ?", like, like)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.Release
	err := tx.Order("created_at DESC, id DESC").Offset(q.Offset()).Limit(q.PageSize).Find(&list).Error
	return list, total, err
}
