package mysql

import (
	"context"

	"Project_Reviews/internal/model"
	"Project_Reviews/internal/pkg"

	"gorm.io/gorm"
)

type ProjectRepository struct {
	DB *gorm.DB
}

func (r *ProjectRepository) Create(p *model.Project) error {
	return r.DB.Create(p).Error
}

func (r *ProjectRepository) FindByID(id uint64) (*model.Project, error) {
	var p model.Project
	err := r.DB.First(&p, id).Error
	return &p, err
}

func (r *ProjectRepository) Update(id uint64, fields map[string]any) error {
	return r.DB.Model(&model.Project{}).Where("id = ?", id).Updates(fields).Error
}

// Delete 连同版本/评论/评价/投票一起删，放一个事务里
func (r *ProjectRepository) Delete(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var releaseIDs []uint64
		if err := tx.Model(&model.Release{}).Where("project_id = ?", id).
			Pluck("id", &releaseIDs).Error; err != nil {
			return err
		}
		if len(releaseIDs) > 0 {
			var commentIDs, reviewIDs []uint64
			if err := tx.Model(&model.Comment{}).Where("release_id IN ?", releaseIDs).
				Pluck("id", &commentIDs).Error; err != nil {
				return err
			}
			if err := tx.Model(&model.Review{}).Where("release_id IN ?", releaseIDs).
				Pluck("id", &reviewIDs).Error; err != nil {
				return err
			}
			if err := deleteVotesOn(tx, model.TargetComment, commentIDs); err != nil {
				return err
			}
			if err := deleteVotesOn(tx, model.TargetReview, reviewIDs); err != nil {
				return err
			}
			if err := deleteVotesOn(tx, model.TargetRelease, releaseIDs); err != nil {
				return err
			}
			if err := tx.Where("release_id IN ?", releaseIDs).Delete(&model.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("release_id IN ?", releaseIDs).Delete(&model.Review{}).Error; err != nil {
				return err
			}
			if err := tx.Where("project_id = ?", id).Delete(&model.Release{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("target = ? AND target_id = ?", model.TargetProject, id).
			Delete(&model.Vote{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Project{}, id).Error
	})
}

func deleteVotesOn(tx *gorm.DB, target string, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	return tx.Where("target = ? AND target_id IN ?", target, ids).Delete(&model.Vote{}).Error
}

type ProjectFilter struct {
	pkg.PageQuery
	CategoryID uint64
	Status     string
}

// ListPublic 公开项目列表，标题/描述模糊搜索 + 分类/状态过滤
func (r *ProjectRepository) ListPublic(ctx context.Context, f ProjectFilter) ([]model.Project, int64, error) {
	tx := r.DB.WithContext(ctx).Model(&model.Project{}).
		Where("visibility = ?", model.VisibilityPublic)
	if f.Search != "" {
		like := "%" + f.Search + "%"
		tx = tx.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	if f.CategoryID > 0 {
		tx = tx.Where("category_id = ?", f.CategoryID)
	}
	if f.Status != "" {
		tx = tx.Where("status = ?", f.Status)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.Project
	err := tx.Order("created_at DESC, id DESC").Offset(f.Offset()).Limit(f.PageSize).Find(&list).Error
	return list, total, err
}

// ListByOwner 自己的项目列表，不过滤可见性
func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID uint64, q pkg.PageQuery) ([]model.Project, int64, error) {
	tx := r.DB.WithContext(ctx).Model(&model.Project{}).Where("owner_id = ?", ownerID)
	if q.Search != "" {
		tx = tx.Where("title LIKE ?", "%"+q.Search+"%")
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.Project
	err := tx.Order("created_at DESC, id DESC").Offset(q.Offset()).Limit(q.PageSize).Find(&list).Error
	return list, total, err
}
