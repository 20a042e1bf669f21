package mysql

import (
	"context"

	"Project_Reviews/internal/model"
	"Project_Reviews/internal/pkg"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB *gorm.DB
}

type ReviewSummary struct {
	Count         int64   `json:"count"`
	AverageRating float64 `json:"average_rating"`
}

func (r *ReviewRepository) Create(rv *model.Review) error {
	return r.DB.Create(rv).Error
}

func (r *ReviewRepository) FindByID(id uint64) (*model.Review, error) {
	var rv model.Review
	err := r.DB.First(&rv, id).Error
	return &rv, err
}

// Update 只有作者本人能改
func (r *ReviewRepository) Update(id, authorID uint64, fields map[string]any) (int64, error) {
	tx := r.DB.Model(&model.Review{}).
		Where("id = ? AND author_id = ?", id, authorID).
		Updates(fields)
	return tx.RowsAffected, tx.Error
}

func (r *ReviewRepository) Delete(ctx context.Context, id, authorID uint64) (int64, error) {
	return deleteWithVotes(r.DB.WithContext(ctx), id, authorID)
}

func deleteWithVotes(db *gorm.DB, id, authorID uint64) (int64, error) {
	var affected int64
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND author_id = ?", id, authorID).Delete(&model.Review{})
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		if affected == 0 {
			return nil
		}
		return tx.Where("target = ? AND target_id = ?", model.TargetReview, id).
			Delete(&model.Vote{}).Error
	})
	return affected, err
}

func (r *ReviewRepository) ListByRelease(ctx context.Context, releaseID uint64, q pkg.PageQuery) ([]model.Review, int64, error) {
	tx := r.DB.WithContext(ctx).Model(&model.Review{}).Where("release_id = ?", releaseID)
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.Review
	err := tx.Order("created_at DESC, id DESC").Offset(q.Offset()).Limit(q.PageSize).Find(&list).Error
	return list, total, err
}

// Summary 数量和平均分，没有评价时平均分为0
func (r *ReviewRepository) Summary(ctx context.Context, releaseID uint64) (*ReviewSummary, error) {
	var s ReviewSummary
	err := r.DB.WithContext(ctx).Model(&model.Review{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS average_rating").
		Where("release_id = ?", releaseID).
		Scan(&s).Error
	return &s, err
}
