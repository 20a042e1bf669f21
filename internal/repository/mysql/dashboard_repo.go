package mysql

import (
	"context"

	"Project_Reviews/internal/model"

	"gorm.io/gorm"
)

type DashboardRepository struct {
	DB *gorm.DB
}

// OwnerStats 个人工作台汇总
type OwnerStats struct {
	ProjectCount  int64   `json:"project_count"`
	ReleaseCount  int64   `json:"release_count"`
	ReviewCount   int64   `json:"review_count"`
	AverageRating float64 `json:"average_rating"`
	UpVotes       int64   `json:"up_votes"`
	DownVotes     int64   `json:"down_votes"`
}

// AdminStats 管理端全站汇总
type AdminStats struct {
	UserCount     int64 `json:"user_count"`
	ProjectCount  int64 `json:"project_count"`
	ReleaseCount  int64 `json:"release_count"`
	CommentCount  int64 `json:"comment_count"`
	ReviewCount   int64 `json:"review_count"`
	CategoryCount int64 `json:"category_count"`
	VoteCount     int64 `json:"vote_count"`
}

// OwnerStats 逐项统计，量不大，串行查即可
func (r *DashboardRepository) OwnerStats(ctx context.Context, ownerID uint64) (*OwnerStats, error) {
	db := r.DB.WithContext(ctx)
	var s OwnerStats

	if err := db.Model(&model.Project{}).Where("owner_id = ?", ownerID).
		Count(&s.ProjectCount).Error; err != nil {
		return nil, err
	}

	releaseSub := db.Model(&model.Release{}).Select("releases.id").
		Joins("JOIN projects ON projects.id = releases.project_id").
		Where("projects.owner_id = ?", ownerID)
	if err := db.Model(&model.Release{}).
		Joins("JOIN projects ON projects.id = releases.project_id").
		Where("projects.owner_id = ?", ownerID).
		Count(&s.ReleaseCount).Error; err != nil {
		return nil, err
	}

	row := struct {
		Count int64
		Avg   float64
	}{}
	if err := db.Model(&model.Review{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS avg").
		Where("release_id IN (?)", releaseSub).
		Scan(&row).Error; err != nil {
		return nil, err
	}
	s.ReviewCount = row.Count
	s.AverageRating = row.Avg

	// 名下项目收到的赞/踩
	sums := struct {
		Up   int64
		Down int64
	}{}
	if err := db.Model(&model.Project{}).
		Select("COALESCE(SUM(up_count), 0) AS up, COALESCE(SUM(down_count), 0) AS down").
		Where("owner_id = ?", ownerID).
		Scan(&sums).Error; err != nil {
		return nil, err
	}
	s.UpVotes = sums.Up
	s.DownVotes = sums.Down
	return &s, nil
}

func (r *DashboardRepository) AdminStats(ctx context.Context) (*AdminStats, error) {
	db := r.DB.WithContext(ctx)
	var s AdminStats
	counts := []struct {
		m   any
		dst *int64
	}{
		{&model.User{}, &s.UserCount},
		{&model.Project{}, &s.ProjectCount},
		{&model.Release{}, &s.ReleaseCount},
		{&model.Comment{}, &s.CommentCount},
		{&model.Review{}, &s.ReviewCount},
		{&model.Category{}, &s.CategoryCount},
		{&model.Vote{}, &s.VoteCount},
	}
	for _, c := range counts {
		if err := db.Model(c.m).Count(c.dst).Error; err != nil {
			return nil, err
		}
	}
	return &s, nil
}
