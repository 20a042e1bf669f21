package service

import (
	"context"
	"errors"
	"strings"

	"Project_Reviews/internal/model"
	"Project_Reviews/internal/pkg"
	"Project_Reviews/internal/repository/mysql"

	"gorm.io/gorm"
)

var (
	ErrBadRating      = errors.New("rating must be between 1 and 5")
	ErrReviewNotFound = errors.New("review not found")
)

type ReviewService struct {
	repo        *mysql.ReviewRepository
	releaseRepo *mysql.ReleaseRepository
	projectRepo *mysql.ProjectRepository
	notifier    *NotificationService
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{
		repo:        &mysql.ReviewRepository{DB: db},
		releaseRepo: &mysql.ReleaseRepository{DB: db},
		projectRepo: &mysql.ProjectRepository{DB: db},
		notifier:    NewNotificationService(db),
	}
}

type ReviewInput struct {
	Rating   int    `json:"rating" binding:"required"`
	Feedback string `json:"feedback"`
}

func (s *ReviewService) visibleRelease(releaseID, viewerID uint64) (*model.Release, *model.Project, error) {
	rel, err := s.releaseRepo.FindByID(releaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrReleaseNotVisible
		}
		return nil, nil, err
	}
	p, err := s.projectRepo.FindByID(rel.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	if p.OwnerID != viewerID {
		if p.Visibility == model.VisibilityPrivate || rel.Visibility == model.VisibilityPrivate {
			return nil, nil, ErrReleaseNotVisible
		}
	}
	return rel, p, nil
}

func (s *ReviewService) CreateReview(ctx context.Context, authorID, releaseID uint64, in ReviewInput) (*model.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, ErrBadRating
	}
	rel, p, err := s.visibleRelease(releaseID, authorID)
	if err != nil {
		return nil, err
	}
	rv := &model.Review{
		ReleaseID: rel.ID,
		AuthorID:  authorID,
		Rating:    in.Rating,
		Feedback:  strings.TrimSpace(in.Feedback),
	}
	if err := s.repo.Create(rv); err != nil {
		return nil, err
	}
	if p.OwnerID != authorID {
		s.notifier.NotifyReview(ctx, p, rel.ID, rv.Rating)
	}
	return rv, nil
}

// UpdateReview 只有作者本人能改自己的评价
func (s *ReviewService) UpdateReview(authorID, reviewID uint64, in ReviewInput) error {
	if in.Rating < 1 || in.Rating > 5 {
		return ErrBadRating
	}
	affected, err := s.repo.Update(reviewID, authorID, map[string]any{
		"rating":   in.Rating,
		"feedback": strings.TrimSpace(in.Feedback),
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

// DeleteReview 连同该评价名下的投票一起删
func (s *ReviewService) DeleteReview(ctx context.Context, authorID, reviewID uint64) error {
	affected, err := s.repo.Delete(ctx, reviewID, authorID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (s *ReviewService) ListByRelease(ctx context.Context, releaseID, viewerID uint64, q pkg.PageQuery) (*pkg.PageResult, error) {
	if _, _, err := s.visibleRelease(releaseID, viewerID); err != nil {
		return nil, err
	}
	q.Normalize()
	list, total, err := s.repo.ListByRelease(ctx, releaseID, q)
	if err != nil {
		return nil, err
	}
	out := pkg.NewPageResult(list, total, q)
	return &out, nil
}

// Summary 评分概览，无评价时平均分为0
func (s *ReviewService) Summary(ctx context.Context, releaseID, viewerID uint64) (*mysql.ReviewSummary, error) {
	if _, _, err := s.visibleRelease(releaseID, viewerID); err != nil {
		return nil, err
	}
	return s.repo.Summary(ctx, releaseID)
}
