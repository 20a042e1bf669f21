package service

import (
	"context"
	"errors"

	"Project_Reviews/internal/model"
	"Project_Reviews/internal/pkg"
	"Project_Reviews/internal/repository/mysql"

	"gorm.io/gorm"
)

var ErrReleaseNotVisible = errors.New("release not visible")

type ReleaseService struct {
	repo        *mysql.ReleaseRepository
	projectRepo *mysql.ProjectRepository
}

func NewReleaseService(db *gorm.DB) *ReleaseService {
	return &ReleaseService{
		repo:        &mysql.ReleaseRepository{DB: db},
		projectRepo: &mysql.ProjectRepository{DB: db},
	}
}

type ReleaseInput struct {
	Version    string `json:"version" binding:"required"`
	Title      string `json:"title" binding:"required"`
	Content    string `json:"content"`
	Status     string `json:"status"`
	Visibility string `json:"visibility"`
}

func (s *ReleaseService) CreateRelease(userID, projectID uint64, in ReleaseInput) (*model.Release, error) {
	p, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != userID {
		return nil, ErrNotOwner
	}
	if in.Status == "" {
		in.Status = model.StatusDraft
	}
	if in.Visibility == "" {
		in.Visibility = model.VisibilityPrivate
	}
	if !validStatus(in.Status) {
		return nil, ErrBadStatus
	}
	if !validVisibility(in.Visibility) {
		return nil, ErrBadVisibility
	}

	rel := &model.Release{
		ProjectID:  projectID,
		Version:    in.Version,
		Title:      in.Title,
		Content:    in.Content,
		Status:     in.Status,
		Visibility: in.Visibility,
	}
	if err = s.repo.Create(rel); err != nil {
		return nil, err
	}
	return rel, nil
}

func (s *ReleaseService) UpdateRelease(userID, releaseID uint64, in ReleaseInput) error {
	rel, err := s.repo.FindByID(releaseID)
	if err != nil {
		return err
	}
	p, err := s.projectRepo.FindByID(rel.ProjectID)
	if err != nil {
		return err
	}
	if p.OwnerID != userID {
		return ErrNotOwner
	}

	fields := map[string]any{}
	if in.Version != "" {
		fields["version"] = in.Version
	}
	if in.Title != "" {
		fields["title"] = in.Title
	}
	if in.Content != "" {
		fields["content"] = in.Content
	}
	if in.Status != "" {
		if !validStatus(in.Status) {
			return ErrBadStatus
		}
		fields["status"] = in.Status
	}
	if in.Visibility != "" {
		if !validVisibility(in.Visibility) {
			return ErrBadVisibility
		}
		fields["visibility"] = in.Visibility
	}
	if len(fields) == 0 {
		return nil
	}
	return s.repo.Update(releaseID, fields)
}

func (s *ReleaseService) DeleteRelease(ctx context.Context, userID, releaseID uint64) error {
	rel, err := s.repo.FindByID(releaseID)
	if err != nil {
		return err
	}
	p, err := s.projectRepo.FindByID(rel.ProjectID)
	if err != nil {
		return err
	}
	if p.OwnerID != userID {
		return ErrNotOwner
	}
	return s.repo.Delete(ctx, releaseID)
}

// GetRelease 可见性沿父项目判断：父项目私有则版本对外不可见
func (s *ReleaseService) GetRelease(releaseID, viewerID uint64) (*model.Release, error) {
	rel, err := s.repo.FindByID(releaseID)
	if err != nil {
		return nil, err
	}
	p, err := s.projectRepo.FindByID(rel.ProjectID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != viewerID {
		if p.Visibility == model.VisibilityPrivate || rel.Visibility == model.VisibilityPrivate {
			return nil, ErrReleaseNotVisible
		}
	}
	return rel, nil
}

func (s *ReleaseService) ListByProject(ctx context.Context, projectID, viewerID uint64, q pkg.PageQuery) (*pkg.PageResult, error) {
	p, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		return nil, err
	}
	ownerView := p.OwnerID == viewerID
	if !ownerView && p.Visibility == model.VisibilityPrivate {
		return nil, ErrNotVisible
	}
	q.Normalize()
	list, total, err := s.repo.ListByProject(ctx, projectID, ownerView, q)
	if err != nil {
		return nil, err
	}
	res := pkg.NewPageResult(list, total, q)
	return &res, nil
}
