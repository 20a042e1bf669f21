package service

import (
	"context"
	"encoding/json"
	"errors"

	"Project_Reviews/internal/model"
	"Project_Reviews/internal/pkg"
	"Project_Reviews/internal/repository/mysql"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrNotOwner       = errors.New("not the owner")
	ErrNotVisible     = errors.New("project not visible")
	ErrBadStatus      = errors.New("invalid status")
	ErrBadVisibility  = errors.New("invalid visibility")
	ErrCategoryNotSet = errors.New("category not found")
)

type ProjectService struct {
	repo    *mysql.ProjectRepository
	catRepo *mysql.CategoryRepository
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{
		repo:    &mysql.ProjectRepository{DB: db},
		catRepo: &mysql.CategoryRepository{DB: db},
	}
}

func validStatus(s string) bool {
	switch s {
	case model.StatusDraft, model.StatusDevelopment, model.StatusProduction, model.StatusDeprecated:
		return true
	}
	return false
}

func validVisibility(v string) bool {
	switch v {
	case model.VisibilityPrivate, model.VisibilityPublic, model.VisibilityUnlisted:
		return true
	}
	return false
}

type ProjectInput struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	CategoryID  uint64   `json:"category_id" binding:"required"`
	Status      string   `json:"status"`
	Visibility  string   `json:"visibility"`
	Tags        []string `json:"tags"`
	Images      []string `json:"images"`
}

func (s *ProjectService) CreateProject(ownerID uint64, in ProjectInput) (*model.Project, error) {
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
	if _, err := s.catRepo.FindByID(in.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotSet
		}
		return nil, err
	}

	tags, _ := json.Marshal(in.Tags)
	images, _ := json.Marshal(in.Images)
	p := &model.Project{
		OwnerID:     ownerID,
		CategoryID:  in.CategoryID,
		Title:       in.Title,
		Description: in.Description,
		Content:     in.Content,
		Status:      in.Status,
		Visibility:  in.Visibility,
		Tags:        datatypes.JSON(tags),
		Images:      datatypes.JSON(images),
	}
	if err := s.repo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProjectService) UpdateProject(userID, projectID uint64, in ProjectInput) error {
	p, err := s.repo.FindByID(projectID)
	if err != nil {
		return err
	}
	if p.OwnerID != userID {
		return ErrNotOwner
	}

	fields := map[string]any{}
	if in.Title != "" {
		fields["title"] = in.Title
	}
	if in.Description != "" {
		fields["description"] = in.Description
	}
	if in.Content != "" {
		fields["content"] = in.Content
	}
	if in.CategoryID > 0 && in.CategoryID != p.CategoryID {
		if _, err = s.catRepo.FindByID(in.CategoryID); err != nil {
			return ErrCategoryNotSet
		}
		fields["category_id"] = in.CategoryID
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
	if in.Tags != nil {
		raw, _ := json.Marshal(in.Tags)
		fields["tags"] = datatypes.JSON(raw)
	}
	if in.Images != nil {
		raw, _ := json.Marshal(in.Images)
		fields["images"] = datatypes.JSON(raw)
	}
	if len(fields) == 0 {
		return nil
	}
	return s.repo.Update(projectID, fields)
}

func (s *ProjectService) DeleteProject(ctx context.Context, userID, projectID uint64) error {
	p, err := s.repo.FindByID(projectID)
	if err != nil {
		return err
	}
	if p.OwnerID != userID {
		return ErrNotOwner
	}
	return s.repo.Delete(ctx, projectID)
}

// GetProject 非所有者只能看 PUBLIC / UNLISTED（直链可达）
func (s *ProjectService) GetProject(projectID, viewerID uint64) (*model.Project, error) {
	p, err := s.repo.FindByID(projectID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != viewerID && p.Visibility == model.VisibilityPrivate {
		return nil, ErrNotVisible
	}
	return p, nil
}

func (s *ProjectService) ListPublic(ctx context.Context, f mysql.ProjectFilter) (*pkg.PageResult, error) {
	f.Normalize()
	list, total, err := s.repo.ListPublic(ctx, f)
	if err != nil {
		return nil, err
	}
	res := pkg.NewPageResult(list, total, f.PageQuery)
	return &res, nil
}

func (s *ProjectService) ListMine(ctx context.Context, ownerID uint64, q pkg.PageQuery) (*pkg.PageResult, error) {
	q.Normalize()
	list, total, err := s.repo.ListByOwner(ctx, ownerID, q)
	if err != nil {
		return nil, err
	}
	res := pkg.NewPageResult(list, total, q)
	return &res, nil
}
