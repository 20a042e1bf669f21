package service

import (
	"context"
	"errors"

	"Project_Reviews/internal/model"
	"Project_Reviews/internal/pkg"
	"Project_Reviews/internal/repository/mysql"

	"gorm.io/gorm"
)

var (
	ErrCategoryExists = errors.New("category with this name already exists")
	ErrCategoryInUse  = errors.New("category is referenced by projects")
)

type CategoryService struct {
	repo *mysql.CategoryRepository
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{repo: &mysql.CategoryRepository{DB: db}}
}

// CreateCategory 名字大小写不敏感去重
func (s *CategoryService) CreateCategory(name, imageURL, imagePublicID string) (*model.Category, error) {
	if name == "" {
		return nil, errors.New("category name required")
	}
	if _, err := s.repo.FindByNameCI(name); err == nil {
		return nil, ErrCategoryExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cat := &model.Category{
		Name:          name,
		ImageURL:      imageURL,
		ImagePublicID: imagePublicID,
	}
	if err := s.repo.Create(cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *CategoryService) UpdateCategory(id uint64, name, imageURL, imagePublicID string) error {
	fields := map[string]any{}
	if name != "" {
		// 改名同样去重，撞到别的分类才算冲突
		if existing, err := s.repo.FindByNameCI(name); err == nil && existing.ID != id {
			return ErrCategoryExists
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		fields["name"] = name
	}
	if imageURL != "" {
		fields["image_url"] = imageURL
		fields["image_public_id"] = imagePublicID
	}
	if len(fields) == 0 {
		return nil
	}
	return s.repo.Update(id, fields)
}

// DeleteCategory 还有项目引用时拒绝删除
func (s *CategoryService) DeleteCategory(id uint64) error {
	n, err := s.repo.CountProjects(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrCategoryInUse
	}
	return s.repo.DeleteByID(id)
}

func (s *CategoryService) GetCategory(id uint64) (*model.Category, error) {
	return s.repo.FindByID(id)
}

func (s *CategoryService) ListCategories(ctx context.Context, q pkg.PageQuery) (*pkg.PageResult, error) {
	q.Normalize()
	list, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	res := pkg.NewPageResult(list, total, q)
	return &res, nil
}
