package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"Project_Reviews/internal/model"
	"Project_Reviews/internal/pkg"
	"Project_Reviews/internal/repository/mysql"

	"gorm.io/gorm"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrBadParent       = errors.New("invalid parent comment")
	ErrEmptyBody       = errors.New("comment body is empty")
)

type CommentService struct {
	repo        *mysql.CommentRepository
	releaseRepo *mysql.ReleaseRepository
	projectRepo *mysql.ProjectRepository
	notifier    *NotificationService
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{
		repo:        &mysql.CommentRepository{DB: db},
		releaseRepo: &mysql.ReleaseRepository{DB: db},
		projectRepo: &mysql.ProjectRepository{DB: db},
		notifier:    NewNotificationService(db),
	}
}

// visibleRelease 解析版本并套用可见性规则：私有项目/版本只有所有者能看
func (s *CommentService) visibleRelease(releaseID, viewerID uint64) (*model.Release, *model.Project, error) {
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

// CreateComment 发评论或一层回复。
// 回复的父评论必须在同一版本下且本身不是回复（不允许嵌套第二层）。
func (s *CommentService) CreateComment(ctx context.Context, authorID, releaseID uint64, parentID *uint64, body string) (*model.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyBody
	}
	rel, p, err := s.visibleRelease(releaseID, authorID)
	if err != nil {
		return nil, err
	}

	if parentID != nil {
		parent, err := s.repo.FindByID(*parentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrBadParent
			}
			return nil, err
		}
		if parent.ReleaseID != releaseID || parent.ParentID != nil {
			return nil, ErrBadParent
		}
	}

	c := &model.Comment{
		ReleaseID: rel.ID,
		AuthorID:  authorID,
		ParentID:  parentID,
		Body:      body,
	}
	if err := s.repo.Create(c); err != nil {
		return nil, err
	}

	if p.OwnerID != authorID {
		s.notifier.NotifyComment(ctx, p, rel.ID)
	}
	return c, nil
}

// DeleteComment 作者本人软删，幂等：重复删返回成功但不再动行
func (s *CommentService) DeleteComment(ctx context.Context, authorID, commentID uint64) error {
	affected, err := s.repo.SoftDelete(ctx, commentID, authorID)
	if err != nil {
		return err
	}
	if affected == 0 {
		// 区分"不存在/不是作者"和"已删过"
		c, err := s.repo.FindByID(commentID)
		if err != nil || c.AuthorID != authorID {
			return ErrCommentNotFound
		}
	}
	return nil
}

// CommentView 对外视图，墓碑行正文替换为占位文案
type CommentView struct {
	ID        uint64    `json:"id"`
	ReleaseID uint64    `json:"release_id"`
	AuthorID  uint64    `json:"author_id"`
	ParentID  *uint64   `json:"parent_id,omitempty"`
	Body      string    `json:"body"`
	UpCount   int64     `json:"up_count"`
	DownCount int64     `json:"down_count"`
	Deleted   bool      `json:"deleted"`
	CreatedAt time.Time `json:"created_at"`
}

func toCommentView(c model.Comment) CommentView {
	v := CommentView{
		ID:        c.ID,
		ReleaseID: c.ReleaseID,
		AuthorID:  c.AuthorID,
		ParentID:  c.ParentID,
		Body:      c.Body,
		UpCount:   c.UpCount,
		DownCount: c.DownCount,
		CreatedAt: c.CreatedAt,
	}
	if c.DeletedAt != nil {
		v.Deleted = true
		v.Body = "[该评论已删除]"
	}
	return v
}

// ListByRelease 按创建时间正序分页，已删除的评论保留占位
func (s *CommentService) ListByRelease(ctx context.Context, releaseID, viewerID uint64, q pkg.PageQuery) (*pkg.PageResult, error) {
	if _, _, err := s.visibleRelease(releaseID, viewerID); err != nil {
		return nil, err
	}
	q.Normalize()
	list, total, err := s.repo.ListByRelease(ctx, releaseID, q)
	if err != nil {
		return nil, err
	}
	views := make([]CommentView, 0, len(list))
	for _, c := range list {
		views = append(views, toCommentView(c))
	}
	out := pkg.NewPageResult(views, total, q)
	return &out, nil
}
