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
	ErrBadDraftKind = errors.New("unknown draft kind")
	ErrEmptyPrompt  = errors.New("prompt is empty")
)

// AIService AI写作辅助：生成项目/版本描述草稿，以及围绕版本内容的流式问答
type AIService struct {
	client      pkg.AIClient
	releaseRepo *mysql.ReleaseRepository
	projectRepo *mysql.ProjectRepository
}

func NewAIService(db *gorm.DB, client pkg.AIClient) *AIService {
	return &AIService{
		client:      client,
		releaseRepo: &mysql.ReleaseRepository{DB: db},
		projectRepo: &mysql.ProjectRepository{DB: db},
	}
}

// Draft 生成markdown草稿，kind 限定 project/release
func (s *AIService) Draft(ctx context.Context, kind, topic string) (string, error) {
	if kind != "project" && kind != "release" {
		return "", ErrBadDraftKind
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", ErrEmptyPrompt
	}
	return s.client.DraftMarkdown(ctx, kind, topic)
}

// ChatStream 围绕某个版本的内容做流式问答，可见性规则与阅读一致
func (s *AIService) ChatStream(ctx context.Context, userID, releaseID uint64, question string, fn func(chunk string) error) error {
	question = strings.TrimSpace(question)
	if question == "" {
		return ErrEmptyPrompt
	}
	rel, err := s.releaseRepo.FindByID(releaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReleaseNotVisible
		}
		return err
	}
	p, err := s.projectRepo.FindByID(rel.ProjectID)
	if err != nil {
		return err
	}
	if p.OwnerID != userID {
		if p.Visibility == model.VisibilityPrivate || rel.Visibility == model.VisibilityPrivate {
			return ErrReleaseNotVisible
		}
	}
	content := p.Title + "\n\n" + rel.Title + "\n\n" + rel.Content
	return s.client.StreamChat(ctx, content, question, fn)
}
