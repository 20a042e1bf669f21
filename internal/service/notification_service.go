package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"Project_Reviews/internal/model"
	"Project_Reviews/internal/pkg"
	"Project_Reviews/internal/repository/mysql"

	"gorm.io/gorm"
)

const (
	EventComment = "comment"
	EventReview  = "review"
	EventVote    = "vote"
)

type NotificationService struct {
	repo *mysql.NotificationRepository
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{repo: &mysql.NotificationRepository{DB: db}}
}

// NotifyComment 给项目所有者发评论通知，失败只记日志不影响主流程
func (s *NotificationService) NotifyComment(ctx context.Context, p *model.Project, releaseID uint64) {
	n := &model.Notification{
		RecipientID: p.OwnerID,
		Title:       fmt.Sprintf("你的项目《%s》收到了新评论", p.Title),
		URL:         fmt.Sprintf("/projects/%d/releases/%d", p.ID, releaseID),
	}
	if err := s.repo.Create(ctx, n, EventComment); err != nil {
		log.Println("发送评论通知失败:", err)
	}
}

// NotifyReview 给项目所有者发评价通知
func (s *NotificationService) NotifyReview(ctx context.Context, p *model.Project, releaseID uint64, rating int) {
	n := &model.Notification{
		RecipientID: p.OwnerID,
		Title:       fmt.Sprintf("你的项目《%s》收到了新评价", p.Title),
		Body:        fmt.Sprintf("评分 %d/5", rating),
		URL:         fmt.Sprintf("/projects/%d/releases/%d", p.ID, releaseID),
	}
	if err := s.repo.Create(ctx, n, EventReview); err != nil {
		log.Println("发送评价通知失败:", err)
	}
}

// NotifyVote 给项目所有者发投票通知
func (s *NotificationService) NotifyVote(ctx context.Context, p *model.Project, voteType string) {
	verb := "赞"
	if voteType == model.VoteDown {
		verb = "踩"
	}
	n := &model.Notification{
		RecipientID: p.OwnerID,
		Title:       fmt.Sprintf("你的项目《%s》收到了一个%s", p.Title, verb),
		URL:         fmt.Sprintf("/projects/%d", p.ID),
	}
	if err := s.repo.Create(ctx, n, EventVote); err != nil {
		log.Println("发送投票通知失败:", err)
	}
}

type NotificationPage struct {
	pkg.PageResult
	UnreadCount int64 `json:"unread_count"`
}

func (s *NotificationService) List(ctx context.Context, recipientID uint64, q pkg.PageQuery) (*NotificationPage, error) {
	q.Normalize()
	list, total, unread, err := s.repo.ListByRecipient(ctx, recipientID, q)
	if err != nil {
		return nil, err
	}
	return &NotificationPage{
		PageResult:  pkg.NewPageResult(list, total, q),
		UnreadCount: unread,
	}, nil
}

func (s *NotificationService) ReadAll(ctx context.Context, recipientID uint64) (int64, error) {
	return s.repo.ReadAll(ctx, recipientID)
}

// ReadOne 返回是否有行被标记；别人的通知匹配不到行
func (s *NotificationService) ReadOne(ctx context.Context, recipientID, notificationID uint64) (bool, error) {
	n, err := s.repo.ReadOne(ctx, recipientID, notificationID)
	return n > 0, err
}

// Sender 通知事件的下游出口
type Sender interface {
	Send(ctx context.Context, key string, value []byte) error
}

// LogSender kafka 不可用时的兜底出口，只打日志
type LogSender struct{}

func (LogSender) Send(_ context.Context, key string, value []byte) error {
	log.Printf("通知事件投递(仅日志) key=%s payload=%s", key, value)
	return nil
}

// OutboxRelayer 周期性扫描 outbox 表，把待发送事件推到下游
type OutboxRelayer struct {
	repo     *mysql.OutboxRepository
	sender   Sender
	interval time.Duration
	batch    int
}

func NewOutboxRelayer(db *gorm.DB, sender Sender, interval time.Duration) *OutboxRelayer {
	if sender == nil {
		sender = LogSender{}
	}
	return &OutboxRelayer{
		repo:     &mysql.OutboxRepository{DB: db},
		sender:   sender,
		interval: interval,
		batch:    100,
	}
}

// Run 常驻循环，ctx 取消后退出
func (r *OutboxRelayer) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Drain(ctx)
		}
	}
}

// Drain 处理一批待发送事件
func (r *OutboxRelayer) Drain(ctx context.Context) {
	events, err := r.repo.List(ctx, r.batch)
	if err != nil {
		log.Println("扫描通知outbox失败:", err)
		return
	}
	for _, ev := range events {
		if err := r.sender.Send(ctx, pkg.RecipientKey(ev.Recipient), []byte(ev.Payload)); err != nil {
			log.Println("通知事件投递失败:", err)
			_ = r.repo.RetryUpdate(ctx, ev.ID)
			continue
		}
		_ = r.repo.SuccessUpdate(ctx, ev.ID)
	}
}
