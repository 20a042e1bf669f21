package mysql

import (
	"context"
	"encoding/json"
	"time"

	"Project_Reviews/internal/model"
	"Project_Reviews/internal/pkg"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	DB *gorm.DB
}

type OutboxRepository struct {
	DB *gorm.DB
}

// Create 通知和 outbox 事件一起落库
func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification, eventType string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(n).Error; err != nil {
			return err
		}
		return insertOutbox(tx, eventType, n)
	})
}

// ListByRecipient 分页列表 + 未读数，只看自己的
func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID uint64, q pkg.PageQuery) ([]model.Notification, int64, int64, error) {
	tx := r.DB.WithContext(ctx).Model(&model.Notification{}).Where("recipient_id = ?", recipientID)
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, 0, err
	}
	var unread int64
	if err := r.DB.WithContext(ctx).Model(&model.Notification{}).
		Where("recipient_id = ? AND read_at IS NULL", recipientID).
		Count(&unread).Error; err != nil {
		return nil, 0, 0, err
	}
	var list []model.Notification
	err := tx.Order("created_at DESC, id DESC").Offset(q.Offset()).Limit(q.PageSize).Find(&list).Error
	return list, total, unread, err
}

// ReadAll 批量盖时间戳，只动自己名下未读的行
func (r *NotificationRepository) ReadAll(ctx context.Context, recipientID uint64) (int64, error) {
	now := time.Now()
	tx := r.DB.WithContext(ctx).Model(&model.Notification{}).
		Where("recipient_id = ? AND read_at IS NULL", recipientID).
		Update("read_at", &now)
	return tx.RowsAffected, tx.Error
}

// ReadOne 按归属更新：别人的通知这里匹配不到行，等于无操作
func (r *NotificationRepository) ReadOne(ctx context.Context, recipientID, notificationID uint64) (int64, error) {
	now := time.Now()
	tx := r.DB.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ? AND recipient_id = ? AND read_at IS NULL", notificationID, recipientID).
		Update("read_at", &now)
	return tx.RowsAffected, tx.Error
}

// 插入outbox事件表
func insertOutbox(tx *gorm.DB, eventType string, n *model.Notification) error {
	payload, _ := json.Marshal(map[string]any{
		"event_time": time.Now().UTC().Format(time.RFC3339Nano),
		"recipient":  n.RecipientID,
		"title":      n.Title,
		"url":        n.URL,
	})
	ob := &model.NotificationOutbox{
		EventType: eventType,
		Recipient: n.RecipientID,
		Payload:   string(payload),
		Status:    0,
	}
	return tx.Create(ob).Error
}

// List outbox查询
func (r *OutboxRepository) List(ctx context.Context, batchSize int) ([]model.NotificationOutbox, error) {
	var list []model.NotificationOutbox
	if err := r.DB.WithContext(ctx).
		Where("status = 0").
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// RetryUpdate 投递失败计数
func (r *OutboxRepository) RetryUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.NotificationOutbox{}).Where("id = ?", id).
		Updates(map[string]any{"status": 2, "retry": gorm.Expr("retry + 1")}).Error
}

// SuccessUpdate 投递成功标记
func (r *OutboxRepository) SuccessUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.NotificationOutbox{}).Where("id = ?", id).
		Update("status", 1).Error
}
