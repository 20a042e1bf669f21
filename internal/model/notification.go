package model

import "time"

type Notification struct {
	ID          uint64 `gorm:"primaryKey"`
	RecipientID uint64 `gorm:"not null;index:idx_recipient_time"`
	Title       string `gorm:"size:200;not null"`
	Body        string `gorm:"type:text"`
	URL         string `gorm:"size:255"`
	// 为空表示未读
	ReadAt    *time.Time
	CreatedAt time.Time `gorm:"index:idx_recipient_time"`
}

// NotificationOutbox 通知事件监控表，由 relayer 异步投递到 kafka
type NotificationOutbox struct {
	ID        uint64 `gorm:"primaryKey"`
	EventType string `gorm:"size:32;not null"` // comment / review / vote
	Recipient uint64 `gorm:"not null"`
	Payload   string `gorm:"type:json;not null"`
	Status    int8   `gorm:"not null;default:0;comment:'0=pending,1=sent,2=failed'"`
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (NotificationOutbox) TableName() string { return "notification_outbox" }
