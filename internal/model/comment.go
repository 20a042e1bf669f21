package model

import "time"

type Comment struct {
	ID        uint64  `gorm:"primaryKey"`
	ReleaseID uint64  `gorm:"not null;index:idx_release_time"`
	AuthorID  uint64  `gorm:"not null;index"`
	ParentID  *uint64 `gorm:"index"` // 只支持一层回复
	Body      string  `gorm:"type:text;not null"`
	UpCount   int64   `gorm:"not null;default:0"`
	DownCount int64   `gorm:"not null;default:0"`
	// 软删除墓碑：有值表示已删除，行保留用于占位展示
	DeletedAt *time.Time
	CreatedAt time.Time `gorm:"index:idx_release_time"`
	UpdatedAt time.Time
}
