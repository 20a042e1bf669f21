package model

import "time"

type Release struct {
	ID         uint64 `gorm:"primaryKey"`
	ProjectID  uint64 `gorm:"not null;index:idx_project_time"`
	Version    string `gorm:"size:32;not null"`
	Title      string `gorm:"size:200;not null"`
	Content    string `gorm:"type:text"`
	Status     string `gorm:"size:16;not null;default:DRAFT"`
	Visibility string `gorm:"size:16;not null;default:PRIVATE"`
	UpCount    int64  `gorm:"not null;default:0"`
	DownCount  int64  `gorm:"not null;default:0"`
	CreatedAt  time.Time `gorm:"index:idx_project_time"`
	UpdatedAt  time.Time
}
