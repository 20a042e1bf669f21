package model

import (
	"time"

	"gorm.io/datatypes"
)

// 项目/版本共用的状态与可见性枚举
const (
	StatusDraft       = "DRAFT"
	StatusDevelopment = "DEVELOPMENT"
	StatusProduction  = "PRODUCTION"
	StatusDeprecated  = "DEPRECATED"

	VisibilityPrivate  = "PRIVATE"
	VisibilityPublic   = "PUBLIC"
	VisibilityUnlisted = "UNLISTED"
)

type Project struct {
	ID          uint64         `gorm:"primaryKey"`
	OwnerID     uint64         `gorm:"not null;index:idx_owner_time"`
	CategoryID  uint64         `gorm:"not null;index"`
	Title       string         `gorm:"size:200;not null"`
	Description string         `gorm:"size:500"`
	Content     string         `gorm:"type:text"`
	Status      string         `gorm:"size:16;not null;default:DRAFT"`
	Visibility  string         `gorm:"size:16;not null;default:PRIVATE;index"`
	Tags        datatypes.JSON `gorm:"type:json"`
	Images      datatypes.JSON `gorm:"type:json"`
	UpCount     int64          `gorm:"not null;default:0"`
	DownCount   int64          `gorm:"not null;default:0"`
	CreatedAt   time.Time      `gorm:"index:idx_owner_time"`
	UpdatedAt   time.Time
}
