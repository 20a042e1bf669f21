package model

import "time"

type Category struct {
	ID            uint64 `gorm:"primaryKey"`
	Name          string `gorm:"uniqueIndex;size:64;not null"`
	ImageURL      string `gorm:"size:255"`
	ImagePublicID string `gorm:"size:128"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
