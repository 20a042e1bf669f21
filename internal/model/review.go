package model

import "time"

type Review struct {
	ID        uint64 `gorm:"primaryKey"`
	ReleaseID uint64 `gorm:"not null;index:idx_release_review"`
	AuthorID  uint64 `gorm:"not null;index"`
	Rating    int    `gorm:"not null"` // 1~5
	Feedback  string `gorm:"type:text"`
	UpCount   int64  `gorm:"not null;default:0"`
	DownCount int64  `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
