package model

import "time"

// 投票目标的四种类型
const (
	TargetProject = "PROJECT"
	TargetRelease = "RELEASE"
	TargetComment = "COMMENT"
	TargetReview  = "REVIEW"

	VoteUp   = "UP"
	VoteDown = "DOWN"
)

// Vote 一个用户对同一个目标最多只有一行，靠 uk_user_target 保证
type Vote struct {
	ID        uint64 `gorm:"primaryKey"`
	UserID    uint64 `gorm:"not null;uniqueIndex:uk_user_target"`
	Target    string `gorm:"size:16;not null;uniqueIndex:uk_user_target"`
	TargetID  uint64 `gorm:"not null;uniqueIndex:uk_user_target"`
	Type      string `gorm:"size:8;not null"` // UP / DOWN
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Vote) TableName() string { return "votes" }
