package model

import "time"

const (
	RoleUser  = 0
	RoleAdmin = 1
)

type User struct {
	ID             uint64 `gorm:"primaryKey"`
	Username       string `gorm:"uniqueIndex;size:32;not null"`
	Password       string `gorm:"size:255;not null"`
	Role           int    `gorm:"default:0"` // 0=user, 1=admin
	Email          string `gorm:"uniqueIndex;size:64;not null"`
	EmailVerified  bool   `gorm:"not null;default:false"`
	Banned         bool   `gorm:"not null;default:false"`
	Name           string `gorm:"size:64"`
	Image          string `gorm:"size:255"`
	FavoriteNumber int    `gorm:"not null;default:0"`
	// 计费侧客户ID，订阅校验时用来找外部账户
	BillingCustomerID string `gorm:"size:64;index"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
