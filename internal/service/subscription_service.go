package service

import (
	"context"
	"errors"
	"log"

	"Project_Reviews/internal/pkg"
	"Project_Reviews/internal/repository/mysql"
	"Project_Reviews/internal/repository/redis"

	"gorm.io/gorm"
)

var ErrNoBillingAccount = errors.New("no billing account linked")

// SubscriptionService 订阅状态查询，计费系统前面挡一层redis短缓存
type SubscriptionService struct {
	userRepo  *mysql.UserRepository
	cacheRepo redis.UserRepository
	billing   pkg.BillingClient
	useCache  bool
}

func NewSubscriptionService(db *gorm.DB, billing pkg.BillingClient) *SubscriptionService {
	return &SubscriptionService{
		userRepo: &mysql.UserRepository{DB: db},
		billing:  billing,
		useCache: redis.Client != nil,
	}
}

// IsActive 查询用户是否有有效订阅。
// 没绑计费账户直接视为未订阅；计费系统出错时保守拒绝。
func (s *SubscriptionService) IsActive(ctx context.Context, userID uint64) (bool, error) {
	if s.useCache {
		if active, hit, err := s.cacheRepo.GetSubscriptionCached(ctx, userID); err == nil && hit {
			return active, nil
		}
	}

	u, err := s.userRepo.FindByID(userID)
	if err != nil {
		return false, err
	}
	if u.BillingCustomerID == "" {
		if s.useCache {
			_ = s.cacheRepo.SetSubscriptionCached(ctx, userID, false)
		}
		return false, nil
	}

	active, err := s.billing.HasActiveSubscription(ctx, u.BillingCustomerID)
	if err != nil {
		log.Println("查询计费系统失败:", err)
		return false, err
	}
	if s.useCache {
		_ = s.cacheRepo.SetSubscriptionCached(ctx, userID, active)
	}
	return active, nil
}

// CheckoutURL 生成订阅付款链接
func (s *SubscriptionService) CheckoutURL(ctx context.Context, userID uint64) (string, error) {
	u, err := s.userRepo.FindByID(userID)
	if err != nil {
		return "", err
	}
	if u.BillingCustomerID == "" {
		return "", ErrNoBillingAccount
	}
	return s.billing.CheckoutURL(ctx, u.BillingCustomerID)
}
