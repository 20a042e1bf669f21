package service

import (
	"context"
	"errors"

	"Project_Reviews/internal/model"
	"Project_Reviews/internal/pkg"
	"Project_Reviews/internal/repository/mysql"
	"Project_Reviews/internal/repository/redis"

	"gorm.io/gorm"
)

var ErrSelfDemote = errors.New("cannot change your own role or ban yourself")

// DashboardService 所有者统计 + 管理端运营接口
type DashboardService struct {
	repo     *mysql.DashboardRepository
	userRepo *mysql.UserRepository
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{
		repo:     &mysql.DashboardRepository{DB: db},
		userRepo: &mysql.UserRepository{DB: db},
	}
}

func (s *DashboardService) OwnerStats(ctx context.Context, ownerID uint64) (*mysql.OwnerStats, error) {
	return s.repo.OwnerStats(ctx, ownerID)
}

func (s *DashboardService) AdminStats(ctx context.Context) (*mysql.AdminStats, error) {
	return s.repo.AdminStats(ctx)
}

func (s *DashboardService) ListUsers(ctx context.Context, q pkg.PageQuery) (*pkg.PageResult, error) {
	q.Normalize()
	list, total, err := s.userRepo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	views := make([]ProfileView, 0, len(list))
	for i := range list {
		views = append(views, *toProfileView(&list[i]))
	}
	out := pkg.NewPageResult(views, total, q)
	return &out, nil
}

// SetRole 管理员不能动自己的角色，避免把最后一个管理员降没了
func (s *DashboardService) SetRole(adminID, targetID uint64, role int) error {
	if adminID == targetID {
		return ErrSelfDemote
	}
	if role != model.RoleUser && role != model.RoleAdmin {
		return errors.New("unknown role")
	}
	if _, err := s.userRepo.FindByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.userRepo.SetRole(targetID, role)
}

func (s *DashboardService) SetBanned(adminID, targetID uint64, banned bool) error {
	if adminID == targetID {
		return ErrSelfDemote
	}
	if _, err := s.userRepo.FindByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if err := s.userRepo.SetBanned(targetID, banned); err != nil {
		return err
	}
	// 封禁立即作废现有会话
	if banned && redis.Client != nil {
		tokenRepo := redis.UserRepository{}
		_ = tokenRepo.DeleteUserToken(targetID)
	}
	return nil
}
