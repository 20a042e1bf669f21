package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Project_Reviews/internal/model"
	"Project_Reviews/internal/repository/mysql"
	"Project_Reviews/internal/repository/redis"

	"gorm.io/gorm"
)

// ErrCannotVote 目标不存在或可见性不允许，统一对外口径避免探测私有内容
var ErrCannotVote = errors.New("you can't vote on this")

type VoteService struct {
	repo        *mysql.VoteRepository
	projectRepo *mysql.ProjectRepository
	releaseRepo *mysql.ReleaseRepository
	commentRepo *mysql.CommentRepository
	reviewRepo  *mysql.ReviewRepository
	notifier    *NotificationService

	cache *redis.VoteCacheRepository
	lock  *redis.DistLock
}

func NewVoteService(db *gorm.DB) *VoteService {
	s := &VoteService{
		repo:        &mysql.VoteRepository{DB: db},
		projectRepo: &mysql.ProjectRepository{DB: db},
		releaseRepo: &mysql.ReleaseRepository{DB: db},
		commentRepo: &mysql.CommentRepository{DB: db},
		reviewRepo:  &mysql.ReviewRepository{DB: db},
		notifier:    NewNotificationService(db),
	}
	// redis 未初始化时（测试环境）跳过计数缓存
	if redis.Client != nil {
		s.cache = redis.NewVoteCacheRepository()
		s.lock = &redis.DistLock{RDB: redis.Client}
	}
	return s
}

// resolveProject 沿归属链找到目标所在的项目：
// Project -> 自身；Release -> 父项目；Comment/Review -> 父版本 -> 父项目。
// 目标枚举穷举，新增目标类型时编译期暴露遗漏。
func (s *VoteService) resolveProject(target string, targetID uint64) (*model.Project, error) {
	switch target {
	case model.TargetProject:
		return s.projectRepo.FindByID(targetID)
	case model.TargetRelease:
		rel, err := s.releaseRepo.FindByID(targetID)
		if err != nil {
			return nil, err
		}
		return s.projectRepo.FindByID(rel.ProjectID)
	case model.TargetComment:
		c, err := s.commentRepo.FindByID(targetID)
		if err != nil {
			return nil, err
		}
		rel, err := s.releaseRepo.FindByID(c.ReleaseID)
		if err != nil {
			return nil, err
		}
		return s.projectRepo.FindByID(rel.ProjectID)
	case model.TargetReview:
		rv, err := s.reviewRepo.FindByID(targetID)
		if err != nil {
			return nil, err
		}
		rel, err := s.releaseRepo.FindByID(rv.ReleaseID)
		if err != nil {
			return nil, err
		}
		return s.projectRepo.FindByID(rel.ProjectID)
	default:
		return nil, mysql.ErrUnknownTarget
	}
}

// canVote 所有者本人，或项目公开，其余一律拒绝
func (s *VoteService) canVote(userID uint64, target string, targetID uint64) (*model.Project, error) {
	p, err := s.resolveProject(target, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, mysql.ErrUnknownTarget) {
			return nil, ErrCannotVote
		}
		return nil, err
	}
	if p.OwnerID != userID && p.Visibility != model.VisibilityPublic {
		return nil, ErrCannotVote
	}
	return p, nil
}

// Cast 投票入口：鉴权 + 事务内切换，成功后使计数缓存失效
func (s *VoteService) Cast(ctx context.Context, userID uint64, target string, targetID uint64, voteType string) (*model.Vote, bool, error) {
	if voteType != model.VoteUp && voteType != model.VoteDown {
		return nil, false, errors.New("invalid vote type")
	}
	p, err := s.canVote(userID, target, targetID)
	if err != nil {
		return nil, false, err
	}

	vote, removed, err := s.repo.Cast(ctx, userID, target, targetID, voteType)
	if err != nil {
		return nil, false, err
	}

	// 缓存失效交给读侧重建
	if s.cache != nil {
		_ = s.cache.DeleteCounts(ctx, target, targetID, 200*time.Millisecond)
	}

	// 给项目所有者发通知（首投项目且不是自己投自己）
	if !removed && target == model.TargetProject && p.OwnerID != userID {
		s.notifier.NotifyVote(ctx, p, voteType)
	}
	return vote, removed, nil
}

// MyVote 查当前用户对目标投过的票，没投过返回 nil
func (s *VoteService) MyVote(ctx context.Context, userID uint64, target string, targetID uint64) (*model.Vote, error) {
	v, err := s.repo.Find(ctx, userID, target, targetID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Counts 读计数：先缓存，miss 时抢锁回源重建，拿不到锁退避后直接读库
func (s *VoteService) Counts(ctx context.Context, userID uint64, target string, targetID uint64) (*mysql.VoteCounts, error) {
	if s.cache == nil {
		return s.repo.Counts(ctx, target, targetID)
	}

	if c, ok, err := s.cache.GetCounts(ctx, target, targetID); err == nil && ok {
		return &mysql.VoteCounts{Up: c.Up, Down: c.Down}, nil
	}

	token := fmt.Sprintf("%d-%s-%d-%d", userID, target, targetID, time.Now().UnixNano())
	got, _ := s.lock.Acquire(ctx, target, targetID, token)
	if got {
		defer s.lock.Release(ctx, target, targetID, token)

		// 双检
		if c, ok, err := s.cache.GetCounts(ctx, target, targetID); err == nil && ok {
			return &mysql.VoteCounts{Up: c.Up, Down: c.Down}, nil
		}
		counts, err := s.repo.Counts(ctx, target, targetID)
		if err != nil {
			return nil, err
		}
		_ = s.cache.SetCounts(ctx, target, targetID, redis.CachedCounts{Up: counts.Up, Down: counts.Down})
		return counts, nil
	}

	// 没拿到锁，短暂退避后再读一次缓存，避免全体打DB
	time.Sleep(50 * time.Millisecond)
	if c, ok, err := s.cache.GetCounts(ctx, target, targetID); err == nil && ok {
		return &mysql.VoteCounts{Up: c.Up, Down: c.Down}, nil
	}
	return s.repo.Counts(ctx, target, targetID)
}
