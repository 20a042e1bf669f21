package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	VoteCntTTL       = 24 * time.Hour
	LockTTL          = 300 * time.Millisecond
	VoteCntKeyPrefix = "vote:cnt"  // 缓存某个目标的赞/踩计数
	LockKeyPrefix    = "lock:vote" // 计数重建用的分布式锁
)

// VoteCacheRepository 投票计数缓存：写路径失败直接删key，读侧回源重建
type VoteCacheRepository struct {
	cntTTL time.Duration
}

type DistLock struct {
	RDB *redis.Client
}

type CachedCounts struct {
	Up   int64 `json:"up"`
	Down int64 `json:"down"`
}

func NewVoteCacheRepository() *VoteCacheRepository {
	return &VoteCacheRepository{cntTTL: VoteCntTTL}
}

func (r *VoteCacheRepository) cntKey(target string, targetID uint64) string {
	return fmt.Sprintf("%s:%s:%d", VoteCntKeyPrefix, target, targetID)
}

// GetCounts 返回 (counts, hit, err)
func (r *VoteCacheRepository) GetCounts(ctx context.Context, target string, targetID uint64) (*CachedCounts, bool, error) {
	val, err := Client.Get(ctx, r.cntKey(target, targetID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var c CachedCounts
	if err = json.Unmarshal([]byte(val), &c); err != nil {
		return nil, false, err
	}
	return &c, true, nil
}

func (r *VoteCacheRepository) SetCounts(ctx context.Context, target string, targetID uint64, c CachedCounts) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return Client.Set(ctx, r.cntKey(target, targetID), raw, r.cntTTL).Err()
}

// DeleteCounts 安全删除计数缓存，支持可选延迟二删，减少并发窗口脏数据
func (r *VoteCacheRepository) DeleteCounts(ctx context.Context, target string, targetID uint64, delay ...time.Duration) error {
	key := r.cntKey(target, targetID)
	if err := Client.Del(ctx, key).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if len(delay) > 0 && delay[0] > 0 {
		d := delay[0]
		// 后台再删一次，抵消并发回填窗口
		go func() {
			t := time.NewTimer(d)
			defer t.Stop()
			<-t.C
			_ = Client.Del(context.Background(), key).Err()
		}()
	}
	return nil
}

// Acquire 请求加分布式锁
func (l *DistLock) Acquire(ctx context.Context, target string, targetID uint64, token string) (bool, error) {
	key := fmt.Sprintf("%s:%s:%d", LockKeyPrefix, target, targetID)
	return l.RDB.SetNX(ctx, key, token, LockTTL).Result()
}

// Release 用lua保证原子性
func (l *DistLock) Release(ctx context.Context, target string, targetID uint64, token string) error {
	key := fmt.Sprintf("%s:%s:%d", LockKeyPrefix, target, targetID)
	_, err := redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
  return redis.call("del", KEYS[1])
else
  return 0
end`).Run(ctx, l.RDB, []string{key}, token).Result()
	return err
}
