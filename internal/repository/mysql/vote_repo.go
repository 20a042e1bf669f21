package mysql

import (
	"context"
	"errors"
	"fmt"

	"Project_Reviews/internal/model"

	"gorm.io/gorm"
)

var ErrUnknownTarget = errors.New("unknown vote target")

type VoteRepository struct {
	DB *gorm.DB
}

type VoteCounts struct {
	Up   int64 `json:"up"`
	Down int64 `json:"down"`
}

// Cast 切换式投票，整个读-写流程放在一个事务里，
// 避免同一用户对同一目标的并发请求产生两行。
// 同方向再点一次 -> 删除（撤票），removed=true，返回被删的记录；
// 反方向 -> 原地改方向，返回更新后的记录；
// 没有记录 -> 新建。
func (r *VoteRepository) Cast(ctx context.Context, userID uint64, target string, targetID uint64, voteType string) (*model.Vote, bool, error) {
	var out model.Vote
	var removed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var v model.Vote
		err := tx.Where("user_id = ? AND target = ? AND target_id = ?", userID, target, targetID).
			First(&v).Error
		if err == nil {
			if v.Type == voteType {
				// 撤票
				if err = tx.Delete(&model.Vote{}, v.ID).Error; err != nil {
					return err
				}
				if err = adjustCount(tx, target, targetID, voteType, -1); err != nil {
					return err
				}
				out = v
				removed = true
				return nil
			}
			// 换方向
			if err = tx.Model(&model.Vote{}).Where("id = ?", v.ID).
				Update("type", voteType).Error; err != nil {
				return err
			}
			if err = adjustCount(tx, target, targetID, v.Type, -1); err != nil {
				return err
			}
			if err = adjustCount(tx, target, targetID, voteType, +1); err != nil {
				return err
			}
			v.Type = voteType
			out = v
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// 首次投票
		v = model.Vote{UserID: userID, Target: target, TargetID: targetID, Type: voteType}
		if err = tx.Create(&v).Error; err != nil {
			return err
		}
		if err = adjustCount(tx, target, targetID, voteType, +1); err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &out, removed, nil
}

// Find 查某用户对某目标的现票，没有返回 gorm.ErrRecordNotFound
func (r *VoteRepository) Find(ctx context.Context, userID uint64, target string, targetID uint64) (*model.Vote, error) {
	var v model.Vote
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND target = ? AND target_id = ?", userID, target, targetID).
		First(&v).Error
	return &v, err
}

// Counts 从目标实体的冗余计数列读取
func (r *VoteRepository) Counts(ctx context.Context, target string, targetID uint64) (*VoteCounts, error) {
	var c VoteCounts
	m, err := targetModel(target)
	if err != nil {
		return nil, err
	}
	err = r.DB.WithContext(ctx).Model(m).
		Select("up_count AS up, down_count AS down").
		Where("id = ?", targetID).
		Scan(&c).Error
	return &c, err
}

// targetModel 目标枚举到表的穷举映射
func targetModel(target string) (any, error) {
	switch target {
	case model.TargetProject:
		return &model.Project{}, nil
	case model.TargetRelease:
		return &model.Release{}, nil
	case model.TargetComment:
		return &model.Comment{}, nil
	case model.TargetReview:
		return &model.Review{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTarget, target)
	}
}

// adjustCount 维护目标实体上的冗余计数，减法防负
func adjustCount(tx *gorm.DB, target string, targetID uint64, voteType string, delta int64) error {
	m, err := targetModel(target)
	if err != nil {
		return err
	}
	col := "up_count"
	if voteType == model.VoteDown {
		col = "down_count"
	}
	if delta > 0 {
		return tx.Model(m).Where("id = ?", targetID).
			UpdateColumn(col, gorm.Expr(col+" + ?", delta)).Error
	}
	return tx.Model(m).Where("id = ?", targetID).
		UpdateColumn(col, gorm.Expr("CASE WHEN "+col+" > 0 THEN "+col+" - 1 ELSE 0 END")).Error
}
