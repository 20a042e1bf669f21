package service

import (
	"context"
	"testing"

	"Project_Reviews/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ownerID    = uint64(1)
	strangerID = uint64(2)
)

func TestCastPrivateProjectOwnerOnly(t *testing.T) {
	db := openTestDB(t)
	svc := NewVoteService(db)
	fx := seedChain(t, db, ownerID, model.VisibilityPrivate)
	ctx := context.Background()

	targets := []struct {
		target   string
		targetID uint64
	}{
		{model.TargetProject, fx.project.ID},
		{model.TargetRelease, fx.release.ID},
		{model.TargetComment, fx.comment.ID},
		{model.TargetReview, fx.review.ID},
	}

	// 所有者自己可以投私有项目链上的任何目标
	for _, tc := range targets {
		_, removed, err := svc.Cast(ctx, ownerID, tc.target, tc.targetID, model.VoteUp)
		require.NoError(t, err, tc.target)
		assert.False(t, removed, tc.target)
	}

	// 外人一律拒绝
	for _, tc := range targets {
		_, _, err := svc.Cast(ctx, strangerID, tc.target, tc.targetID, model.VoteUp)
		assert.ErrorIs(t, err, ErrCannotVote, tc.target)
	}
}

func TestCastPublicProjectAnyUser(t *testing.T) {
	db := openTestDB(t)
	svc := NewVoteService(db)
	fx := seedChain(t, db, ownerID, model.VisibilityPublic)
	ctx := context.Background()

	for _, tc := range []struct {
		target   string
		targetID uint64
	}{
		{model.TargetProject, fx.project.ID},
		{model.TargetRelease, fx.release.ID},
		{model.TargetComment, fx.comment.ID},
		{model.TargetReview, fx.review.ID},
	} {
		_, removed, err := svc.Cast(ctx, strangerID, tc.target, tc.targetID, model.VoteDown)
		require.NoError(t, err, tc.target)
		assert.False(t, removed, tc.target)
	}
}

func TestCastMissingTarget(t *testing.T) {
	db := openTestDB(t)
	svc := NewVoteService(db)

	// 目标不存在和无权访问同一口径
	_, _, err := svc.Cast(context.Background(), ownerID, model.TargetProject, 9999, model.VoteUp)
	assert.ErrorIs(t, err, ErrCannotVote)

	_, _, err = svc.Cast(context.Background(), ownerID, "UNKNOWN", 1, model.VoteUp)
	assert.ErrorIs(t, err, ErrCannotVote)
}

func TestCastInvalidType(t *testing.T) {
	db := openTestDB(t)
	svc := NewVoteService(db)
	fx := seedChain(t, db, ownerID, model.VisibilityPublic)

	_, _, err := svc.Cast(context.Background(), ownerID, model.TargetProject, fx.project.ID, "SIDEWAYS")
	assert.Error(t, err)
}

func TestCastVoteNotificationToOwner(t *testing.T) {
	db := openTestDB(t)
	svc := NewVoteService(db)
	fx := seedChain(t, db, ownerID, model.VisibilityPublic)
	ctx := context.Background()

	// 别人投项目给所有者发通知
	_, _, err := svc.Cast(ctx, strangerID, model.TargetProject, fx.project.ID, model.VoteUp)
	require.NoError(t, err)

	var n int64
	db.Model(&model.Notification{}).Where("recipient_id = ?", ownerID).Count(&n)
	assert.EqualValues(t, 1, n)

	// 自己投自己不发
	_, _, err = svc.Cast(ctx, ownerID, model.TargetProject, fx.project.ID, model.VoteUp)
	require.NoError(t, err)
	db.Model(&model.Notification{}).Where("recipient_id = ?", ownerID).Count(&n)
	assert.EqualValues(t, 1, n)
}

func TestMyVoteAndCountsFallThroughToDB(t *testing.T) {
	db := openTestDB(t)
	svc := NewVoteService(db)
	fx := seedChain(t, db, ownerID, model.VisibilityPublic)
	ctx := context.Background()

	mine, err := svc.MyVote(ctx, strangerID, model.TargetProject, fx.project.ID)
	require.NoError(t, err)
	assert.Nil(t, mine)

	_, _, err = svc.Cast(ctx, strangerID, model.TargetProject, fx.project.ID, model.VoteUp)
	require.NoError(t, err)

	mine, err = svc.MyVote(ctx, strangerID, model.TargetProject, fx.project.ID)
	require.NoError(t, err)
	require.NotNil(t, mine)
	assert.Equal(t, model.VoteUp, mine.Type)

	// redis 未初始化时直接读库
	counts, err := svc.Counts(ctx, strangerID, model.TargetProject, fx.project.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts.Up)
	assert.EqualValues(t, 0, counts.Down)
}
