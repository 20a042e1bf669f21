package service

import (
	"context"
	"testing"

	"Project_Reviews/internal/model"
	"Project_Reviews/internal/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCommentAndReply(t *testing.T) {
	db := openTestDB(t)
	svc := NewCommentService(db)
	fx := seedChain(t, db, ownerID, model.VisibilityPublic)
	ctx := context.Background()

	top, err := svc.CreateComment(ctx, strangerID, fx.release.ID, nil, "写得不错")
	require.NoError(t, err)

	// 一层回复
	reply, err := svc.CreateComment(ctx, ownerID, fx.release.ID, &top.ID, "谢谢")
	require.NoError(t, err)

	// 回复的回复（第二层）拒绝
	_, err = svc.CreateComment(ctx, strangerID, fx.release.ID, &reply.ID, "不客气")
	assert.ErrorIs(t, err, ErrBadParent)
}

func TestCreateCommentParentMustMatchRelease(t *testing.T) {
	db := openTestDB(t)
	svc := NewCommentService(db)
	fx := seedChain(t, db, ownerID, model.VisibilityPublic)
	other := seedChain(t, db, ownerID, model.VisibilityPublic)
	ctx := context.Background()

	top, err := svc.CreateComment(ctx, strangerID, fx.release.ID, nil, "顶")
	require.NoError(t, err)

	// 父评论挂在别的版本下
	_, err = svc.CreateComment(ctx, strangerID, other.release.ID, &top.ID, "串台了")
	assert.ErrorIs(t, err, ErrBadParent)
}

func TestCreateCommentPrivateReleaseHidden(t *testing.T) {
	db := openTestDB(t)
	svc := NewCommentService(db)
	fx := seedChain(t, db, ownerID, model.VisibilityPrivate)
	ctx := context.Background()

	_, err := svc.CreateComment(ctx, strangerID, fx.release.ID, nil, "看不见的版本")
	assert.ErrorIs(t, err, ErrReleaseNotVisible)

	// 所有者自己可以评论
	_, err = svc.CreateComment(ctx, ownerID, fx.release.ID, nil, "自言自语")
	assert.NoError(t, err)
}

func TestDeleteCommentTombstone(t *testing.T) {
	db := openTestDB(t)
	svc := NewCommentService(db)
	fx := seedChain(t, db, ownerID, model.VisibilityPublic)
	ctx := context.Background()

	top, err := svc.CreateComment(ctx, strangerID, fx.release.ID, nil, "会被删的评论")
	require.NoError(t, err)
	_, err = svc.CreateComment(ctx, ownerID, fx.release.ID, &top.ID, "挂在下面的回复")
	require.NoError(t, err)

	// 别人删不掉
	assert.ErrorIs(t, svc.DeleteComment(ctx, ownerID, top.ID), ErrCommentNotFound)

	require.NoError(t, svc.DeleteComment(ctx, strangerID, top.ID))
	// 幂等
	require.NoError(t, svc.DeleteComment(ctx, strangerID, top.ID))

	res, err := svc.ListByRelease(ctx, fx.release.ID, 0, pkg.PageQuery{Page: 1, PageSize: 20})
	require.NoError(t, err)
	views := res.Items.([]CommentView)

	// 墓碑行保留占位，正文隐藏，回复还在
	var found bool
	for _, v := range views {
		if v.ID == top.ID {
			found = true
			assert.True(t, v.Deleted)
			assert.NotEqual(t, "会被删的评论", v.Body)
		}
	}
	assert.True(t, found)
}
