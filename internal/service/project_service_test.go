package service

import (
	"context"
	"testing"

	"Project_Reviews/internal/model"
	"Project_Reviews/internal/pkg"
	"Project_Reviews/internal/repository/mysql"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCategory(t *testing.T, svc *CategoryService) *model.Category {
	t.Helper()
	cat, err := svc.CreateCategory("工具", "", "")
	require.NoError(t, err)
	return cat
}

func TestCreateProjectDefaultsAndValidation(t *testing.T) {
	db := openTestDB(t)
	svc := NewProjectService(db)
	cat := seedCategory(t, NewCategoryService(db))

	p, err := svc.CreateProject(ownerID, ProjectInput{Title: "新项目", CategoryID: cat.ID})
	require.NoError(t, err)
	// 不填时落默认值
	assert.Equal(t, model.StatusDraft, p.Status)
	assert.Equal(t, model.VisibilityPrivate, p.Visibility)

	_, err = svc.CreateProject(ownerID, ProjectInput{Title: "坏状态", CategoryID: cat.ID, Status: "LAUNCHED"})
	assert.ErrorIs(t, err, ErrBadStatus)

	_, err = svc.CreateProject(ownerID, ProjectInput{Title: "坏分类", CategoryID: 999})
	assert.ErrorIs(t, err, ErrCategoryNotSet)
}

func TestGetProjectVisibility(t *testing.T) {
	db := openTestDB(t)
	svc := NewProjectService(db)
	cat := seedCategory(t, NewCategoryService(db))

	priv, err := svc.CreateProject(ownerID, ProjectInput{
		Title: "私有", CategoryID: cat.ID, Visibility: model.VisibilityPrivate})
	require.NoError(t, err)
	unlisted, err := svc.CreateProject(ownerID, ProjectInput{
		Title: "不公开列出", CategoryID: cat.ID, Visibility: model.VisibilityUnlisted})
	require.NoError(t, err)

	// 私有：只有所有者可见
	_, err = svc.GetProject(priv.ID, strangerID)
	assert.ErrorIs(t, err, ErrNotVisible)
	_, err = svc.GetProject(priv.ID, ownerID)
	assert.NoError(t, err)

	// UNLISTED：直链可达，但不出现在公开列表里
	_, err = svc.GetProject(unlisted.ID, strangerID)
	assert.NoError(t, err)

	res, err := svc.ListPublic(context.Background(), mysql.ProjectFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 0, res.TotalCount)
}

func TestDeleteProjectCascades(t *testing.T) {
	db := openTestDB(t)
	svc := NewProjectService(db)
	fx := seedChain(t, db, ownerID, model.VisibilityPublic)
	ctx := context.Background()

	voteSvc := NewVoteService(db)
	_, _, err := voteSvc.Cast(ctx, strangerID, model.TargetComment, fx.comment.ID, model.VoteUp)
	require.NoError(t, err)

	// 外人删不掉
	assert.ErrorIs(t, svc.DeleteProject(ctx, strangerID, fx.project.ID), ErrNotOwner)

	require.NoError(t, svc.DeleteProject(ctx, ownerID, fx.project.ID))

	for _, m := range []any{&model.Release{}, &model.Comment{}, &model.Review{}, &model.Vote{}} {
		var cnt int64
		db.Model(m).Count(&cnt)
		assert.EqualValues(t, 0, cnt)
	}
}

func TestReleaseListOwnerView(t *testing.T) {
	db := openTestDB(t)
	relSvc := NewReleaseService(db)
	fx := seedChain(t, db, ownerID, model.VisibilityPublic)
	ctx := context.Background()

	// 公开项目下再挂一个私有版本
	_, err := relSvc.CreateRelease(ownerID, fx.project.ID, ReleaseInput{
		Version: "2.0.0-rc1", Title: "内测版", Visibility: model.VisibilityPrivate})
	require.NoError(t, err)

	mine, err := relSvc.ListByProject(ctx, fx.project.ID, ownerID, pkg.PageQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, mine.TotalCount)

	// 外人看不到私有版本
	theirs, err := relSvc.ListByProject(ctx, fx.project.ID, strangerID, pkg.PageQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, theirs.TotalCount)
}
