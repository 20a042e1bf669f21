package service

import (
	"context"
	"testing"

	"Project_Reviews/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetRoleGuards(t *testing.T) {
	db := openTestDB(t)
	svc := NewDashboardService(db)

	admin := &model.User{Username: "admin", Password: "x", Email: "a@example.com", Role: model.RoleAdmin}
	target := &model.User{Username: "target", Password: "x", Email: "t@example.com"}
	require.NoError(t, db.Create(admin).Error)
	require.NoError(t, db.Create(target).Error)

	// 不能动自己
	assert.ErrorIs(t, svc.SetRole(admin.ID, admin.ID, model.RoleUser), ErrSelfDemote)
	assert.ErrorIs(t, svc.SetRole(admin.ID, 999, model.RoleAdmin), ErrUserNotFound)
	assert.Error(t, svc.SetRole(admin.ID, target.ID, 7))

	require.NoError(t, svc.SetRole(admin.ID, target.ID, model.RoleAdmin))
	var got model.User
	require.NoError(t, db.First(&got, target.ID).Error)
	assert.Equal(t, model.RoleAdmin, got.Role)
}

func TestSetBanned(t *testing.T) {
	db := openTestDB(t)
	svc := NewDashboardService(db)

	admin := &model.User{Username: "admin", Password: "x", Email: "a@example.com", Role: model.RoleAdmin}
	target := &model.User{Username: "target", Password: "x", Email: "t@example.com"}
	require.NoError(t, db.Create(admin).Error)
	require.NoError(t, db.Create(target).Error)

	assert.ErrorIs(t, svc.SetBanned(admin.ID, admin.ID, true), ErrSelfDemote)

	require.NoError(t, svc.SetBanned(admin.ID, target.ID, true))
	var got model.User
	require.NoError(t, db.First(&got, target.ID).Error)
	assert.True(t, got.Banned)

	require.NoError(t, svc.SetBanned(admin.ID, target.ID, false))
	require.NoError(t, db.First(&got, target.ID).Error)
	assert.False(t, got.Banned)
}

func TestOwnerAndAdminStats(t *testing.T) {
	db := openTestDB(t)
	svc := NewDashboardService(db)
	fx := seedChain(t, db, ownerID, model.VisibilityPublic)
	ctx := context.Background()

	voteSvc := NewVoteService(db)
	_, _, err := voteSvc.Cast(ctx, strangerID, model.TargetProject, fx.project.ID, model.VoteUp)
	require.NoError(t, err)

	owner, err := svc.OwnerStats(ctx, ownerID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, owner.ProjectCount)
	assert.EqualValues(t, 1, owner.ReleaseCount)
	assert.EqualValues(t, 1, owner.ReviewCount)
	assert.EqualValues(t, 1, owner.UpVotes)

	admin, err := svc.AdminStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, admin.ProjectCount)
	assert.EqualValues(t, 1, admin.CommentCount)
	assert.EqualValues(t, 1, admin.VoteCount)
}
