package service

import (
	"testing"

	"Project_Reviews/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Project{},
		&model.Release{},
		&model.Comment{},
		&model.Review{},
		&model.Vote{},
		&model.Notification{},
		&model.NotificationOutbox{},
	))
	return db
}

// fixture 一套完整的归属链：分类 -> 项目 -> 版本 -> 评论/评价
type fixture struct {
	project *model.Project
	release *model.Release
	comment *model.Comment
	review  *model.Review
}

func seedChain(t *testing.T, db *gorm.DB, ownerID uint64, visibility string) fixture {
	t.Helper()
	p := &model.Project{
		OwnerID:    ownerID,
		CategoryID: 1,
		Title:      "项目",
		Status:     model.StatusProduction,
		Visibility: visibility,
	}
	require.NoError(t, db.Create(p).Error)
	rel := &model.Release{
		ProjectID:  p.ID,
		Version:    "1.0.0",
		Title:      "首发",
		Status:     model.StatusProduction,
		Visibility: visibility,
	}
	require.NoError(t, db.Create(rel).Error)
	cm := &model.Comment{ReleaseID: rel.ID, AuthorID: ownerID, Body: "不错"}
	require.NoError(t, db.Create(cm).Error)
	rv := &model.Review{ReleaseID: rel.ID, AuthorID: ownerID, Rating: 5, Feedback: "好用"}
	require.NoError(t, db.Create(rv).Error)
	return fixture{project: p, release: rel, comment: cm, review: rv}
}
