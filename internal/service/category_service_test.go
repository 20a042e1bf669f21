package service

import (
	"context"
	"testing"

	"Project_Reviews/internal/model"
	"Project_Reviews/internal/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategoryDuplicateNameCI(t *testing.T) {
	db := openTestDB(t)
	svc := NewCategoryService(db)

	_, err := svc.CreateCategory("Web Framework", "", "")
	require.NoError(t, err)

	// 大小写不同也算重名
	_, err = svc.CreateCategory("web framework", "", "")
	assert.ErrorIs(t, err, ErrCategoryExists)
}

func TestDeleteCategoryInUse(t *testing.T) {
	db := openTestDB(t)
	svc := NewCategoryService(db)

	cat, err := svc.CreateCategory("CLI 工具", "", "")
	require.NoError(t, err)

	require.NoError(t, db.Create(&model.Project{
		OwnerID: 1, CategoryID: cat.ID, Title: "挂在分类下的项目",
		Status: model.StatusDraft, Visibility: model.VisibilityPrivate,
	}).Error)

	assert.ErrorIs(t, svc.DeleteCategory(cat.ID), ErrCategoryInUse)

	// 项目删掉之后才放行
	require.NoError(t, db.Where("category_id = ?", cat.ID).Delete(&model.Project{}).Error)
	assert.NoError(t, svc.DeleteCategory(cat.ID))
}

func TestUpdateCategoryRenameConflict(t *testing.T) {
	db := openTestDB(t)
	svc := NewCategoryService(db)

	a, err := svc.CreateCategory("数据库", "", "")
	require.NoError(t, err)
	_, err = svc.CreateCategory("消息队列", "", "")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.UpdateCategory(a.ID, "消息队列", "", ""), ErrCategoryExists)
	// 改成自己现在的名字不算冲突
	assert.NoError(t, svc.UpdateCategory(a.ID, "数据库", "", ""))
}

func TestListCategoriesPagination(t *testing.T) {
	db := openTestDB(t)
	svc := NewCategoryService(db)

	for _, name := range []string{"一", "二", "三"} {
		_, err := svc.CreateCategory("分类"+name, "", "")
		require.NoError(t, err)
	}

	res, err := svc.ListCategories(context.Background(), pkg.PageQuery{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, res.TotalCount)
	assert.EqualValues(t, 2, res.TotalPages)
	assert.True(t, res.HasNextPage)
	assert.False(t, res.HasPreviousPage)
}
