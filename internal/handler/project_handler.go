package handler

import (
	"errors"
	"net/http"
	"strconv"

	"Project_Reviews/internal/repository/mysql"
	"Project_Reviews/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProjectHandler struct {
	svc *service.ProjectService
}

func NewProjectHandler() *ProjectHandler {
	return &ProjectHandler{svc: service.NewProjectService(mysql.DB)}
}

// Create 创建项目接口
func (h *ProjectHandler) Create(c *gin.Context) {
	var req service.ProjectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	p, err := h.svc.CreateProject(currentUserID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

// Update 更新项目接口，仅所有者
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid project id"})
		return
	}
	var req service.ProjectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	if err := h.svc.UpdateProject(currentUserID(c), id, req); err != nil {
		writeProjectErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "updated"})
}

// Delete 删除项目接口，连带版本/评论/评价/投票一起清
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid project id"})
		return
	}
	if err := h.svc.DeleteProject(c.Request.Context(), currentUserID(c), id); err != nil {
		writeProjectErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}

// Get 项目详情接口，匿名可看公开/不公开列出的项目
func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid project id"})
		return
	}
	p, err := h.svc.GetProject(id, viewerID(c))
	if err != nil {
		writeProjectErr(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// ListPublic 公开项目列表接口，支持分类/状态过滤和标题搜索
func (h *ProjectHandler) ListPublic(c *gin.Context) {
	f := mysql.ProjectFilter{PageQuery: bindPage(c)}
	if v := c.Query("category_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid category_id"})
			return
		}
		f.CategoryID = id
	}
	f.Status = c.Query("status")

	res, err := h.svc.ListPublic(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListMine 我的项目列表接口，含私有项目
func (h *ProjectHandler) ListMine(c *gin.Context) {
	res, err := h.svc.ListMine(c.Request.Context(), currentUserID(c), bindPage(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, res)
}

func writeProjectErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, service.ErrNotVisible):
		// 不可见和不存在对外同一口径
		c.JSON(http.StatusNotFound, gin.H{"msg": "project not found"})
	case errors.Is(err, service.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"msg": err.Error()})
	case errors.Is(err, service.ErrBadStatus), errors.Is(err, service.ErrBadVisibility),
		errors.Is(err, service.ErrCategoryNotSet):
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
	}
}
