package handler

import (
	"errors"
	"net/http"

	"Project_Reviews/internal/repository/mysql"
	"Project_Reviews/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReleaseHandler struct {
	svc *service.ReleaseService
}

func NewReleaseHandler() *ReleaseHandler {
	return &ReleaseHandler{svc: service.NewReleaseService(mysql.DB)}
}

// Create 创建版本接口，仅项目所有者
func (h *ReleaseHandler) Create(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid project id"})
		return
	}
	var req service.ReleaseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	rel, err := h.svc.CreateRelease(currentUserID(c), projectID, req)
	if err != nil {
		writeReleaseErr(c, err)
		return
	}
	c.JSON(http.StatusOK, rel)
}

// Update 更新版本接口
func (h *ReleaseHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid release id"})
		return
	}
	var req service.ReleaseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	if err := h.svc.UpdateRelease(currentUserID(c), id, req); err != nil {
		writeReleaseErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "updated"})
}

// Delete 删除版本接口，连带评论/评价/投票
func (h *ReleaseHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid release id"})
		return
	}
	if err := h.svc.DeleteRelease(c.Request.Context(), currentUserID(c), id); err != nil {
		writeReleaseErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}

// Get 版本详情接口
func (h *ReleaseHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid release id"})
		return
	}
	rel, err := h.svc.GetRelease(id, viewerID(c))
	if err != nil {
		writeReleaseErr(c, err)
		return
	}
	c.JSON(http.StatusOK, rel)
}

// ListByProject 项目版本列表接口，所有者能看到私有版本
func (h *ReleaseHandler) ListByProject(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid project id"})
		return
	}
	res, err := h.svc.ListByProject(c.Request.Context(), projectID, viewerID(c), bindPage(c))
	if err != nil {
		writeReleaseErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func writeReleaseErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound),
		errors.Is(err, service.ErrReleaseNotVisible),
		errors.Is(err, service.ErrNotVisible):
		c.JSON(http.StatusNotFound, gin.H{"msg": "release not found"})
	case errors.Is(err, service.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"msg": err.Error()})
	case errors.Is(err, service.ErrBadStatus), errors.Is(err, service.ErrBadVisibility):
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
	}
}
