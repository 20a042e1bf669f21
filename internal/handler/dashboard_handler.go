package handler

import (
	"errors"
	"net/http"

	"Project_Reviews/internal/repository/mysql"
	"Project_Reviews/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	svc *service.DashboardService
}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{svc: service.NewDashboardService(mysql.DB)}
}

// OwnerStats 我的项目数据概览接口（订阅专属）
func (h *DashboardHandler) OwnerStats(c *gin.Context) {
	stats, err := h.svc.OwnerStats(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// AdminStats 全站统计接口（管理员）
func (h *DashboardHandler) AdminStats(c *gin.Context) {
	stats, err := h.svc.AdminStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ListUsers 用户列表接口（管理员），支持用户名/邮箱搜索
func (h *DashboardHandler) ListUsers(c *gin.Context) {
	res, err := h.svc.ListUsers(c.Request.Context(), bindPage(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, res)
}

type setRoleReq struct {
	Role *int `json:"role" binding:"required"`
}

// SetRole 设置用户角色接口（管理员），不能动自己
func (h *DashboardHandler) SetRole(c *gin.Context) {
	targetID, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid user id"})
		return
	}
	var req setRoleReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Role == nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	if err := h.svc.SetRole(currentUserID(c), targetID, *req.Role); err != nil {
		writeAdminErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "role updated"})
}

type setBannedReq struct {
	Banned *bool `json:"banned" binding:"required"`
}

// SetBanned 封禁/解封接口（管理员），封禁即刻踢下线
func (h *DashboardHandler) SetBanned(c *gin.Context) {
	targetID, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid user id"})
		return
	}
	var req setBannedReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Banned == nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	if err := h.svc.SetBanned(currentUserID(c), targetID, *req.Banned); err != nil {
		writeAdminErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "updated"})
}

func writeAdminErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSelfDemote):
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
	}
}
