package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"Project_Reviews/internal/model"
	"Project_Reviews/internal/repository/mysql"
	"Project_Reviews/internal/service"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	svc *service.VoteService
}

func NewVoteHandler() *VoteHandler {
	return &VoteHandler{svc: service.NewVoteService(mysql.DB)}
}

type castVoteReq struct {
	Target   string `json:"target" binding:"required"`
	TargetID uint64 `json:"target_id" binding:"required"`
	Type     string `json:"type" binding:"required"`
}

// Cast 投票接口：同方向再投是撤票，反方向是换边
func (h *VoteHandler) Cast(c *gin.Context) {
	var req castVoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	req.Target = strings.ToUpper(req.Target)
	req.Type = strings.ToUpper(req.Type)

	vote, removed, err := h.svc.Cast(c.Request.Context(), currentUserID(c), req.Target, req.TargetID, req.Type)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCannotVote):
			c.JSON(http.StatusForbidden, gin.H{"msg": err.Error()})
		case errors.Is(err, mysql.ErrUnknownTarget):
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		}
		return
	}
	if removed {
		c.JSON(http.StatusOK, gin.H{"removed": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": false, "vote": vote})
}

// Status 查询目标的计数和当前用户的投票状态
func (h *VoteHandler) Status(c *gin.Context) {
	target := strings.ToUpper(c.Query("target"))
	targetID, err := strconv.ParseUint(c.Query("target_id"), 10, 64)
	if err != nil || targetID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid target_id"})
		return
	}
	switch target {
	case model.TargetProject, model.TargetRelease, model.TargetComment, model.TargetReview:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid target"})
		return
	}

	userID := currentUserID(c)
	counts, err := h.svc.Counts(c.Request.Context(), userID, target, targetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}
	mine, err := h.svc.MyVote(c.Request.Context(), userID, target, targetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}

	resp := gin.H{"up": counts.Up, "down": counts.Down, "my_vote": nil}
	if mine != nil {
		resp["my_vote"] = mine.Type
	}
	c.JSON(http.StatusOK, resp)
}
