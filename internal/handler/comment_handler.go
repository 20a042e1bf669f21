package handler

import (
	"errors"
	"net/http"

	"Project_Reviews/internal/repository/mysql"
	"Project_Reviews/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	svc *service.CommentService
}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{svc: service.NewCommentService(mysql.DB)}
}

type createCommentReq struct {
	Body     string  `json:"body" binding:"required"`
	ParentID *uint64 `json:"parent_id"`
}

// Create 发评论接口，带 parent_id 是一层回复
func (h *CommentHandler) Create(c *gin.Context) {
	releaseID, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid release id"})
		return
	}
	var req createCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	cm, err := h.svc.CreateComment(c.Request.Context(), currentUserID(c), releaseID, req.ParentID, req.Body)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReleaseNotVisible):
			c.JSON(http.StatusNotFound, gin.H{"msg": "release not found"})
		case errors.Is(err, service.ErrBadParent), errors.Is(err, service.ErrEmptyBody):
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": cm.ID})
}

// Delete 删评论接口，软删留墓碑
func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid comment id"})
		return
	}
	if err := h.svc.DeleteComment(c.Request.Context(), currentUserID(c), id); err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}

// ListByRelease 评论列表接口，按时间正序，已删评论占位展示
func (h *CommentHandler) ListByRelease(c *gin.Context) {
	releaseID, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid release id"})
		return
	}
	res, err := h.svc.ListByRelease(c.Request.Context(), releaseID, viewerID(c), bindPage(c))
	if err != nil {
		if errors.Is(err, service.ErrReleaseNotVisible) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "release not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, res)
}
