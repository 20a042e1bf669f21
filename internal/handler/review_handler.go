package handler

import (
	"errors"
	"net/http"

	"Project_Reviews/internal/repository/mysql"
	"Project_Reviews/internal/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	svc *service.ReviewService
}

func NewReviewHandler() *ReviewHandler {
	return &ReviewHandler{svc: service.NewReviewService(mysql.DB)}
}

// Create 发评价接口，评分1~5
func (h *ReviewHandler) Create(c *gin.Context) {
	releaseID, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid release id"})
		return
	}
	var req service.ReviewInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	rv, err := h.svc.CreateReview(c.Request.Context(), currentUserID(c), releaseID, req)
	if err != nil {
		writeReviewErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": rv.ID})
}

// Update 改评价接口，仅作者本人
func (h *ReviewHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid review id"})
		return
	}
	var req service.ReviewInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	if err := h.svc.UpdateReview(currentUserID(c), id, req); err != nil {
		writeReviewErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "updated"})
}

// Delete 删评价接口，名下投票一并清理
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid review id"})
		return
	}
	if err := h.svc.DeleteReview(c.Request.Context(), currentUserID(c), id); err != nil {
		writeReviewErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}

// ListByRelease 评价列表接口
func (h *ReviewHandler) ListByRelease(c *gin.Context) {
	releaseID, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid release id"})
		return
	}
	res, err := h.svc.ListByRelease(c.Request.Context(), releaseID, viewerID(c), bindPage(c))
	if err != nil {
		writeReviewErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Summary 评分概览接口，数量 + 平均分
func (h *ReviewHandler) Summary(c *gin.Context) {
	releaseID, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid release id"})
		return
	}
	s, err := h.svc.Summary(c.Request.Context(), releaseID, viewerID(c))
	if err != nil {
		writeReviewErr(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func writeReviewErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrReleaseNotVisible):
		c.JSON(http.StatusNotFound, gin.H{"msg": "release not found"})
	case errors.Is(err, service.ErrReviewNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
	case errors.Is(err, service.ErrBadRating):
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
	}
}
