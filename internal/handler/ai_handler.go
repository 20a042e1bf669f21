package handler

import (
	"errors"
	"net/http"

	"Project_Reviews/internal/config"
	"Project_Reviews/internal/pkg"
	"Project_Reviews/internal/repository/mysql"
	"Project_Reviews/internal/service"

	"github.com/gin-gonic/gin"
)

type AIHandler struct {
	svc *service.AIService
}

func NewAIHandler() *AIHandler {
	client := pkg.NewOpenAIClient(
		config.GetEnv("OPENAI_API_KEY", ""),
		config.GetEnv("OPENAI_MODEL", ""),
	)
	return &AIHandler{svc: service.NewAIService(mysql.DB, client)}
}

type draftReq struct {
	Kind  string `json:"kind" binding:"required"`
	Topic string `json:"topic" binding:"required"`
}

// Draft 生成描述草稿接口（订阅专属）
func (h *AIHandler) Draft(c *gin.Context) {
	var req draftReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	md, err := h.svc.Draft(c.Request.Context(), req.Kind, req.Topic)
	if err != nil {
		writeAIErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"markdown": md})
}

type chatReq struct {
	ReleaseID uint64 `json:"release_id" binding:"required"`
	Question  string `json:"question" binding:"required"`
}

// Chat 围绕版本内容的问答接口（订阅专属），SSE流式返回
func (h *AIHandler) Chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	err := h.svc.ChatStream(c.Request.Context(), currentUserID(c), req.ReleaseID, req.Question,
		func(chunk string) error {
			c.SSEvent("message", chunk)
			c.Writer.Flush()
			return nil
		})
	if err != nil {
		// 头已发出去就只能在流里报错
		if c.Writer.Written() {
			c.SSEvent("error", err.Error())
			c.Writer.Flush()
			return
		}
		writeAIErr(c, err)
		return
	}
	c.SSEvent("done", "")
	c.Writer.Flush()
}

func writeAIErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrReleaseNotVisible):
		c.JSON(http.StatusNotFound, gin.H{"msg": "release not found"})
	case errors.Is(err, service.ErrBadDraftKind), errors.Is(err, service.ErrEmptyPrompt):
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
	case errors.Is(err, pkg.ErrAIUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"msg": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
	}
}
