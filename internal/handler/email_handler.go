package handler

import (
	"net/http"

	"Project_Reviews/internal/service"

	"github.com/gin-gonic/gin"
)

type EmailHandler struct {
	svc *service.EmailService
}

func NewEmailHandler() *EmailHandler {
	return &EmailHandler{svc: service.NewEmailService()}
}

type sendCodeReq struct {
	Email string `json:"email" binding:"required,email"`
}

// SendCode 发送验证码接口，scope 区分注册/重置用途
func (h *EmailHandler) SendCode(c *gin.Context) {
	scope := c.Param("scope")
	var req sendCodeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	if err := h.svc.SendCode(scope, req.Email); err != nil {
		if err == service.ErrBadScope {
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "send code failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "code sent"})
}

type sendMailReq struct {
	To    string `json:"to" binding:"required,email"`
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
	URL   string `json:"url"`
}

// SendTransactional 管理端直发通知邮件
func (h *EmailHandler) SendTransactional(c *gin.Context) {
	var req sendMailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	if err := h.svc.SendTransactional(req.To, req.Title, req.Body, req.URL); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "send mail failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "mail sent"})
}
