package handler

import (
	"errors"
	"net/http"

	"Project_Reviews/internal/repository/mysql"
	"Project_Reviews/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CategoryHandler struct {
	svc *service.CategoryService
}

func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{svc: service.NewCategoryService(mysql.DB)}
}

type categoryReq struct {
	Name          string `json:"name" binding:"required,max=64"`
	ImageURL      string `json:"image_url"`
	ImagePublicID string `json:"image_public_id"`
}

// Create 新建分类接口（管理员）
func (h *CategoryHandler) Create(c *gin.Context) {
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	cat, err := h.svc.CreateCategory(req.Name, req.ImageURL, req.ImagePublicID)
	if err != nil {
		if errors.Is(err, service.ErrCategoryExists) {
			c.JSON(http.StatusConflict, gin.H{"msg": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cat)
}

// Update 更新分类接口（管理员）
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid category id"})
		return
	}
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	if err := h.svc.UpdateCategory(id, req.Name, req.ImageURL, req.ImagePublicID); err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryExists):
			c.JSON(http.StatusConflict, gin.H{"msg": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"msg": "category not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "updated"})
}

// Delete 删除分类接口（管理员），有项目挂着时拒绝
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid category id"})
		return
	}
	if err := h.svc.DeleteCategory(id); err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryInUse):
			c.JSON(http.StatusConflict, gin.H{"msg": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"msg": "category not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}

// Get 分类详情接口（公开）
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid category id"})
		return
	}
	cat, err := h.svc.GetCategory(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cat)
}

// List 分类列表接口（公开）
func (h *CategoryHandler) List(c *gin.Context) {
	res, err := h.svc.ListCategories(c.Request.Context(), bindPage(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, res)
}
