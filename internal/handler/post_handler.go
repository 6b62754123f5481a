package handler

import (
	"net/http"
	"strconv"

	"Aura_Community/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PostHandler struct {
	svc *service.PostService
}

type PostCreateReq struct {
	Content string `json:"content"`
}

func NewPostHandler(db *gorm.DB) *PostHandler {
	return &PostHandler{
		svc: service.NewPostService(db),
	}
}

func (h *PostHandler) Create(c *gin.Context) {
	userID := currentUserID(c)

	var req PostCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid params"})
		return
	}

	post, err := h.svc.CreatePost(c.Request.Context(), userID, req.Content)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// List 游标分页，首页不传 last_id
func (h *PostHandler) List(c *gin.Context) {
	lastID, _ := strconv.ParseUint(c.Query("last_id"), 10, 64)
	size, _ := strconv.Atoi(c.Query("size"))

	list, next, err := h.svc.List(c.Request.Context(), lastID, size)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list, "next_last_id": next})
}

func (h *PostHandler) Delete(c *gin.Context) {
	userID := currentUserID(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	if err := h.svc.DeletePost(c.Request.Context(), userID, id); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}
