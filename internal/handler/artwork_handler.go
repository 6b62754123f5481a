package handler

import (
	"net/http"
	"strconv"

	"Aura_Community/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ArtworkHandler struct {
	svc     *service.ArtworkService
	likeSvc *service.ArtworkLikeService
}

type ArtworkCreateReq struct {
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
}

type CommentCreateReq struct {
	Content string `json:"content"`
}

func NewArtworkHandler(db *gorm.DB) *ArtworkHandler {
	return &ArtworkHandler{
		svc:     service.NewArtworkService(db),
		likeSvc: service.NewArtworkLikeService(db),
	}
}

func (h *ArtworkHandler) Create(c *gin.Context) {
	userID := currentUserID(c)

	var req ArtworkCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid params"})
		return
	}

	artwork, err := h.svc.CreateArtwork(c.Request.Context(), userID, req.Title, req.ImageURL)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, artwork)
}

func (h *ArtworkHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("size"))

	list, err := h.svc.List(c.Request.Context(), page, size)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *ArtworkHandler) Get(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	artwork, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, artwork)
}

func (h *ArtworkHandler) Delete(c *gin.Context) {
	userID := currentUserID(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	if err := h.svc.Delete(c.Request.Context(), userID, id); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Artwork deleted"})
}

// Like 点赞开关：每次调用翻转一次状态
func (h *ArtworkHandler) Like(c *gin.Context) {
	userID := currentUserID(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	liked, err := h.likeSvc.Toggle(c.Request.Context(), userID, id)
	if err != nil {
		writeErr(c, err)
		return
	}
	msg := "Like removed"
	if liked {
		msg = "Artwork liked"
	}
	c.JSON(http.StatusOK, gin.H{"message": msg, "liked": liked})
}

func (h *ArtworkHandler) LikeCount(c *gin.Context) {
	userID := currentUserID(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	cnt, err := h.likeSvc.GetCount(c.Request.Context(), userID, id)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": cnt})
}

func (h *ArtworkHandler) AddComment(c *gin.Context) {
	userID := currentUserID(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	var req CommentCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid params"})
		return
	}

	comment, err := h.svc.AddComment(c.Request.Context(), userID, id, req.Content)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *ArtworkHandler) ListComments(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("size"))

	list, err := h.svc.ListComments(c.Request.Context(), id, page, size)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}
