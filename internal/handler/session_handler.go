package handler

import (
	"net/http"
	"strconv"

	"Aura_Community/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SessionHandler struct {
	svc *service.SessionService
}

type SessionCreateReq struct {
	Title        string `json:"title"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	MaxAttendees int    `json:"maxAttendees"`
}

func NewSessionHandler(db *gorm.DB) *SessionHandler {
	return &SessionHandler{
		svc: service.NewSessionService(db),
	}
}

func (h *SessionHandler) Create(c *gin.Context) {
	userID := currentUserID(c)

	var req SessionCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid params"})
		return
	}

	view, err := h.svc.CreateSession(c.Request.Context(), userID, req.Title, req.Date, req.Time, req.MaxAttendees)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *SessionHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *SessionHandler) Get(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	view, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *SessionHandler) Join(c *gin.Context) {
	userID := currentUserID(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	view, err := h.svc.Join(c.Request.Context(), userID, id)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *SessionHandler) Leave(c *gin.Context) {
	userID := currentUserID(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	view, err := h.svc.Leave(c.Request.Context(), userID, id)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *SessionHandler) Delete(c *gin.Context) {
	userID := currentUserID(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	if err := h.svc.Delete(c.Request.Context(), userID, id); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session deleted"})
}
