package handler

import (
	"net/http"

	"Aura_Community/internal/service"

	"github.com/gin-gonic/gin"
)

type EmailHandler struct {
	svc *service.EmailService
}

type SendCodeReq struct {
	Email string `json:"email"`
}

func NewEmailHandler(svc *service.EmailService) *EmailHandler {
	return &EmailHandler{svc: svc}
}

// SendCode 发送验证码，scope 只接受 register / reset
func (h *EmailHandler) SendCode(c *gin.Context) {
	scope := c.Param("scope")
	if scope != "register" && scope != "reset" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scope"})
		return
	}

	var req SendCodeReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid params"})
		return
	}

	if err := h.svc.SendCode(scope, req.Email); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "code sent"})
}
