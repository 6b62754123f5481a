package handler

import (
	"errors"
	"log"
	"net/http"

	"Aura_Community/internal/repository/mysql"
	"Aura_Community/internal/service"

	"github.com/gin-gonic/gin"
)

// writeErr 把领域错误翻译成HTTP状态码；未分类错误一律500且不外泄细节
func writeErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, mysql.ErrSessionNotFound),
		errors.Is(err, mysql.ErrArtworkNotFound),
		errors.Is(err, mysql.ErrPostNotFound),
		errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, mysql.ErrAlreadyJoined),
		errors.Is(err, mysql.ErrSessionFull),
		errors.Is(err, service.ErrCreatorLeave),
		errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrUserExists),
		errors.Is(err, service.ErrInvalidPassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func currentUserID(c *gin.Context) uint64 {
	v, _ := c.Get("user_id")
	id, _ := v.(uint64)
	return id
}
