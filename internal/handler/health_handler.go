package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fawazbashr/manus-bot/internal/service/session"
)

// SessionStats 会话统计来源
type SessionStats interface {
	Stats() session.Stats
}

// HealthHandler 健康检查处理器
type HealthHandler struct {
	version  string
	sessions SessionStats
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(version string, sessions SessionStats) *HealthHandler {
	return &HealthHandler{version: version, sessions: sessions}
}

// Health 健康检查，附带会话统计
func (h *HealthHandler) Health(c *gin.Context) {
	stats := h.sessions.Stats()
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"version":  h.version,
		"sessions": stats.Sessions,
		"messages": stats.Messages,
	})
}
