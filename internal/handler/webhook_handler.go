// Package handler 提供 HTTP 处理器
package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// UpdateSink 接收 Telegram 更新
type UpdateSink interface {
	Enqueue(update tgbotapi.Update)
}

// WebhookHandler Telegram Webhook 处理器
type WebhookHandler struct {
	sink UpdateSink
}

// NewWebhookHandler 创建 Webhook 处理器
func NewWebhookHandler(sink UpdateSink) *WebhookHandler {
	return &WebhookHandler{sink: sink}
}

// HandleUpdate 接收一条 Telegram 更新并投递给 Bot。
// Telegram 只关心 2xx，处理结果不随响应返回。
func (h *WebhookHandler) HandleUpdate(c *gin.Context) {
	var update tgbotapi.Update
	if err := json.NewDecoder(c.Request.Body).Decode(&update); err != nil {
		log.Printf("decode webhook update failed: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    -1,
			"message": "invalid update payload",
		})
		return
	}

	h.sink.Enqueue(update)
	c.Status(http.StatusOK)
}
