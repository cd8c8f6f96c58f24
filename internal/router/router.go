// Package router 设置 HTTP 路由
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/fawazbashr/manus-bot/internal/config"
	"github.com/fawazbashr/manus-bot/internal/handler"
	"github.com/fawazbashr/manus-bot/internal/middleware"
)

// SetupRouter 设置路由。webhook 为 nil 时不注册 Webhook 路由（Long Polling 模式）。
func SetupRouter(cfg *config.Config, health *handler.HealthHandler, webhook *handler.WebhookHandler) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.LoggingMiddleware())

	// 健康检查
	r.GET("/health", health.Health)

	// Telegram Webhook（push 模式）
	if webhook != nil {
		r.POST("/telegram/webhook",
			middleware.WebhookAuthMiddleware(cfg.Telegram.WebhookSecret),
			webhook.HandleUpdate,
		)
	}

	return r
}
