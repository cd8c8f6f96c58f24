package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/fawazbashr/manus-bot/internal/bot"
	"github.com/fawazbashr/manus-bot/internal/config"
	"github.com/fawazbashr/manus-bot/internal/handler"
	"github.com/fawazbashr/manus-bot/internal/router"
	"github.com/fawazbashr/manus-bot/internal/service"
)

func main() {
	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./configs/config.yaml"
	}
	if _, err := os.Stat(configPath); err != nil {
		// 没有配置文件时完全依赖环境变量
		configPath = ""
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 设置 Gin 模式
	gin.SetMode(cfg.Server.Mode)

	// 初始化各层
	services, err := service.NewServices(cfg)
	if err != nil {
		log.Fatalf("Failed to init services: %v", err)
	}

	// 初始化 Telegram Bot API
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		log.Fatalf("Failed to init telegram bot: %v", err)
	}
	api.Debug = cfg.Telegram.Debug
	log.Printf("Authorized on telegram account %s", api.Self.UserName)

	b := bot.New(api, services, &cfg.Telegram)

	// 空闲会话回收
	stopCleanup := services.SessionMgr.StartCleanup(
		time.Duration(cfg.Session.IdleTTLSeconds)*time.Second,
		time.Duration(cfg.Session.CleanupIntervalSeconds)*time.Second,
	)
	defer stopCleanup()

	// 初始化路由
	var webhookHandler *handler.WebhookHandler
	if cfg.Telegram.WebhookEnabled {
		webhookHandler = handler.NewWebhookHandler(b)
	}
	healthHandler := handler.NewHealthHandler(cfg.App.Version, services.SessionMgr)
	r := router.SetupRouter(cfg, healthHandler, webhookHandler)

	// 创建 HTTP 服务器
	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// 启动服务器
	go func() {
		log.Printf("Server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// 启动 Bot
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Printf("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Printf("Bye")
}
