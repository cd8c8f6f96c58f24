// Package service 组装各业务服务
package service

import (
	"fmt"

	"github.com/fawazbashr/manus-bot/internal/config"
	"github.com/fawazbashr/manus-bot/internal/service/completion"
	"github.com/fawazbashr/manus-bot/internal/service/registry"
	"github.com/fawazbashr/manus-bot/internal/service/session"
	"github.com/fawazbashr/manus-bot/internal/service/turn"
)

// Services 服务集合
type Services struct {
	Config     *config.Config
	Registry   *registry.Registry
	SessionMgr *session.Manager
	Completion *completion.Client
	Turn       *turn.Orchestrator
}

// NewServices 创建所有服务
func NewServices(cfg *config.Config) (*Services, error) {
	reg, err := registry.New(cfg.Models)
	if err != nil {
		return nil, fmt.Errorf("build model registry: %w", err)
	}

	sessionMgr := session.NewManager(reg, cfg.AI.SystemPrompt, cfg.Session.MaxHistoryMessages)
	completionClient := completion.NewClient(&cfg.AI)
	orchestrator := turn.NewOrchestrator(sessionMgr, reg, completionClient)

	return &Services{
		Config:     cfg,
		Registry:   reg,
		SessionMgr: sessionMgr,
		Completion: completionClient,
		Turn:       orchestrator,
	}, nil
}
