// Package completion 封装对 OpenAI 兼容补全服务的调用
package completion

import (
	"context"
	"fmt"
	"strings"
	"sync"

	einoopenai "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	goopenai "github.com/sashabaranov/go-openai"

	"github.com/fawazbashr/manus-bot/internal/config"
)

// Client 补全服务客户端。
// eino 的 ChatModel 在构造时绑定模型名，所以按模型 ID 惰性创建并缓存。
type Client struct {
	apiKey  string
	baseURL string

	mu     sync.Mutex
	models map[string]model.ChatModel

	imageClient *goopenai.Client
	imageModel  string
	imageSize   string
}

// NewClient 创建补全客户端
func NewClient(cfg *config.AIConfig) *Client {
	imgCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		imgCfg.BaseURL = cfg.BaseURL
	}

	return &Client{
		apiKey:      cfg.APIKey,
		baseURL:     cfg.BaseURL,
		models:      make(map[string]model.ChatModel),
		imageClient: goopenai.NewClientWithConfig(imgCfg),
		imageModel:  cfg.ImageModel,
		imageSize:   cfg.ImageSize,
	}
}

// chatModel 获取指定模型的 ChatModel，不存在时创建
func (c *Client) chatModel(ctx context.Context, modelID string) (model.ChatModel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cm, ok := c.models[modelID]; ok {
		return cm, nil
	}

	cm, err := einoopenai.NewChatModel(ctx, &einoopenai.ChatModelConfig{
		APIKey:  c.apiKey,
		BaseURL: c.baseURL,
		Model:   modelID,
	})
	if err != nil {
		return nil, fmt.Errorf("create chat model %s: %w", modelID, err)
	}

	c.models[modelID] = cm
	return cm, nil
}

// Generate 按指定模型补全消息，返回回复文本
func (c *Client) Generate(ctx context.Context, modelID string, messages []*schema.Message) (string, error) {
	cm, err := c.chatModel(ctx, modelID)
	if err != nil {
		return "", err
	}

	resp, err := cm.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("generate with %s: %w", modelID, err)
	}

	reply := strings.TrimSpace(resp.Content)
	if reply == "" {
		return "", fmt.Errorf("empty completion from %s", modelID)
	}
	return reply, nil
}

// GenerateImage 生成图片，返回图片 URL
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	resp, err := c.imageClient.CreateImage(ctx, goopenai.ImageRequest{
		Model:  c.imageModel,
		Prompt: prompt,
		N:      1,
		Size:   c.imageSize,
	})
	if err != nil {
		return "", fmt.Errorf("create image: %w", err)
	}

	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", fmt.Errorf("empty image response")
	}
	return resp.Data[0].URL, nil
}
