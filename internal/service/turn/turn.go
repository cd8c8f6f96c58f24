// Package turn 提供单轮对话编排：组装请求、调用补全服务、提交回复
package turn

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"
	"github.com/fawazbashr/manus-bot/internal/service/registry"
	"github.com/fawazbashr/manus-bot/internal/service/session"
)

// ErrEmptyInput 输入为空或全空白
var ErrEmptyInput = errors.New("empty input")

// CompletionError 补全服务调用失败（网络、响应异常、空结果）
type CompletionError struct {
	Err error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion failed: %v", e.Err)
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}

// Completer 补全服务客户端
type Completer interface {
	// Generate 按指定模型补全一段有序消息，返回回复文本
	Generate(ctx context.Context, modelID string, messages []*schema.Message) (string, error)
	// GenerateImage 按描述生成图片，返回图片 URL
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// Orchestrator 单轮对话编排器
type Orchestrator struct {
	sessions  *session.Manager
	registry  *registry.Registry
	completer Completer
}

// NewOrchestrator 创建编排器
func NewOrchestrator(sessions *session.Manager, reg *registry.Registry, completer Completer) *Orchestrator {
	return &Orchestrator{
		sessions:  sessions,
		registry:  reg,
		completer: completer,
	}
}

// HandleUserTurn 处理一条用户消息：追加到历史、携带全量上下文请求补全、
// 成功后提交助手回复并返回。
//
// 补全失败时已追加的用户消息不回滚：下一次成功的轮次会把这条
// 未应答的消息当作普通上下文转发给模型。
func (o *Orchestrator) HandleUserTurn(ctx context.Context, chatID int64, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyInput
	}

	o.sessions.AppendUser(chatID, text)

	history, alias := o.sessions.Snapshot(chatID)
	info, err := o.registry.Resolve(alias)
	if err != nil {
		// 会话里的别名一定来自注册表
		return "", fmt.Errorf("resolve session model: %w", err)
	}

	reply, err := o.completer.Generate(ctx, info.ModelID, history)
	if err != nil {
		return "", &CompletionError{Err: err}
	}

	o.sessions.AppendAssistant(chatID, reply)
	return reply, nil
}

// Summarize 单次调用：总结一段文本，不读写会话历史
func (o *Orchestrator) Summarize(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyInput
	}

	messages := []*schema.Message{
		{Role: schema.System, Content: "أنت خبير في التلخيص. مهمتك هي تلخيص النص المقدم بأسلوب واضح وموجز وبلغة عربية فصحى."},
		{Role: schema.User, Content: "قم بتلخيص النص التالي: " + text},
	}

	summary, err := o.completer.Generate(ctx, o.registry.Default().ModelID, messages)
	if err != nil {
		return "", &CompletionError{Err: err}
	}
	return summary, nil
}

// Translate 单次调用：把文本翻译到目标语言，不读写会话历史
func (o *Orchestrator) Translate(ctx context.Context, targetLanguage, text string) (string, error) {
	targetLanguage = strings.TrimSpace(targetLanguage)
	text = strings.TrimSpace(text)
	if targetLanguage == "" || text == "" {
		return "", ErrEmptyInput
	}

	messages := []*schema.Message{
		{Role: schema.System, Content: fmt.Sprintf("أنت مترجم محترف. مهمتك هي ترجمة النص المقدم إلى اللغة %s بدقة واحترافية.", targetLanguage)},
		{Role: schema.User, Content: fmt.Sprintf("ترجم هذا النص إلى %s: %s", targetLanguage, text)},
	}

	translation, err := o.completer.Generate(ctx, o.registry.Default().ModelID, messages)
	if err != nil {
		return "", &CompletionError{Err: err}
	}
	return translation, nil
}

// GenerateImage 单次调用：按描述生成图片，返回图片 URL
func (o *Orchestrator) GenerateImage(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ErrEmptyInput
	}

	url, err := o.completer.GenerateImage(ctx, prompt)
	if err != nil {
		return "", &CompletionError{Err: err}
	}
	return url, nil
}
