// Package bot 提供 Telegram 接入层：接收更新、分发命令、回复用户
package bot

import (
	"context"
	"errors"
	"log"
	"runtime/debug"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/fawazbashr/manus-bot/internal/config"
	"github.com/fawazbashr/manus-bot/internal/service"
	"github.com/fawazbashr/manus-bot/internal/service/registry"
	"github.com/fawazbashr/manus-bot/internal/service/turn"
)

// telegramAPI Bot API 中用到的子集，便于测试替换
type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

// Bot Telegram 机器人
type Bot struct {
	api      telegramAPI
	services *service.Services
	cfg      *config.TelegramConfig

	// webhookUpdates Webhook 模式下由 HTTP 处理器投递更新
	webhookUpdates chan tgbotapi.Update
}

// New 创建 Bot
func New(api telegramAPI, services *service.Services, cfg *config.TelegramConfig) *Bot {
	return &Bot{
		api:            api,
		services:       services,
		cfg:            cfg,
		webhookUpdates: make(chan tgbotapi.Update, 64),
	}
}

// Enqueue 投递一条 Webhook 更新
func (b *Bot) Enqueue(update tgbotapi.Update) {
	b.webhookUpdates <- update
}

// Run 注册命令列表并开始消费更新，阻塞直到 ctx 取消
func (b *Bot) Run(ctx context.Context) {
	if err := b.registerCommands(); err != nil {
		// 命令菜单注册失败不影响消息处理
		log.Printf("failed to register telegram commands: %v", err)
	}

	var updates tgbotapi.UpdatesChannel = b.webhookUpdates
	if !b.cfg.WebhookEnabled {
		u := tgbotapi.NewUpdate(0)
		u.Timeout = b.cfg.PollTimeout
		updates = b.api.GetUpdatesChan(u)
		log.Printf("telegram bot started with long polling (timeout %ds)", b.cfg.PollTimeout)
	} else {
		log.Printf("telegram bot started in webhook mode")
	}

	for {
		select {
		case <-ctx.Done():
			log.Printf("telegram bot stopped: %v", ctx.Err())
			return
		case update, ok := <-updates:
			if !ok {
				log.Printf("telegram updates channel closed")
				return
			}
			go b.safeHandleUpdate(ctx, update)
		}
	}
}

// safeHandleUpdate 处理单条更新，恢复 panic 保证其他会话不受影响
func (b *Bot) safeHandleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("panic handling update %d: %v\n%s", update.UpdateID, r, debug.Stack())
		}
	}()
	b.handleUpdate(ctx, update)
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return
	}

	traceID := uuid.New().String()[:8]
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		log.Printf("[%s] chat %d command /%s", traceID, chatID, msg.Command())
		b.handleCommand(ctx, chatID, msg.Command(), msg.CommandArguments())
		return
	}

	if msg.Text == "" {
		// 非文本消息（贴纸、图片等）直接忽略
		return
	}

	log.Printf("[%s] chat %d message (%d chars)", traceID, chatID, len(msg.Text))
	b.handleChat(ctx, chatID, msg.Text)
}

// handleChat 处理普通文本消息：走完整的会话轮次
func (b *Bot) handleChat(ctx context.Context, chatID int64, text string) {
	b.sendAction(chatID, tgbotapi.ChatTyping)

	reply, err := b.services.Turn.HandleUserTurn(ctx, chatID, text)
	if err != nil {
		b.sendText(chatID, turnErrorMessage(err), false)
		return
	}

	b.sendText(chatID, reply, false)
}

// turnErrorMessage 把轮次错误映射为用户可见文案
func turnErrorMessage(err error) string {
	var completionErr *turn.CompletionError
	switch {
	case errors.Is(err, turn.ErrEmptyInput):
		return msgEmptyInput
	case errors.As(err, &completionErr):
		log.Printf("completion failed: %v", completionErr.Err)
		return msgCompletionFailed
	default:
		log.Printf("turn failed: %v", err)
		return msgCompletionFailed
	}
}

func (b *Bot) handleCommand(ctx context.Context, chatID int64, command, args string) {
	switch command {
	case "start":
		b.services.SessionMgr.Reset(chatID)
		b.sendText(chatID, msgWelcome, false)

	case "help":
		b.sendText(chatID, helpMessage(b.services.Registry.List()), true)

	case "newchat":
		b.services.SessionMgr.Reset(chatID)
		b.sendText(chatID, msgNewChat, false)

	case "model":
		b.handleModel(chatID, args)

	case "summarize":
		b.handleSummarize(ctx, chatID, args)

	case "translate":
		b.handleTranslate(ctx, chatID, args)

	case "image":
		b.handleImage(ctx, chatID, args)

	case "status":
		stats := b.services.SessionMgr.Stats()
		b.sendText(chatID, statusMessage(stats.Sessions, stats.Messages, b.services.Registry.DefaultAlias()), true)

	default:
		b.sendText(chatID, msgUnknownCommand, false)
	}
}

func (b *Bot) handleModel(chatID int64, args string) {
	if args == "" {
		b.sendText(chatID, msgModelUsage, false)
		return
	}

	if err := b.services.SessionMgr.SetModel(chatID, args); err != nil {
		if errors.Is(err, registry.ErrUnknownModel) {
			b.sendText(chatID, unknownModelMessage(args, b.services.Registry.List()), true)
			return
		}
		log.Printf("set model failed: %v", err)
		b.sendText(chatID, msgCompletionFailed, false)
		return
	}

	b.sendText(chatID, modelSwitchedMessage(args), true)
}

func (b *Bot) handleSummarize(ctx context.Context, chatID int64, args string) {
	if args == "" {
		b.sendText(chatID, msgSummarizeUsage, false)
		return
	}

	b.sendAction(chatID, tgbotapi.ChatTyping)

	summary, err := b.services.Turn.Summarize(ctx, args)
	if err != nil {
		if errors.Is(err, turn.ErrEmptyInput) {
			b.sendText(chatID, msgSummarizeUsage, false)
			return
		}
		log.Printf("summarize failed: %v", err)
		b.sendText(chatID, msgSummarizeFailed, false)
		return
	}

	b.sendText(chatID, summaryMessage(summary), true)
}

func (b *Bot) handleTranslate(ctx context.Context, chatID int64, args string) {
	lang, text, ok := parseTranslateArgs(args)
	if !ok {
		b.sendText(chatID, msgTranslateUsage, false)
		return
	}

	b.sendAction(chatID, tgbotapi.ChatTyping)

	translation, err := b.services.Turn.Translate(ctx, lang, text)
	if err != nil {
		log.Printf("translate failed: %v", err)
		b.sendText(chatID, msgTranslateFailed, false)
		return
	}

	b.sendText(chatID, translationMessage(lang, translation), true)
}

func (b *Bot) handleImage(ctx context.Context, chatID int64, args string) {
	if args == "" {
		b.sendText(chatID, msgImageUsage, false)
		return
	}

	b.sendAction(chatID, tgbotapi.ChatUploadPhoto)

	url, err := b.services.Turn.GenerateImage(ctx, args)
	if err != nil {
		log.Printf("generate image failed: %v", err)
		b.sendText(chatID, msgImageFailed, false)
		return
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(url))
	photo.Caption = imageCaption(args)
	photo.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(photo); err != nil {
		log.Printf("send photo to chat %d failed: %v", chatID, err)
	}
}

// sendText 发送文本，超长时切分为多条。发送失败只记录日志，不重试。
func (b *Bot) sendText(chatID int64, text string, markdown bool) {
	for _, part := range splitMessage(text, telegramMessageLimit) {
		msg := tgbotapi.NewMessage(chatID, part)
		if markdown {
			msg.ParseMode = tgbotapi.ModeMarkdown
		}
		if _, err := b.api.Send(msg); err != nil {
			log.Printf("send message to chat %d failed: %v", chatID, err)
		}
	}
}

// sendAction 发送聊天动作（typing / upload_photo）
func (b *Bot) sendAction(chatID int64, action string) {
	if _, err := b.api.Request(tgbotapi.NewChatAction(chatID, action)); err != nil {
		log.Printf("send chat action to chat %d failed: %v", chatID, err)
	}
}
