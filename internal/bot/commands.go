package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// botCommands Telegram 命令菜单
func botCommands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: "start", Description: "بدء المحادثة والترحيب"},
		{Command: "help", Description: "عرض قائمة الأوامر المتاحة"},
		{Command: "newchat", Description: "مسح سجل المحادثة وبدء محادثة جديدة"},
		{Command: "model", Description: "اختيار نموذج الذكاء الاصطناعي (مثال: /model gpt)"},
		{Command: "summarize", Description: "تلخيص النص الذي يليه (مثال: /summarize نص طويل)"},
		{Command: "translate", Description: "ترجمة النص (مثال: /translate English مرحبا)"},
		{Command: "image", Description: "توليد صورة (مثال: /image قطة تطير في الفضاء)"},
		{Command: "status", Description: "عرض حالة البوت"},
	}
}

// registerCommands 向 Telegram 注册命令菜单
func (b *Bot) registerCommands() error {
	cfg := tgbotapi.NewSetMyCommands(botCommands()...)
	if _, err := b.api.Request(cfg); err != nil {
		return fmt.Errorf("set my commands: %w", err)
	}
	return nil
}
