package bot

import (
	"fmt"
	"strings"

	"github.com/fawazbashr/manus-bot/internal/service/registry"
)

// telegramMessageLimit Telegram 单条消息长度上限
const telegramMessageLimit = 4096

// 用户可见文案（阿拉伯语）
const (
	msgWelcome = "مرحباً! أنا بوت ذكي يعمل بتقنية Manus AI. أرسل لي أي شيء لتبدأ المحادثة.\n\nاستخدم /help لمعرفة المزيد عن الأوامر المتاحة."

	msgNewChat = "تم مسح سجل المحادثة بنجاح. يمكنك الآن بدء محادثة جديدة."

	msgEmptyInput = "الرجاء إرسال نص صالح لأتمكن من مساعدتك."

	msgCompletionFailed = "عذراً، حدث خطأ أثناء محاولة الاتصال بخدمة الذكاء الاصطناعي."
	msgSummarizeFailed  = "عذراً، حدث خطأ أثناء محاولة تلخيص النص."
	msgTranslateFailed  = "عذراً، حدث خطأ أثناء محاولة الترجمة."
	msgImageFailed      = "عذراً، حدث خطأ أثناء محاولة توليد الصورة. تأكد من أن الوصف مناسب."

	msgSummarizeUsage = "الرجاء إدخال النص المراد تلخيصه بعد الأمر /summarize."
	msgTranslateUsage = "الرجاء إدخال اللغة الهدف والنص المراد ترجمته. مثال: /translate English مرحبا بكم"
	msgImageUsage     = "الرجاء إدخال وصف الصورة المراد توليدها بعد الأمر /image."
	msgModelUsage     = "الرجاء إدخال اسم النموذج بعد الأمر /model. استخدم /help لعرض النماذج المتاحة."

	msgUnknownCommand = "عذراً، هذا الأمر غير معروف. استخدم /help لعرض الأوامر المتاحة."
)

// helpMessage 组装 /help 文案，包含可用模型列表
func helpMessage(models []registry.ModelInfo) string {
	var b strings.Builder
	b.WriteString("**قائمة الأوامر المتاحة:**\n\n")
	b.WriteString("/start - بدء المحادثة والترحيب.\n")
	b.WriteString("/newchat - مسح سجل المحادثة الحالي وبدء محادثة جديدة مع الذكاء الاصطناعي.\n")
	b.WriteString("/model - اختيار نموذج الذكاء الاصطناعي (مثال: /model gpt).\n")
	b.WriteString("/summarize - تلخيص النص الذي يليه (مثال: /summarize نص طويل).\n")
	b.WriteString("/translate - ترجمة النص (مثال: /translate English مرحبا).\n")
	b.WriteString("/image - توليد صورة (مثال: /image قطة تطير في الفضاء).\n")
	b.WriteString("/status - عرض حالة البوت.\n")
	b.WriteString("/help - عرض قائمة الأوامر هذه.\n")

	b.WriteString("\n**النماذج المتاحة:**\n")
	for _, m := range models {
		if m.Description != "" {
			fmt.Fprintf(&b, "- `%s`: %s\n", m.Alias, m.Description)
		} else {
			fmt.Fprintf(&b, "- `%s`\n", m.Alias)
		}
	}
	return b.String()
}

// unknownModelMessage 未知模型文案，附可用别名
func unknownModelMessage(alias string, models []registry.ModelInfo) string {
	aliases := make([]string, 0, len(models))
	for _, m := range models {
		aliases = append(aliases, m.Alias)
	}
	return fmt.Sprintf("النموذج `%s` غير معروف. النماذج المتاحة: %s", alias, strings.Join(aliases, ", "))
}

// modelSwitchedMessage 切换模型成功文案
func modelSwitchedMessage(alias string) string {
	return fmt.Sprintf("تم اختيار النموذج `%s` ومسح سجل المحادثة.", alias)
}

// summaryMessage 总结结果文案
func summaryMessage(summary string) string {
	return "**ملخص النص:**\n\n" + summary
}

// translationMessage 翻译结果文案
func translationMessage(targetLanguage, translation string) string {
	return fmt.Sprintf("**الترجمة إلى %s:**\n\n%s", targetLanguage, translation)
}

// imageCaption 图片说明文案
func imageCaption(prompt string) string {
	return fmt.Sprintf("**الصورة التي تم توليدها بناءً على الوصف:**\n\n_%s_", prompt)
}

// statusMessage /status 文案
func statusMessage(sessions, messages int, defaultAlias string) string {
	return fmt.Sprintf("**حالة البوت:**\n\n- المحادثات النشطة: %d\n- الرسائل المحفوظة: %d\n- النموذج الافتراضي: `%s`", sessions, messages, defaultAlias)
}

// splitMessage 把超长回复按 Telegram 上限切分，尽量在换行处断开。
// 上限按字符计数，避免把多字节字符切断。
func splitMessage(text string, limit int) []string {
	if limit <= 0 {
		limit = telegramMessageLimit
	}

	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	var parts []string
	for len(runes) > limit {
		cut := limit
		for i := limit - 1; i > limit/2; i-- {
			if runes[i] == '\n' {
				cut = i + 1
				break
			}
		}
		parts = append(parts, strings.TrimRight(string(runes[:cut]), "\n"))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}
	return parts
}

// parseTranslateArgs 解析 /translate 参数：第一个词是目标语言，其余是文本
func parseTranslateArgs(args string) (lang, text string, ok bool) {
	args = strings.TrimSpace(args)
	if args == "" {
		return "", "", false
	}

	fields := strings.SplitN(args, " ", 2)
	if len(fields) < 2 {
		return "", "", false
	}

	lang = strings.TrimSpace(fields[0])
	text = strings.TrimSpace(fields[1])
	if lang == "" || text == "" {
		return "", "", false
	}
	return lang, text, true
}
