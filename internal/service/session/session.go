// Package session 提供按会话（Telegram chat）管理对话状态
package session

import (
	"sync"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/fawazbashr/manus-bot/internal/service/registry"
)

// Manager 会话管理器，纯内存，进程重启后状态丢失
type Manager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session

	registry     *registry.Registry
	systemPrompt string
	// maxHistory 历史消息上限（不含系统消息），0 表示不限制
	maxHistory int
}

// Session 单个会话的状态
type Session struct {
	ChatID int64
	// History 消息历史，下标 0 恒为系统消息
	History    []*schema.Message
	ModelAlias string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewManager 创建会话管理器
func NewManager(reg *registry.Registry, systemPrompt string, maxHistory int) *Manager {
	return &Manager{
		sessions:     make(map[int64]*Session),
		registry:     reg,
		systemPrompt: systemPrompt,
		maxHistory:   maxHistory,
	}
}

// systemMessage 构造系统消息
func (m *Manager) systemMessage() *schema.Message {
	return &schema.Message{Role: schema.System, Content: m.systemPrompt}
}

// getOrCreate 获取会话，不存在时按默认状态创建。调用方必须持有写锁。
func (m *Manager) getOrCreate(chatID int64) *Session {
	sess, ok := m.sessions[chatID]
	if !ok {
		now := time.Now()
		sess = &Session{
			ChatID:     chatID,
			History:    []*schema.Message{m.systemMessage()},
			ModelAlias: m.registry.DefaultAlias(),
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		m.sessions[chatID] = sess
	}
	return sess
}

// Reset 清空会话历史，只保留系统消息。模型选择保持不变，
// 会话不存在时按默认模型初始化。返回生效的模型别名。幂等。
func (m *Manager) Reset(chatID int64) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess := m.getOrCreate(chatID)
	sess.History = []*schema.Message{m.systemMessage()}
	sess.UpdatedAt = time.Now()
	return sess.ModelAlias
}

// SetModel 切换会话模型。别名未注册时返回 registry.ErrUnknownModel
// 且会话不变；切换成功会同时清空历史（不同模型间的上下文不假定可迁移）。
func (m *Manager) SetModel(chatID int64, alias string) error {
	info, err := m.registry.Resolve(alias)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	sess := m.getOrCreate(chatID)
	sess.ModelAlias = info.Alias
	sess.History = []*schema.Message{m.systemMessage()}
	sess.UpdatedAt = time.Now()
	return nil
}

// AppendUser 追加用户消息，会话不存在时先按默认状态创建
func (m *Manager) AppendUser(chatID int64, text string) {
	m.append(chatID, &schema.Message{Role: schema.User, Content: text})
}

// AppendAssistant 追加助手回复。调用方保证只在补全成功后调用，
// 与 AppendUser 的配对约束由上层编排保证。
func (m *Manager) AppendAssistant(chatID int64, text string) {
	m.append(chatID, &schema.Message{Role: schema.Assistant, Content: text})
}

func (m *Manager) append(chatID int64, msg *schema.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess := m.getOrCreate(chatID)
	sess.History = append(sess.History, msg)
	sess.UpdatedAt = time.Now()

	// 超出上限时丢弃最旧的非系统消息
	if m.maxHistory > 0 && len(sess.History)-1 > m.maxHistory {
		drop := len(sess.History) - 1 - m.maxHistory
		trimmed := make([]*schema.Message, 0, m.maxHistory+1)
		trimmed = append(trimmed, sess.History[0])
		trimmed = append(trimmed, sess.History[1+drop:]...)
		sess.History = trimmed
	}
}

// Snapshot 返回历史消息的拷贝和当前模型别名。
// 会话不存在时返回默认初始状态，但不创建会话。
// 返回的切片是新分配的，消息一经追加视为不可变。
func (m *Manager) Snapshot(chatID int64) ([]*schema.Message, string) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, ok := m.sessions[chatID]
	if !ok {
		return []*schema.Message{m.systemMessage()}, m.registry.DefaultAlias()
	}

	history := make([]*schema.Message, len(sess.History))
	copy(history, sess.History)
	return history, sess.ModelAlias
}

// Len 返回会话历史长度（含系统消息），会话不存在时为 0
func (m *Manager) Len(chatID int64) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, ok := m.sessions[chatID]
	if !ok {
		return 0
	}
	return len(sess.History)
}
