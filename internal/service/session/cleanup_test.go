package session

import (
	"testing"
	"time"
)

// TestCleanupIdleRemovesStaleSessions 只回收空闲超时的会话
func TestCleanupIdleRemovesStaleSessions(t *testing.T) {
	m := newTestManager(t, 0)

	m.AppendUser(1, "قديم")
	m.AppendUser(2, "جديد")

	// 人为把会话 1 标记为过期
	m.mu.Lock()
	m.sessions[1].UpdatedAt = time.Now().Add(-2 * time.Hour)
	m.mu.Unlock()

	removed := m.CleanupIdle(time.Hour)
	if removed != 1 {
		t.Errorf("CleanupIdle() = %d, want 1", removed)
	}

	if m.Len(1) != 0 {
		t.Errorf("stale session not removed, Len(1) = %d", m.Len(1))
	}
	if m.Len(2) != 2 {
		t.Errorf("active session removed, Len(2) = %d", m.Len(2))
	}
}

func TestCleanupIdleNoop(t *testing.T) {
	m := newTestManager(t, 0)
	m.AppendUser(1, "رسالة")

	if removed := m.CleanupIdle(time.Hour); removed != 0 {
		t.Errorf("CleanupIdle() = %d, want 0", removed)
	}
}

// ========== Stats 测试 ==========

func TestStats(t *testing.T) {
	m := newTestManager(t, 0)

	m.AppendUser(1, "أ")
	m.AppendAssistant(1, "ب")
	m.AppendUser(2, "ج")

	stats := m.Stats()
	if stats.Sessions != 2 {
		t.Errorf("Stats().Sessions = %d, want 2", stats.Sessions)
	}
	// 每个会话有一条系统消息
	if stats.Messages != 5 {
		t.Errorf("Stats().Messages = %d, want 5", stats.Messages)
	}
}

// ========== StartCleanup 测试 ==========

func TestStartCleanupDisabled(t *testing.T) {
	m := newTestManager(t, 0)

	stop := m.StartCleanup(0, time.Second)
	// ttl 为 0 时返回的停止函数应当可安全调用
	stop()
}

func TestStartCleanupStop(t *testing.T) {
	m := newTestManager(t, 0)

	stop := m.StartCleanup(time.Hour, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	stop()
}
