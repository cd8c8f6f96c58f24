package session

import (
	"log"
	"time"
)

// CleanupIdle 回收空闲超过 ttl 的会话，返回回收数量
func (m *Manager) CleanupIdle(ttl time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	removed := 0
	for chatID, sess := range m.sessions {
		if now.Sub(sess.UpdatedAt) > ttl {
			delete(m.sessions, chatID)
			removed++
		}
	}
	return removed
}

// Stats 会话统计
type Stats struct {
	Sessions int
	Messages int
}

// Stats 返回当前会话数量与消息总数
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := Stats{Sessions: len(m.sessions)}
	for _, sess := range m.sessions {
		s.Messages += len(sess.History)
	}
	return s
}

// StartCleanup 启动后台回收循环，ttl <= 0 时不启动。
// 返回的函数用于停止循环。
func (m *Manager) StartCleanup(ttl, interval time.Duration) func() {
	if ttl <= 0 {
		return func() {}
	}
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if removed := m.CleanupIdle(ttl); removed > 0 {
					log.Printf("session cleanup: removed %d idle sessions", removed)
				}
			case <-done:
				return
			}
		}
	}()

	return func() { close(done) }
}
