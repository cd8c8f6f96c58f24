// Package registry 提供模型别名注册表
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/fawazbashr/manus-bot/internal/config"
)

// ErrUnknownModel 别名未注册
var ErrUnknownModel = errors.New("unknown model alias")

// ModelInfo 模型注册表条目
type ModelInfo struct {
	Alias       string
	ModelID     string
	Description string
}

// defaultEntries 内置默认条目
func defaultEntries() []config.ModelConfig {
	return []config.ModelConfig{
		{Alias: "gemini", ModelID: "gemini-2.5-flash", Description: "Google Gemini Flash", Default: true},
		{Alias: "flash", ModelID: "gemini-2.5-flash", Description: "Gemini Flash 的简短别名"},
		{Alias: "gpt", ModelID: "gpt-4.1-mini", Description: "OpenAI GPT 4.1 mini"},
	}
}

// Registry 模型注册表，进程启动时构建，之后只读，可被任意 goroutine 并发读取
type Registry struct {
	entries      map[string]ModelInfo
	defaultAlias string
}

// New 从配置构建注册表，配置为空时使用内置默认条目
func New(models []config.ModelConfig) (*Registry, error) {
	if len(models) == 0 {
		models = defaultEntries()
	}

	entries := make(map[string]ModelInfo, len(models))
	defaultAlias := ""
	for _, m := range models {
		alias := strings.ToLower(strings.TrimSpace(m.Alias))
		if alias == "" {
			return nil, fmt.Errorf("model entry with empty alias")
		}
		if m.ModelID == "" {
			return nil, fmt.Errorf("model %q has empty modelId", m.Alias)
		}
		if _, exists := entries[alias]; exists {
			return nil, fmt.Errorf("duplicate model alias %q", alias)
		}
		entries[alias] = ModelInfo{
			Alias:       alias,
			ModelID:     m.ModelID,
			Description: m.Description,
		}
		if m.Default {
			defaultAlias = alias
		}
	}

	if defaultAlias == "" {
		return nil, fmt.Errorf("no default model configured")
	}

	return &Registry{entries: entries, defaultAlias: defaultAlias}, nil
}

// Resolve 按别名解析模型，大小写不敏感
func (r *Registry) Resolve(alias string) (ModelInfo, error) {
	info, ok := r.entries[strings.ToLower(strings.TrimSpace(alias))]
	if !ok {
		return ModelInfo{}, fmt.Errorf("%w: %s", ErrUnknownModel, alias)
	}
	return info, nil
}

// Default 返回默认模型
func (r *Registry) Default() ModelInfo {
	return r.entries[r.defaultAlias]
}

// DefaultAlias 返回默认别名
func (r *Registry) DefaultAlias() string {
	return r.defaultAlias
}

// List 返回全部条目，按别名排序保证输出稳定
func (r *Registry) List() []ModelInfo {
	result := make([]ModelInfo, 0, len(r.entries))
	for _, info := range r.entries {
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Alias < result[j].Alias
	})
	return result
}
