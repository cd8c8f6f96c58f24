// Package registry 提供模型注册表单元测试
package registry

import (
	"errors"
	"testing"

	"github.com/fawazbashr/manus-bot/internal/config"
)

func testModels() []config.ModelConfig {
	return []config.ModelConfig{
		{Alias: "gemini", ModelID: "gemini-2.5-flash", Default: true},
		{Alias: "gpt", ModelID: "gpt-4.1-mini"},
	}
}

// ========== New 测试 ==========

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		models  []config.ModelConfig
		wantErr bool
	}{
		{
			name:   "valid config",
			models: testModels(),
		},
		{
			name:   "empty config uses defaults",
			models: nil,
		},
		{
			name: "no default",
			models: []config.ModelConfig{
				{Alias: "gpt", ModelID: "gpt-4.1-mini"},
			},
			wantErr: true,
		},
		{
			name: "empty alias",
			models: []config.ModelConfig{
				{Alias: "", ModelID: "gpt-4.1-mini", Default: true},
			},
			wantErr: true,
		},
		{
			name: "empty model id",
			models: []config.ModelConfig{
				{Alias: "gpt", ModelID: "", Default: true},
			},
			wantErr: true,
		},
		{
			name: "duplicate alias after normalization",
			models: []config.ModelConfig{
				{Alias: "gpt", ModelID: "gpt-4.1-mini", Default: true},
				{Alias: "GPT", ModelID: "gpt-4o"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.models)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// ========== Resolve 测试 ==========

func TestResolve(t *testing.T) {
	reg, err := New(testModels())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tests := []struct {
		name    string
		alias   string
		wantID  string
		wantErr bool
	}{
		{
			name:   "exact match",
			alias:  "gpt",
			wantID: "gpt-4.1-mini",
		},
		{
			name:   "case insensitive",
			alias:  "GPT",
			wantID: "gpt-4.1-mini",
		},
		{
			name:   "mixed case",
			alias:  "GeMiNi",
			wantID: "gemini-2.5-flash",
		},
		{
			name:   "surrounding whitespace",
			alias:  "  gpt  ",
			wantID: "gpt-4.1-mini",
		},
		{
			name:    "unknown alias",
			alias:   "bogus",
			wantErr: true,
		},
		{
			name:    "empty alias",
			alias:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := reg.Resolve(tt.alias)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownModel) {
					t.Errorf("Resolve(%q) error = %v, want ErrUnknownModel", tt.alias, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) error = %v", tt.alias, err)
			}
			if info.ModelID != tt.wantID {
				t.Errorf("Resolve(%q).ModelID = %q, want %q", tt.alias, info.ModelID, tt.wantID)
			}
		})
	}
}

// TestResolveCaseAgreement 大小写不同的别名解析到同一个模型
func TestResolveCaseAgreement(t *testing.T) {
	reg, err := New(testModels())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	lower, err := reg.Resolve("gpt")
	if err != nil {
		t.Fatalf("Resolve(gpt) error = %v", err)
	}
	upper, err := reg.Resolve("GPT")
	if err != nil {
		t.Fatalf("Resolve(GPT) error = %v", err)
	}
	if lower.ModelID != upper.ModelID {
		t.Errorf("Resolve(gpt) = %q, Resolve(GPT) = %q, want equal", lower.ModelID, upper.ModelID)
	}
}

// ========== Default / List 测试 ==========

func TestDefault(t *testing.T) {
	reg, err := New(testModels())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if reg.DefaultAlias() != "gemini" {
		t.Errorf("DefaultAlias() = %q, want %q", reg.DefaultAlias(), "gemini")
	}
	if reg.Default().ModelID != "gemini-2.5-flash" {
		t.Errorf("Default().ModelID = %q, want %q", reg.Default().ModelID, "gemini-2.5-flash")
	}
}

func TestDefaultFromBuiltins(t *testing.T) {
	reg, err := New(nil)
	if err != nil {
		t.Fatalf("New(nil) error = %v", err)
	}
	if reg.DefaultAlias() == "" {
		t.Error("DefaultAlias() is empty for builtin registry")
	}
	if _, err := reg.Resolve(reg.DefaultAlias()); err != nil {
		t.Errorf("Resolve(default alias) error = %v", err)
	}
}

func TestListStableOrder(t *testing.T) {
	reg, err := New(testModels())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	list := reg.List()
	if len(list) != 2 {
		t.Fatalf("List() returned %d entries, want 2", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].Alias >= list[i].Alias {
			t.Errorf("List() not sorted: %q before %q", list[i-1].Alias, list[i].Alias)
		}
	}
}
