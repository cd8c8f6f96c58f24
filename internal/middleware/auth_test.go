package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newAuthRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(WebhookAuthMiddleware(secret))
	r.POST("/telegram/webhook", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

// ========== WebhookAuthMiddleware 测试 ==========

func TestWebhookAuthMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		secret   string
		token    string
		wantCode int
	}{
		{
			name:     "匹配的 secret token",
			secret:   "top-secret",
			token:    "top-secret",
			wantCode: http.StatusOK,
		},
		{
			name:     "错误的 secret token",
			secret:   "top-secret",
			token:    "wrong",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "缺失 secret token",
			secret:   "top-secret",
			token:    "",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "未配置 secret 时直接放行",
			secret:   "",
			token:    "",
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newAuthRouter(tt.secret)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/telegram/webhook", nil)
			if tt.token != "" {
				req.Header.Set("X-Telegram-Bot-Api-Secret-Token", tt.token)
			}
			r.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tt.wantCode)
			}
		})
	}
}
