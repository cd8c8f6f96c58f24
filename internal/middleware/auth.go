package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// secretTokenHeader Telegram Webhook 附带的 secret token 头
const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// WebhookAuthMiddleware Webhook 鉴权中间件。
// 配置了 secret 时校验 Telegram 附带的 secret token，未配置时直接放行。
func WebhookAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		token := c.GetHeader(secretTokenHeader)
		if subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    -1,
				"message": "invalid secret token",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
