package rest

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Ключи контекста gin для данных аутентифицированной сессии.
const (
	ctxUserID   = "auth_user_id"
	ctxUsername = "auth_username"
)

// authRequired — middleware проверки Bearer-токена сессии.
// Валидный токен кладёт user_id/username в контекст запроса.
func (h *Handler) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		sess, ok := h.users.GetSession(token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ctxUserID, sess.UserID)
		c.Set(ctxUsername, sess.Username)
		c.Next()
	}
}

// bearerToken — значение из "Authorization: Bearer <token>"; пустая строка, если схема не та.
func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

// sessionUserID — user_id текущей сессии; ставится только в authRequired.
func sessionUserID(c *gin.Context) int64 {
	v, _ := c.Get(ctxUserID)
	id, _ := v.(int64)
	return id
}
