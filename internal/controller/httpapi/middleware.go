package httpapi

import (
	"net/http"
	"strconv"

	"github.com/Freeeeeet/mentor_booking/internal/model"
	"github.com/gin-gonic/gin"
)

const actorContextKey = "actor"

// ActorMiddleware достаёт аутентифицированного пользователя из заголовков,
// которые выставляет gateway после проверки сессии.
// Само ядро авторизацией не занимается.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.GetHeader("X-User-ID"), 10, 64)
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid identity headers"})
			return
		}

		role := model.Role(c.GetHeader("X-User-Role"))
		switch role {
		case model.RoleStudent, model.RoleInstructor, model.RoleAdmin:
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid identity headers"})
			return
		}

		c.Set(actorContextKey, model.Actor{ID: id, Role: role})
		c.Next()
	}
}

// RequireRole пропускает только пользователей с указанной ролью
func RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if actorFrom(c).Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}
		c.Next()
	}
}

func actorFrom(c *gin.Context) model.Actor {
	actor, _ := c.MustGet(actorContextKey).(model.Actor)
	return actor
}
