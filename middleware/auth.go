package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cuotacontrol/cuotacontrol-api/utils"
)

const userIDKey = "user_id"

// AuthMiddleware valida el JWT del header Authorization (o del query param
// "token" para la conexión WebSocket) y deja el user id en el contexto.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""

		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else if q := c.Query("token"); q != "" {
			tokenString = q
		}

		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing authorization token"})
			c.Abort()
			return
		}

		userID, err := utils.ParseAccessToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// GetUserID devuelve el owner autenticado, "" si no hay sesión.
func GetUserID(c *gin.Context) string {
	id, exists := c.Get(userIDKey)
	if !exists {
		return ""
	}
	userID, _ := id.(string)
	return userID
}
