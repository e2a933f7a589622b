// internal/interfaces/http/middleware/actor.go
package middleware

import (
	"github.com/gin-gonic/gin"
)

// DefaultActor is recorded on stock movements when the caller does not
// identify itself
const DefaultActor = "system"

// Actor extracts the acting identity from the X-Actor header. Authentication
// is handled by the surrounding application; this core only records who
// acted on movements and alerts.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := c.GetHeader("X-Actor")
		if actor == "" {
			actor = DefaultActor
		}

		c.Set("actor", actor)

		c.Next()
	}
}

// GetActorFromContext returns the acting identity set by the Actor middleware
func GetActorFromContext(c *gin.Context) string {
	if actor, exists := c.Get("actor"); exists {
		if s, ok := actor.(string); ok && s != "" {
			return s
		}
	}
	return DefaultActor
}
