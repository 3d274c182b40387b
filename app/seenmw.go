package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// TouchLastAction records when an unlock session was last used for a
// protected mutation, throttled so a burst of requests costs one write.
// Pass-through when redis is not configured.
func TouchLastAction(rdb *redis.Client, throttle time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}
		v, ok := c.Get("unlockID")
		if !ok {
			c.Next()
			return
		}
		id, _ := v.(string)
		if id == "" {
			c.Next()
			return
		}

		key := "auth:lastaction:" + id
		if ok, _ := rdb.SetNX(c, key, time.Now().Format(time.RFC3339), throttle).Result(); !ok {
			c.Next()
			return
		}
		zap.S().Named("auth").Debugw("protected action", "session", id, "path", c.FullPath())
		c.Next()
	}
}
