package app

import (
	"net/http"

	"Gin_excel_redis_asset_tool/session"

	"github.com/gin-gonic/gin"
)

const UnlockCookie = "unlock_session"

// AuthRequired gates the protected mutations (add, import, decommission)
// behind a live unlock session. Everything else stays open, matching the
// desktop tool.
func AuthRequired(unlocks session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ck, err := c.Request.Cookie(UnlockCookie)
		if err != nil || ck.Value == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "authentication required"})
			return
		}
		if _, err := unlocks.Get(c.Request.Context(), ck.Value); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "authentication window expired"})
			return
		}
		c.Set("unlockID", ck.Value)
		c.Next()
	}
}
