package controllers

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strings"
	"time"

	"Gin_excel_redis_asset_tool/app"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthController struct{ *Srv }

func NewAuthController(s *Srv) *AuthController { return &AuthController{Srv: s} }

// Unlock opens the authentication window: the uploaded file's SHA-256
// must match the configured hash. On success a TTL session is created and
// handed out as a cookie.
func (ac *AuthController) Unlock(c *gin.Context) {
	if ac.Cfg.AuthHash == "" {
		c.JSON(http.StatusServiceUnavailable, app.H{"error": "unlock not configured"})
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "missing authentication file"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "unreadable authentication file"})
		return
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "unreadable authentication file"})
		return
	}
	sum := hex.EncodeToString(h.Sum(nil))
	if !strings.EqualFold(sum, ac.Cfg.AuthHash) {
		zap.S().Named("auth").Warnw("unlock rejected", "ip", c.ClientIP())
		c.JSON(http.StatusUnauthorized, app.H{"error": "invalid authentication file"})
		return
	}

	id := uuid.NewString()
	sess, err := ac.Unlocks.Create(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ac.setUnlockCookie(c.Writer, id, ac.Cfg.UnlockWindow)
	c.JSON(http.StatusOK, app.H{"ok": true, "expiresAt": sess.ExpiresAt})
}

// Status reports the remaining window, the visible timer of the original.
func (ac *AuthController) Status(c *gin.Context) {
	ck, err := c.Request.Cookie(app.UnlockCookie)
	if err != nil || ck.Value == "" {
		c.JSON(http.StatusOK, app.H{"authenticated": false})
		return
	}
	sess, err := ac.Unlocks.Get(c.Request.Context(), ck.Value)
	if err != nil {
		c.JSON(http.StatusOK, app.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, app.H{
		"authenticated":    true,
		"expiresAt":        sess.ExpiresAt,
		"remainingSeconds": int(sess.Remaining().Seconds()),
	})
}

// Lock closes the window early.
func (ac *AuthController) Lock(c *gin.Context) {
	if ck, err := c.Request.Cookie(app.UnlockCookie); err == nil && ck.Value != "" {
		_ = ac.Unlocks.Delete(c.Request.Context(), ck.Value)
	}
	ac.setUnlockCookie(c.Writer, "", -time.Second)
	c.JSON(http.StatusOK, app.H{"ok": true})
}
