// controllers/srv.go
package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"Gin_excel_redis_asset_tool/app"
	"Gin_excel_redis_asset_tool/db"
	"Gin_excel_redis_asset_tool/session"

	"github.com/gin-gonic/gin"
)

// Srv bundles the dependencies every controller needs.
type Srv struct {
	Repo    *db.Repo
	Unlocks session.Store
	Cfg     app.Config
}

func GetSrv(a *app.App) *Srv {
	return &Srv{Repo: a.Repo, Unlocks: a.Unlocks, Cfg: a.Config}
}

// --- helpers ---

// setUnlockCookie installs or clears the unlock-session cookie.
func (s *Srv) setUnlockCookie(w http.ResponseWriter, id string, maxAge time.Duration) {
	secure := strings.HasPrefix(s.Cfg.WebOrigin, "https://")
	http.SetCookie(w, &http.Cookie{
		Name:     app.UnlockCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
		MaxAge:   int(maxAge / time.Second),
	})
}

// fail maps engine errors onto HTTP statuses: validation problems are
// itemized, precondition violations come back as a single message, and
// anything else is a storage failure.
func fail(c *gin.Context, err error) {
	var ve db.ValidationErrors
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, app.H{"error": "validation failed", "details": ve})
		return
	}
	switch {
	case errors.Is(err, db.ErrNotFound):
		c.JSON(http.StatusNotFound, app.H{"error": err.Error()})
	case errors.Is(err, db.ErrDecommissioned),
		errors.Is(err, db.ErrAlreadyDecommissioned),
		errors.Is(err, db.ErrAlreadyOnLoan),
		errors.Is(err, db.ErrNoOpenLoan),
		errors.Is(err, db.ErrNoPendingRepair),
		errors.Is(err, db.ErrRepairPending):
		c.JSON(http.StatusConflict, app.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
	}
}
