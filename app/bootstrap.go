package app

import (
	"go.uber.org/zap"
)

// ReportTables logs the state of the four registries at startup, so a
// misconfigured DATA_DIR is obvious on the first boot.
func ReportTables(a *App) {
	log := zap.S().Named("bootstrap")

	stats, err := a.Repo.Stats()
	if err != nil {
		log.Warnf("inventory not readable yet: %v", err)
		return
	}
	log.Infow("registries loaded",
		"assets", stats.Total,
		"available", stats.Available,
		"onLoan", stats.OnLoan,
		"decommissioned", stats.Decommissioned,
	)

	if a.Config.AuthHash == "" {
		log.Warn("AUTH_SHA256 not set, protected actions cannot be unlocked")
	}
}
