package routes

import (
	"time"

	"Gin_excel_redis_asset_tool/app"
	"Gin_excel_redis_asset_tool/controllers"
)

// RegisterRoutes wires the API surface. Mutations that change the shape
// of the inventory (registering, importing, retiring) sit behind the
// unlock window; day-to-day loan and service traffic does not.
func RegisterRoutes(a *app.App) {
	s := controllers.GetSrv(a)

	auth := controllers.NewAuthController(s)
	assets := controllers.NewAssetController(s)
	loans := controllers.NewLoanController(s)
	maint := controllers.NewMaintenanceController(s)
	dec := controllers.NewDecommissionController(s)

	api := a.Router.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/unlock", auth.Unlock)
		authGroup.GET("/status", auth.Status)
		authGroup.POST("/lock", auth.Lock)
	}

	open := api.Group("/")
	{
		open.GET("/assets", assets.ListAssets)
		open.GET("/assets/stats", assets.GetStats)
		open.GET("/assets/:num", assets.GetAsset)
		open.GET("/assets/:num/summary", assets.GetSummary)

		open.POST("/assets/:num/loans", loans.Borrow)
		open.POST("/assets/:num/return", loans.Return)
		open.GET("/loans", loans.ListLoans)

		open.POST("/assets/:num/maintenance", maint.RegisterMaintenance)
		open.POST("/assets/:num/repairs", maint.RegisterRepair)
		open.GET("/assets/:num/repairs/pending", maint.GetPendingRepair)
		open.POST("/assets/:num/repairs/finalize", maint.FinalizeRepair)
		open.GET("/maintenance", maint.ListMaintenance)

		open.GET("/decommissioned", dec.ListDecommissioned)
	}

	gated := api.Group("/")
	gated.Use(app.AuthRequired(a.Unlocks), app.TouchLastAction(a.RDB, 5*time.Minute))
	{
		gated.POST("/assets", assets.CreateAsset)
		gated.POST("/assets/import", assets.ImportBatch)
		gated.POST("/assets/import/file", assets.ImportBatchFile)
		gated.POST("/assets/:num/decommission", dec.Decommission)
	}
}
